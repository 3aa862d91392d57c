package arcanum

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/arcanum-sdk/client-go/internal/wire"
)

// parseObject decodes s the way the request pipeline does.
func parseObject(t *testing.T, s string) wire.Object {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("invalid fixture: %v", err)
	}
	obj, err := wire.AsObject(v)
	if err != nil {
		t.Fatalf("fixture is not an object: %v", err)
	}
	return obj
}

func TestVault_ToMapRoundTrip(t *testing.T) {
	v, err := decodeVault(parseObject(t, `{"id":1,"name":"V","description":"D"}`))
	if err != nil {
		t.Fatalf("decodeVault() error = %v", err)
	}

	want := map[string]any{"id": int64(1), "name": "V", "description": "D"}
	if diff := cmp.Diff(want, v.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_ToMap(t *testing.T) {
	p, err := decodeProject(parseObject(t, projectJSON))
	if err != nil {
		t.Fatalf("decodeProject() error = %v", err)
	}

	owner := map[string]any{"id": int64(7), "netId": "alice", "name": "Alice", "authorities": []string{"USER", "ADMIN"}}
	want := map[string]any{
		"id":          int64(3),
		"name":        "Billing",
		"description": "Billing service",
		"slug":        "billing",
		"owner":       owner,
		"secrets": []map[string]any{{
			"id":      int64(42),
			"name":    "database",
			"azureId": "kv-42",
			"fields":  []string{"username", "password"},
			"vault":   map[string]any{"id": int64(1), "name": "Prod", "description": "P"},
			"owner":   owner,
		}},
	}
	if diff := cmp.Diff(want, p.ToMap()); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
}

func TestToMap_MatchesJSONTags(t *testing.T) {
	tok, err := decodeToken(parseObject(t, tokenJSON), true)
	if err != nil {
		t.Fatalf("decodeToken() error = %v", err)
	}

	data, err := json.Marshal(tok)
	if err != nil {
		t.Fatal(err)
	}
	var viaJSON map[string]any
	if err := json.Unmarshal(data, &viaJSON); err != nil {
		t.Fatal(err)
	}

	for key := range tok.ToMap() {
		if _, ok := viaJSON[key]; !ok {
			t.Errorf("ToMap key %q has no matching JSON field", key)
		}
	}
}

func TestToken_ToMapAbsentCredentials(t *testing.T) {
	tok := Token{Principal: "p"}
	m := tok.ToMap()
	if m["apiKey"] != nil || m["apiSecret"] != nil {
		t.Errorf("absent credentials should map to nil, got %v / %v", m["apiKey"], m["apiSecret"])
	}
	if diff := cmp.Diff([]string{}, m["authorities"]); diff != "" {
		t.Errorf("authorities mismatch (-want +got):\n%s", diff)
	}
}

func TestUser_HasAuthority(t *testing.T) {
	u := User{Authorities: []string{"USER", "ADMIN"}}
	if !u.HasAuthority("ADMIN") {
		t.Error("HasAuthority(ADMIN) = false, want true")
	}
	if u.HasAuthority("admin") {
		t.Error("HasAuthority is an exact match; admin should not match ADMIN")
	}
}

func TestDecryptedSecret_Fields(t *testing.T) {
	s, err := decodeDecryptedSecret(parseObject(t, decryptedJSON))
	if err != nil {
		t.Fatalf("decodeDecryptedSecret() error = %v", err)
	}

	if !s.HasField("password") {
		t.Error("HasField(password) = false")
	}
	if s.HasField("token") {
		t.Error("HasField(token) = true")
	}
	if v, ok := s.FieldValue("password"); !ok || v != "hunter2" {
		t.Errorf("FieldValue(password) = %q, %v", v, ok)
	}
	if _, ok := s.FieldValue("token"); ok {
		t.Error("FieldValue(token) should report absence")
	}
	f := s.Field("username")
	if f == nil || f.Name != "Username" {
		t.Fatalf("Field(username) = %+v", f)
	}
	f.Value = "changed"
	if v, _ := s.FieldValue("username"); v != "admin" {
		t.Error("Field must return a copy")
	}
}

func TestEncryptedSecret_HasFieldSlug(t *testing.T) {
	s := EncryptedSecret{Fields: []string{"username", "password"}}
	if !s.HasFieldSlug("username") || s.HasFieldSlug("Username") {
		t.Error("HasFieldSlug should match slugs exactly")
	}
}

func TestProject_SecretLookup(t *testing.T) {
	p := Project{Secrets: []EncryptedSecret{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}}

	if !p.HasSecret(2) || p.HasSecret(3) {
		t.Error("HasSecret mismatch")
	}
	if s := p.SecretByID(1); s == nil || s.Name != "a" {
		t.Errorf("SecretByID(1) = %+v", s)
	}
	if s := p.SecretByName("b"); s == nil || s.ID != 2 {
		t.Errorf("SecretByName(b) = %+v", s)
	}
	if p.SecretByName("c") != nil {
		t.Error("SecretByName(c) should be nil")
	}
}

func TestExpiry(t *testing.T) {
	orig := now
	t.Cleanup(func() { now = orig })
	now = func() time.Time { return time.Unix(2000, 0) }

	tests := []struct {
		expiry int64
		want   bool
	}{
		{1999, true},
		{2000, false},
		{2001, false},
	}
	for _, tt := range tests {
		if got := (Token{Expiry: tt.expiry}).IsExpired(); got != tt.want {
			t.Errorf("Token{Expiry: %d}.IsExpired() = %v, want %v", tt.expiry, got, tt.want)
		}
		if got := (SelfInfo{Expiry: tt.expiry}).IsExpired(); got != tt.want {
			t.Errorf("SelfInfo{Expiry: %d}.IsExpired() = %v, want %v", tt.expiry, got, tt.want)
		}
	}

	if got := (Token{Expiry: 1000}).ExpiresAt(); !got.Equal(time.Unix(1000, 0)) {
		t.Errorf("ExpiresAt() = %v", got)
	}
}

func TestSelfInfo_HasAuthority(t *testing.T) {
	s := SelfInfo{Authorities: []string{"USER"}}
	if !s.HasAuthority("USER") || s.HasAuthority("ADMIN") {
		t.Error("HasAuthority mismatch")
	}
}
