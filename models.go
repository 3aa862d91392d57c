package arcanum

import (
	"slices"
	"time"
)

// User is an Arcanum account.
type User struct {
	ID          int64    `json:"id"`
	NetID       string   `json:"netId"`
	Name        string   `json:"name"`
	Authorities []string `json:"authorities"`
}

// HasAuthority reports whether the user holds authority, compared exactly.
func (u User) HasAuthority(authority string) bool {
	return slices.Contains(u.Authorities, authority)
}

// ToMap returns the user as a plain mapping keyed like the API.
func (u User) ToMap() map[string]any {
	return map[string]any{
		"id":          u.ID,
		"netId":       u.NetID,
		"name":        u.Name,
		"authorities": cloneStrings(u.Authorities),
	}
}

// Vault is a named container of secrets.
type Vault struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToMap returns the vault as a plain mapping keyed like the API.
func (v Vault) ToMap() map[string]any {
	return map[string]any{
		"id":          v.ID,
		"name":        v.Name,
		"description": v.Description,
	}
}

// SecretField is one named value of a decrypted secret. Slug is unique
// within its secret.
type SecretField struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Value string `json:"value"`
}

// ToMap returns the field as a plain mapping keyed like the API.
func (f SecretField) ToMap() map[string]any {
	return map[string]any{
		"name":  f.Name,
		"slug":  f.Slug,
		"value": f.Value,
	}
}

// EncryptedSecret is the metadata view of a secret. Fields lists field slugs
// only; values are fetched with GetSecret.
type EncryptedSecret struct {
	ID int64 `json:"id"`
	// ExternalID identifies the secret in the backing key store.
	ExternalID string   `json:"azureId"`
	Name       string   `json:"name"`
	Fields     []string `json:"fields"`
	Vault      Vault    `json:"vault"`
	Owner      User     `json:"owner"`
}

// HasFieldSlug reports whether the secret has a field with the given slug.
func (s EncryptedSecret) HasFieldSlug(slug string) bool {
	return slices.Contains(s.Fields, slug)
}

// ToMap returns the secret as a plain mapping keyed like the API.
func (s EncryptedSecret) ToMap() map[string]any {
	return map[string]any{
		"id":      s.ID,
		"name":    s.Name,
		"azureId": s.ExternalID,
		"fields":  cloneStrings(s.Fields),
		"vault":   s.Vault.ToMap(),
		"owner":   s.Owner.ToMap(),
	}
}

// DecryptedSecret is a secret with its field values. Vault is the vault
// name, not a Vault.
type DecryptedSecret struct {
	Name        string        `json:"name"`
	Slug        string        `json:"slug"`
	Description string        `json:"description"`
	Vault       string        `json:"vault"`
	Fields      []SecretField `json:"fields"`
}

// Field returns the field with the given slug, or nil.
func (s DecryptedSecret) Field(slug string) *SecretField {
	for i := range s.Fields {
		if s.Fields[i].Slug == slug {
			f := s.Fields[i]
			return &f
		}
	}
	return nil
}

// FieldValue returns the value of the field with the given slug.
func (s DecryptedSecret) FieldValue(slug string) (string, bool) {
	if f := s.Field(slug); f != nil {
		return f.Value, true
	}
	return "", false
}

// HasField reports whether a field with the given slug exists.
func (s DecryptedSecret) HasField(slug string) bool {
	return s.Field(slug) != nil
}

// ToMap returns the secret as a plain mapping keyed like the API.
func (s DecryptedSecret) ToMap() map[string]any {
	fields := make([]map[string]any, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, f.ToMap())
	}
	return map[string]any{
		"name":        s.Name,
		"slug":        s.Slug,
		"description": s.Description,
		"vault":       s.Vault,
		"fields":      fields,
	}
}

// Project groups secrets under an owner. Slug addresses the project in the
// API.
type Project struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Slug        string            `json:"slug"`
	Owner       User              `json:"owner"`
	Secrets     []EncryptedSecret `json:"secrets"`
}

// HasSecret reports whether the project contains the secret with id.
func (p Project) HasSecret(id int64) bool {
	return p.SecretByID(id) != nil
}

// SecretByID returns the project secret with id, or nil.
func (p Project) SecretByID(id int64) *EncryptedSecret {
	return findPtr(p.Secrets, func(s EncryptedSecret) bool { return s.ID == id })
}

// SecretByName returns the first project secret named name, or nil.
func (p Project) SecretByName(name string) *EncryptedSecret {
	return findPtr(p.Secrets, func(s EncryptedSecret) bool { return s.Name == name })
}

// ToMap returns the project as a plain mapping keyed like the API.
func (p Project) ToMap() map[string]any {
	secrets := make([]map[string]any, 0, len(p.Secrets))
	for _, s := range p.Secrets {
		secrets = append(secrets, s.ToMap())
	}
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"slug":        p.Slug,
		"owner":       p.Owner.ToMap(),
		"secrets":     secrets,
	}
}

// Token is an API credential. APIKey and APISecret are set only in the
// response to CreateToken; the secret cannot be retrieved again.
type Token struct {
	Principal   string   `json:"principal"`
	APIKey      *string  `json:"apiKey"`
	APISecret   *string  `json:"apiSecret"`
	UserToken   bool     `json:"userToken"`
	Owner       User     `json:"owner"`
	Expiry      int64    `json:"expiry"`
	Authorities []string `json:"authorities"`
}

// IsExpired reports whether the expiry has passed.
func (t Token) IsExpired() bool {
	return expired(t.Expiry)
}

// ExpiresAt returns the expiry as a time.
func (t Token) ExpiresAt() time.Time {
	return time.Unix(t.Expiry, 0)
}

// ToMap returns the token as a plain mapping keyed like the API. Absent
// credentials map to nil.
func (t Token) ToMap() map[string]any {
	return map[string]any{
		"principal":   t.Principal,
		"apiKey":      optional(t.APIKey),
		"apiSecret":   optional(t.APISecret),
		"userToken":   t.UserToken,
		"owner":       t.Owner.ToMap(),
		"expiry":      t.Expiry,
		"authorities": cloneStrings(t.Authorities),
	}
}

// SelfInfo describes the token the client authenticates with.
type SelfInfo struct {
	Principal       string   `json:"principal"`
	EncryptedSecret string   `json:"encryptedSecret"`
	UserToken       bool     `json:"userToken"`
	Owner           User     `json:"owner"`
	Expiry          int64    `json:"expiry"`
	Authorities     []string `json:"authorities"`
}

// IsExpired reports whether the expiry has passed.
func (s SelfInfo) IsExpired() bool {
	return expired(s.Expiry)
}

// ExpiresAt returns the expiry as a time.
func (s SelfInfo) ExpiresAt() time.Time {
	return time.Unix(s.Expiry, 0)
}

// HasAuthority reports whether the token holds authority, compared exactly.
func (s SelfInfo) HasAuthority(authority string) bool {
	return slices.Contains(s.Authorities, authority)
}

// ToMap returns the info as a plain mapping keyed like the API.
func (s SelfInfo) ToMap() map[string]any {
	return map[string]any{
		"principal":       s.Principal,
		"encryptedSecret": s.EncryptedSecret,
		"userToken":       s.UserToken,
		"owner":           s.Owner.ToMap(),
		"expiry":          s.Expiry,
		"authorities":     cloneStrings(s.Authorities),
	}
}

// now is replaced in tests.
var now = time.Now

func expired(expiry int64) bool {
	return now().Unix() > expiry
}

func optional(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
