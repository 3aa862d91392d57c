package arcanum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanum-sdk/client-go/internal/wire"
)

func TestDecodeUser(t *testing.T) {
	u, err := decodeUser(parseObject(t, userJSON))
	require.NoError(t, err)
	assert.Equal(t, User{ID: 7, NetID: "alice", Name: "Alice", Authorities: []string{"USER", "ADMIN"}}, u)
}

func TestDecodeVault_DescriptionDefault(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"absent", `{"id":2,"name":"Dev"}`},
		{"null", `{"id":2,"name":"Dev","description":null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := decodeVault(parseObject(t, tt.json))
			require.NoError(t, err)
			assert.Equal(t, Vault{ID: 2, Name: "Dev"}, v)
		})
	}
}

func TestDecoders_RequiredKeys(t *testing.T) {
	tests := []struct {
		name   string
		decode func(wire.Object) error
		json   string
		key    string
	}{
		{"user id", func(o wire.Object) error { _, err := decodeUser(o); return err },
			`{"netId":"a","name":"A","authorities":[]}`, "id"},
		{"user authorities", func(o wire.Object) error { _, err := decodeUser(o); return err },
			`{"id":1,"netId":"a","name":"A"}`, "authorities"},
		{"vault name", func(o wire.Object) error { _, err := decodeVault(o); return err },
			`{"id":1}`, "name"},
		{"secret owner", func(o wire.Object) error { _, err := decodeEncryptedSecret(o); return err },
			`{"id":1,"name":"s","azureId":"x","fields":[],"vault":` + vaultJSON + `}`, "owner"},
		{"secret nested vault", func(o wire.Object) error { _, err := decodeEncryptedSecret(o); return err },
			`{"id":1,"name":"s","azureId":"x","fields":[],"vault":{"id":1},"owner":` + userJSON + `}`, "vault.name"},
		{"project slug", func(o wire.Object) error { _, err := decodeProject(o); return err },
			`{"id":1,"name":"p","owner":` + userJSON + `}`, "slug"},
		{"project nested owner", func(o wire.Object) error { _, err := decodeProject(o); return err },
			`{"id":1,"name":"p","slug":"p","owner":{"id":1,"name":"A","authorities":[]}}`, "owner.netId"},
		{"decrypted field value", func(o wire.Object) error { _, err := decodeDecryptedSecret(o); return err },
			`{"name":"s","slug":"s","vault":"v","fields":[{"name":"n","slug":"s"}]}`, "fields[0].value"},
		{"project secret owner", func(o wire.Object) error { _, err := decodeProject(o); return err },
			`{"id":1,"name":"p","slug":"p","owner":` + userJSON + `,"secrets":[{"id":1,"name":"s","azureId":"x","fields":[],"vault":` + vaultJSON + `,"owner":{"id":1,"name":"A","authorities":[]}}]}`, "secrets[0].owner.netId"},
		{"token expiry", func(o wire.Object) error { _, err := decodeToken(o, true); return err },
			`{"principal":"p","userToken":false,"owner":` + userJSON + `,"authorities":[]}`, "expiry"},
		{"self info userToken", func(o wire.Object) error { _, err := decodeSelfInfo(o); return err },
			`{"principal":"p","owner":` + userJSON + `,"expiry":1,"authorities":[]}`, "userToken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode(parseObject(t, tt.json))
			require.Error(t, err)
			assert.ErrorIs(t, err, wire.ErrDecode)

			var de *wire.DecodeError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, tt.key, de.Key)
			assert.True(t, de.Missing)
		})
	}
}

func TestDecoders_WrongShape(t *testing.T) {
	_, err := decodeVault(parseObject(t, `{"id":"one","name":"V"}`))
	var de *wire.DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "id", de.Key)
	assert.False(t, de.Missing)

	_, err = decodeProject(parseObject(t, `{"id":1,"name":"p","slug":"p","owner":`+userJSON+`,"secrets":{}}`))
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "secrets", de.Key)
}

func TestDecodeProject_Secrets(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		p, err := decodeProject(parseObject(t, projectJSON))
		require.NoError(t, err)
		require.Len(t, p.Secrets, 1)
		assert.Equal(t, int64(42), p.Secrets[0].ID)
		assert.Equal(t, "kv-42", p.Secrets[0].ExternalID)
		assert.Equal(t, "Prod", p.Secrets[0].Vault.Name)
		assert.Equal(t, "alice", p.Secrets[0].Owner.NetID)
	})

	t.Run("absent", func(t *testing.T) {
		p, err := decodeProject(parseObject(t, `{"id":1,"name":"p","slug":"p","owner":`+userJSON+`}`))
		require.NoError(t, err)
		assert.NotNil(t, p.Secrets)
		assert.Empty(t, p.Secrets)
		assert.Equal(t, "", p.Description)
	})
}

func TestDecodeToken(t *testing.T) {
	t.Run("creation exposes secret", func(t *testing.T) {
		tok, err := decodeToken(parseObject(t, tokenJSON), true)
		require.NoError(t, err)
		require.NotNil(t, tok.APIKey)
		require.NotNil(t, tok.APISecret)
		assert.Equal(t, "ak", *tok.APIKey)
		assert.Equal(t, "as", *tok.APISecret)
		assert.Equal(t, int64(4102444800), tok.Expiry)
	})

	t.Run("listing hides secret", func(t *testing.T) {
		tok, err := decodeToken(parseObject(t, tokenJSON), false)
		require.NoError(t, err)
		assert.NotNil(t, tok.APIKey)
		assert.Nil(t, tok.APISecret)
	})

	t.Run("optional credentials absent", func(t *testing.T) {
		tok, err := decodeToken(parseObject(t, `{"principal":"p","userToken":true,"owner":`+userJSON+`,"expiry":5,"authorities":["USER"]}`), true)
		require.NoError(t, err)
		assert.Nil(t, tok.APIKey)
		assert.Nil(t, tok.APISecret)
		assert.True(t, tok.UserToken)
	})
}

func TestDecodeSelfInfo_EncryptedSecretDefault(t *testing.T) {
	s, err := decodeSelfInfo(parseObject(t, `{"principal":"p","userToken":true,"owner":`+userJSON+`,"expiry":5,"authorities":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "", s.EncryptedSecret)
	assert.Equal(t, []string{}, s.Authorities)
}

func TestDecodeList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		vaults, err := decodeList([]any{}, decodeVault)
		require.NoError(t, err)
		assert.NotNil(t, vaults)
		assert.Empty(t, vaults)
	})

	t.Run("empty body", func(t *testing.T) {
		vaults, err := decodeList(map[string]any{}, decodeVault)
		require.NoError(t, err)
		assert.NotNil(t, vaults)
	})

	t.Run("not a list", func(t *testing.T) {
		_, err := decodeList(map[string]any{"id": 1}, decodeVault)
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 0, apiErr.StatusCode)
		assert.ErrorIs(t, err, ErrDecode)
	})

	t.Run("element error names index", func(t *testing.T) {
		_, err := decodeList([]any{map[string]any{"id": 1, "name": "a"}, "oops"}, decodeVault)
		var de *wire.DecodeError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "[1]", de.Key)
	})
}

func TestDecodeOne_NotObject(t *testing.T) {
	_, err := decodeOne([]any{}, decodeUser)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Equal(t, KindAPI, KindOf(err))
}
