package arcanum

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	devVaultJSON   = `{"id":2,"name":"Dev","description":""}`
	bobJSON        = `{"id":8,"netId":"bob","name":"Bob","authorities":["USER"]}`
	devSecretJSON  = `{"id":43,"name":"database","azureId":"kv-43","fields":["password"],"vault":` + devVaultJSON + `,"owner":` + bobJSON + `}`
	apiSecretJSON  = `{"id":44,"name":"Payments API key","azureId":"kv-44","fields":["key"],"vault":` + vaultJSON + `,"owner":` + userJSON + `}`
	opsProjectJSON = `{"id":4,"name":"Ops Tools","slug":"ops-tools","owner":` + bobJSON + `}`
)

func secretRoutes() map[string]reply {
	return map[string]reply{
		"GET /api/secret/list": {body: "[" + secretJSON + "," + devSecretJSON + "," + apiSecretJSON + "]"},
		"GET /api/secret/42":   {body: decryptedJSON},
	}
}

func TestGetVaultByName(t *testing.T) {
	client, api := newFakeClient(t, map[string]reply{
		"GET /api/vault/list": {body: "[" + vaultJSON + "," + devVaultJSON + "]"},
	})
	ctx := context.Background()

	v, err := client.GetVaultByName(ctx, "Dev")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(2), v.ID)

	v, err = client.GetVaultByName(ctx, "dev")
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Len(t, api.Requests(), 2)
}

func TestGetSecretByName(t *testing.T) {
	client, _ := newFakeClient(t, secretRoutes())
	ctx := context.Background()

	s, err := client.GetSecretByName(ctx, "database", "")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(42), s.ID)

	s, err = client.GetSecretByName(ctx, "database", "Dev")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(43), s.ID)

	s, err = client.GetSecretByName(ctx, "database", "Staging")
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestGetSecretsByVault(t *testing.T) {
	client, _ := newFakeClient(t, secretRoutes())

	secrets, err := client.GetSecretsByVault(context.Background(), "Prod")
	require.NoError(t, err)
	require.Len(t, secrets, 2)
	assert.Equal(t, int64(42), secrets[0].ID)
	assert.Equal(t, int64(44), secrets[1].ID)

	none, err := client.GetSecretsByVault(context.Background(), "Nowhere")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestFindSecretsByName(t *testing.T) {
	client, _ := newFakeClient(t, secretRoutes())

	secrets, err := client.FindSecretsByName(context.Background(), "API")
	require.NoError(t, err)
	require.Len(t, secrets, 1)
	assert.Equal(t, "Payments API key", secrets[0].Name)

	secrets, err = client.FindSecretsByName(context.Background(), "DATA")
	require.NoError(t, err)
	assert.Len(t, secrets, 2)
}

func TestGetDecryptedSecretByName(t *testing.T) {
	t.Run("match fetches by id", func(t *testing.T) {
		client, api := newFakeClient(t, secretRoutes())

		s, err := client.GetDecryptedSecretByName(context.Background(), "database", "Prod")
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "database", s.Slug)

		reqs := api.Requests()
		require.Len(t, reqs, 2)
		assert.Equal(t, "/api/secret/list", reqs[0].Path)
		assert.Equal(t, "/api/secret/42", reqs[1].Path)
	})

	t.Run("no match makes one call", func(t *testing.T) {
		client, api := newFakeClient(t, secretRoutes())

		s, err := client.GetDecryptedSecretByName(context.Background(), "missing", "")
		require.NoError(t, err)
		assert.Nil(t, s)
		assert.Len(t, api.Requests(), 1)
	})

	t.Run("list failure", func(t *testing.T) {
		client, api := newFakeClient(t, map[string]reply{
			"GET /api/secret/list": {status: http.StatusUnauthorized, body: `{"message":"bad token"}`},
		})

		_, err := client.GetDecryptedSecretByName(context.Background(), "database", "")
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Len(t, api.Requests(), 1)
	})
}

func TestGetProjectByName(t *testing.T) {
	routes := map[string]reply{
		"GET /api/project/list":      {body: "[" + projectJSON + "," + opsProjectJSON + "]"},
		"GET /api/project/ops-tools": {body: opsProjectJSON},
	}

	t.Run("match fetches by slug", func(t *testing.T) {
		client, api := newFakeClient(t, routes)

		p, err := client.GetProjectByName(context.Background(), "Ops Tools")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "ops-tools", p.Slug)

		reqs := api.Requests()
		require.Len(t, reqs, 2)
		assert.Equal(t, "/api/project/ops-tools", reqs[1].Path)
	})

	t.Run("no match", func(t *testing.T) {
		client, api := newFakeClient(t, routes)

		p, err := client.GetProjectByName(context.Background(), "ops tools")
		require.NoError(t, err)
		assert.Nil(t, p)
		assert.Len(t, api.Requests(), 1)
	})

	t.Run("no projects", func(t *testing.T) {
		client, _ := newFakeClient(t, map[string]reply{"GET /api/project/list": {body: "[]"}})

		p, err := client.GetProjectByName(context.Background(), "Ops Tools")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestFindProjectsByName(t *testing.T) {
	client, _ := newFakeClient(t, map[string]reply{
		"GET /api/project/list": {body: "[" + projectJSON + "," + opsProjectJSON + "]"},
	})

	projects, err := client.FindProjectsByName(context.Background(), "TOOL")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Ops Tools", projects[0].Name)

	projects, err = client.FindProjectsByName(context.Background(), "nothing")
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestGetProjectsByOwner(t *testing.T) {
	client, _ := newFakeClient(t, map[string]reply{
		"GET /api/project/list": {body: "[" + projectJSON + "," + opsProjectJSON + "]"},
	})

	projects, err := client.GetProjectsByOwner(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "billing", projects[0].Slug)
}

func TestProjectFinders_NoProjectsIsNil(t *testing.T) {
	client, _ := newFakeClient(t, map[string]reply{"GET /api/project/list": {body: "[]"}})
	ctx := context.Background()

	found, err := client.FindProjectsByName(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, found)

	owned, err := client.GetProjectsByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, owned)
}
