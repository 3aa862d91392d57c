package arcanum

import (
	"context"
	"strconv"
	"strings"
)

// The finders filter the result of a single list call on the client side.
// The two that return a full entity fetch it with a second, sequential call.

// GetVaultByName returns the vault named name, or nil.
func (c *Client) GetVaultByName(ctx context.Context, name string) (*Vault, error) {
	vaults, err := c.ListVaults(ctx)
	if err != nil {
		return nil, err
	}
	return findPtr(vaults, func(v Vault) bool { return v.Name == name }), nil
}

// GetSecretByName returns the first secret named name, or nil. A non-empty
// vaultName restricts the match to that vault.
func (c *Client) GetSecretByName(ctx context.Context, name, vaultName string) (*EncryptedSecret, error) {
	secrets, err := c.ListSecrets(ctx)
	if err != nil {
		return nil, err
	}
	return findPtr(secrets, func(s EncryptedSecret) bool {
		return s.Name == name && (vaultName == "" || s.Vault.Name == vaultName)
	}), nil
}

// GetSecretsByVault returns the secrets stored in the named vault.
func (c *Client) GetSecretsByVault(ctx context.Context, vaultName string) ([]EncryptedSecret, error) {
	secrets, err := c.ListSecrets(ctx)
	if err != nil {
		return nil, err
	}
	return filter(secrets, func(s EncryptedSecret) bool { return s.Vault.Name == vaultName }), nil
}

// FindSecretsByName returns the secrets whose name contains term, ignoring case.
func (c *Client) FindSecretsByName(ctx context.Context, term string) ([]EncryptedSecret, error) {
	secrets, err := c.ListSecrets(ctx)
	if err != nil {
		return nil, err
	}
	return filter(secrets, func(s EncryptedSecret) bool { return containsFold(s.Name, term) }), nil
}

// GetDecryptedSecretByName looks up a secret like GetSecretByName and then
// fetches its values with GetSecret. It returns nil when no secret matches.
func (c *Client) GetDecryptedSecretByName(ctx context.Context, name, vaultName string) (*DecryptedSecret, error) {
	secret, err := c.GetSecretByName(ctx, name, vaultName)
	if err != nil || secret == nil {
		return nil, err
	}
	return c.GetSecret(ctx, strconv.FormatInt(secret.ID, 10))
}

// GetProjectByName looks up a project by name in ListProjects and then
// fetches it with GetProject. It returns nil when no project matches.
func (c *Client) GetProjectByName(ctx context.Context, name string) (*Project, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	project := findPtr(projects, func(p Project) bool { return p.Name == name })
	if project == nil {
		return nil, nil
	}
	return c.GetProject(ctx, project.Slug)
}

// FindProjectsByName returns the projects whose name contains term, ignoring
// case. Like ListProjects it returns nil when there are no projects at all.
func (c *Client) FindProjectsByName(ctx context.Context, term string) ([]Project, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil || projects == nil {
		return nil, err
	}
	return filter(projects, func(p Project) bool { return containsFold(p.Name, term) }), nil
}

// GetProjectsByOwner returns the projects owned by the user netID. Like
// ListProjects it returns nil when there are no projects at all.
func (c *Client) GetProjectsByOwner(ctx context.Context, netID string) ([]Project, error) {
	projects, err := c.ListProjects(ctx)
	if err != nil || projects == nil {
		return nil, err
	}
	return filter(projects, func(p Project) bool { return p.Owner.NetID == netID }), nil
}

// findPtr returns a copy of the first element matching match, or nil.
func findPtr[T any](items []T, match func(T) bool) *T {
	for _, item := range items {
		if match(item) {
			return &item
		}
	}
	return nil
}

// filter never returns nil.
func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
