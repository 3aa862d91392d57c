package arcanum

import (
	"context"
	"net/http"
)

// VaultInput is the body of CreateVault.
type VaultInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListVaults returns the vaults visible to the client.
func (c *Client) ListVaults(ctx context.Context) ([]Vault, error) {
	raw, err := c.do(ctx, http.MethodGet, "vault/list", nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, decodeVault)
}

// CreateVault creates a vault. The name is required.
func (c *Client) CreateVault(ctx context.Context, input VaultInput) (*Vault, error) {
	if err := validateRequired(input.Name, "Vault name"); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodPost, "vault/create", input)
	if err != nil {
		return nil, err
	}
	return decodeOne(raw, decodeVault)
}

// GrantVaultAccess gives the user netID access to the named vault.
func (c *Client) GrantVaultAccess(ctx context.Context, vaultName, netID string) (Payload, error) {
	if err := validateNotEmpty(vaultName, "Vault name"); err != nil {
		return nil, err
	}
	if err := validateNetID(netID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, endpoint("vault", vaultName, netID), nil)
}

// RevokeVaultAccess removes the user netID from the named vault.
func (c *Client) RevokeVaultAccess(ctx context.Context, vaultName, netID string) (Payload, error) {
	if err := validateNotEmpty(vaultName, "Vault name"); err != nil {
		return nil, err
	}
	if err := validateNetID(netID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, endpoint("vault", vaultName, netID), nil)
}
