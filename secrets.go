package arcanum

import (
	"context"
	"net/http"
)

// SecretInput is the body of CreateSecret and UpdateSecret. Vault names the
// vault the secret is stored in.
type SecretInput struct {
	Name        string        `json:"name,omitempty"`
	Description string        `json:"description,omitempty"`
	Vault       string        `json:"vault,omitempty"`
	Fields      []SecretField `json:"fields,omitempty"`
}

// ListSecrets returns metadata for every secret visible to the client.
func (c *Client) ListSecrets(ctx context.Context) ([]EncryptedSecret, error) {
	raw, err := c.do(ctx, http.MethodGet, "secret/list", nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, decodeEncryptedSecret)
}

// CreateSecret creates a secret and returns the server's response.
func (c *Client) CreateSecret(ctx context.Context, input SecretInput) (Payload, error) {
	return c.do(ctx, http.MethodPost, "secret/new", input)
}

// GetSecret returns the secret with its field values. The result is nil,
// without error, when the server answers with an empty body.
func (c *Client) GetSecret(ctx context.Context, id string) (*DecryptedSecret, error) {
	if err := validateID(id, "Secret ID"); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodGet, endpoint("secret", id), nil)
	if err != nil {
		return nil, err
	}
	if isEmptyPayload(raw) {
		return nil, nil
	}
	return decodeOne(raw, decodeDecryptedSecret)
}

// GetSecretField returns a single field of a secret.
func (c *Client) GetSecretField(ctx context.Context, id, fieldSlug string) (Payload, error) {
	if err := validateID(id, "Secret ID"); err != nil {
		return nil, err
	}
	if err := validateNotEmpty(fieldSlug, "Field slug"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, endpoint("secret", id, "field", fieldSlug), nil)
}

// UpdateSecret replaces the set fields of a secret.
func (c *Client) UpdateSecret(ctx context.Context, id string, input SecretInput) (Payload, error) {
	if err := validateID(id, "Secret ID"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, endpoint("secret", id), input)
}

// DeleteSecret deletes a secret.
func (c *Client) DeleteSecret(ctx context.Context, id string) (Payload, error) {
	if err := validateID(id, "Secret ID"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, endpoint("secret", id), nil)
}

// GrantSecretAccess grants role on a secret to the user netID. The role is
// matched case-insensitively and sent in lowercase.
func (c *Client) GrantSecretAccess(ctx context.Context, id, netID string, role Role) (Payload, error) {
	if err := validateID(id, "Secret ID"); err != nil {
		return nil, err
	}
	if err := validateNetID(netID); err != nil {
		return nil, err
	}
	r, err := ParseRole(string(role))
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, endpoint("secret", id, string(r), netID), nil)
}

// GrantSecretViewAccess grants the viewer role.
func (c *Client) GrantSecretViewAccess(ctx context.Context, id, netID string) (Payload, error) {
	return c.GrantSecretAccess(ctx, id, netID, RoleViewer)
}

// GrantSecretEditorAccess grants the editor role.
func (c *Client) GrantSecretEditorAccess(ctx context.Context, id, netID string) (Payload, error) {
	return c.GrantSecretAccess(ctx, id, netID, RoleEditor)
}

// GrantSecretAdminAccess grants the admin role.
func (c *Client) GrantSecretAdminAccess(ctx context.Context, id, netID string) (Payload, error) {
	return c.GrantSecretAccess(ctx, id, netID, RoleAdmin)
}

// RevokeSecretAccess removes every role the user netID holds on a secret.
func (c *Client) RevokeSecretAccess(ctx context.Context, id, netID string) (Payload, error) {
	if err := validateID(id, "Secret ID"); err != nil {
		return nil, err
	}
	if err := validateNetID(netID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, endpoint("secret", id, "revoke", netID), nil)
}

// GetSecretAuthorities returns who has access to a secret.
func (c *Client) GetSecretAuthorities(ctx context.Context, id string) (Payload, error) {
	if err := validateID(id, "Secret ID"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, endpoint("secret", id, "authorities"), nil)
}

// ProcessBulkSecretAccess applies several grants and revocations at once.
// body is sent as JSON unchanged.
func (c *Client) ProcessBulkSecretAccess(ctx context.Context, id string, body any) (Payload, error) {
	if err := validateID(id, "Secret ID"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, endpoint("secret", id, "authorities", "bulk"), body)
}
