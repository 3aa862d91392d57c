package arcanum

import (
	"context"
	"net/http"

	"github.com/arcanum-sdk/client-go/internal/wire"
)

// TokenInput is the body of CreateToken and RevokeToken.
type TokenInput struct {
	Principal   string   `json:"principal"`
	Authorities []string `json:"authorities,omitempty"`
	// Expiry is a Unix timestamp; zero leaves it to the server.
	Expiry int64 `json:"expiry,omitempty"`
}

// ListTokens returns the tokens owned by the caller. APISecret is always
// nil in the result.
func (c *Client) ListTokens(ctx context.Context) ([]Token, error) {
	raw, err := c.do(ctx, http.MethodGet, "token/list", nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, func(o wire.Object) (Token, error) {
		return decodeToken(o, false)
	})
}

// GetTokenInfo describes the token the client authenticates with.
func (c *Client) GetTokenInfo(ctx context.Context) (*SelfInfo, error) {
	raw, err := c.do(ctx, http.MethodGet, "token/me", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne(raw, decodeSelfInfo)
}

// CreateToken creates a token. The returned APISecret is shown only here.
func (c *Client) CreateToken(ctx context.Context, input TokenInput) (*Token, error) {
	if err := validateRequired(input.Principal, "Token principal"); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodPost, "token/create", input)
	if err != nil {
		return nil, err
	}
	return decodeOne(raw, func(o wire.Object) (Token, error) {
		return decodeToken(o, true)
	})
}

// RevokeToken revokes the token of input.Principal.
func (c *Client) RevokeToken(ctx context.Context, input TokenInput) (Payload, error) {
	if err := validateRequired(input.Principal, "Token principal"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, "token/revoke", input)
}
