package arcanum

import (
	"context"
	"net/http"
)

// AuthorityInput is the body of GrantUserAuthority and RevokeUserAuthority.
type AuthorityInput struct {
	Authority string `json:"authority"`
}

// GetSelfUserInfo returns the user the credentials belong to.
func (c *Client) GetSelfUserInfo(ctx context.Context) (*User, error) {
	raw, err := c.do(ctx, http.MethodGet, "user/me", nil)
	if err != nil {
		return nil, err
	}
	return decodeOne(raw, decodeUser)
}

// ListUsersForSharing returns the users a resource can be shared with.
func (c *Client) ListUsersForSharing(ctx context.Context) ([]User, error) {
	raw, err := c.do(ctx, http.MethodGet, "user/list", nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, decodeUser)
}

// ListUsersForAdmin returns every user. It requires an administrator.
func (c *Client) ListUsersForAdmin(ctx context.Context) ([]User, error) {
	raw, err := c.do(ctx, http.MethodGet, "user/list/admin", nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, decodeUser)
}

// GrantUserAuthority adds an authority to the user netID.
func (c *Client) GrantUserAuthority(ctx context.Context, netID string, input AuthorityInput) (Payload, error) {
	if err := validateNetID(netID); err != nil {
		return nil, err
	}
	if err := validateRequired(input.Authority, "Authority"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, endpoint("user", netID, "authority"), input)
}

// RevokeUserAuthority removes an authority from the user netID. The body is
// sent with the DELETE request.
func (c *Client) RevokeUserAuthority(ctx context.Context, netID string, input AuthorityInput) (Payload, error) {
	if err := validateNetID(netID); err != nil {
		return nil, err
	}
	if err := validateRequired(input.Authority, "Authority"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, endpoint("user", netID, "authority"), input)
}
