package arcanum

import (
	"context"
	"net/http"
)

// ProjectInput is the body of CreateProject and EditProject. Empty fields
// are omitted, so EditProject changes only what is set.
type ProjectInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// ListProjects returns the projects visible to the client. When the server
// returns no projects the result is nil rather than an empty slice.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	raw, err := c.do(ctx, http.MethodGet, "project/list", nil)
	if err != nil {
		return nil, err
	}
	if isEmptyPayload(raw) {
		return nil, nil
	}
	return decodeList(raw, decodeProject)
}

// CreateProject creates a project. The name is required.
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*Project, error) {
	if err := validateRequired(input.Name, "Project name"); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodPost, "project/new", input)
	if err != nil {
		return nil, err
	}
	return decodeOne(raw, decodeProject)
}

// GetProject returns the project with the given slug.
func (c *Client) GetProject(ctx context.Context, slug string) (*Project, error) {
	if err := validateSlug(slug, "Project slug"); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodGet, endpoint("project", slug), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne(raw, decodeProject)
}

// EditProject updates the project with the given slug and returns it.
func (c *Client) EditProject(ctx context.Context, slug string, input ProjectInput) (*Project, error) {
	if err := validateSlug(slug, "Project slug"); err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, http.MethodPut, endpoint("project", slug), input)
	if err != nil {
		return nil, err
	}
	return decodeOne(raw, decodeProject)
}

// DeleteProject deletes the project with the given slug.
func (c *Client) DeleteProject(ctx context.Context, slug string) (Payload, error) {
	if err := validateSlug(slug, "Project slug"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, endpoint("project", slug), nil)
}

// AddProjectSecret attaches an existing secret to a project.
func (c *Client) AddProjectSecret(ctx context.Context, slug, secretID string) (Payload, error) {
	return c.modifyProjectSecret(ctx, http.MethodPut, slug, secretID)
}

// RemoveProjectSecret detaches a secret from a project.
func (c *Client) RemoveProjectSecret(ctx context.Context, slug, secretID string) (Payload, error) {
	return c.modifyProjectSecret(ctx, http.MethodDelete, slug, secretID)
}

func (c *Client) modifyProjectSecret(ctx context.Context, method, slug, secretID string) (Payload, error) {
	if err := validateSlug(slug, "Project slug"); err != nil {
		return nil, err
	}
	if err := validateID(secretID, "Secret ID"); err != nil {
		return nil, err
	}
	return c.do(ctx, method, endpoint("project", slug, "secret", secretID), nil)
}

// GrantProjectAccess grants role on a project to the user netID. The role is
// matched case-insensitively and sent in lowercase.
func (c *Client) GrantProjectAccess(ctx context.Context, slug, netID string, role Role) (Payload, error) {
	if err := validateSlug(slug, "Project slug"); err != nil {
		return nil, err
	}
	if err := validateNetID(netID); err != nil {
		return nil, err
	}
	r, err := ParseRole(string(role))
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, endpoint("project", slug, string(r), netID), nil)
}

// GrantProjectViewAccess grants the viewer role.
func (c *Client) GrantProjectViewAccess(ctx context.Context, slug, netID string) (Payload, error) {
	return c.GrantProjectAccess(ctx, slug, netID, RoleViewer)
}

// GrantProjectEditorAccess grants the editor role.
func (c *Client) GrantProjectEditorAccess(ctx context.Context, slug, netID string) (Payload, error) {
	return c.GrantProjectAccess(ctx, slug, netID, RoleEditor)
}

// GrantProjectAdminAccess grants the admin role.
func (c *Client) GrantProjectAdminAccess(ctx context.Context, slug, netID string) (Payload, error) {
	return c.GrantProjectAccess(ctx, slug, netID, RoleAdmin)
}

// RevokeProjectAccess removes every role the user netID holds on a project.
func (c *Client) RevokeProjectAccess(ctx context.Context, slug, netID string) (Payload, error) {
	if err := validateSlug(slug, "Project slug"); err != nil {
		return nil, err
	}
	if err := validateNetID(netID); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodDelete, endpoint("project", slug, "revoke", netID), nil)
}

// GetProjectAuthorities returns who has access to a project.
func (c *Client) GetProjectAuthorities(ctx context.Context, slug string) (Payload, error) {
	if err := validateSlug(slug, "Project slug"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodGet, endpoint("project", slug, "authorities"), nil)
}

// ProcessBulkProjectAccess applies several grants and revocations at once.
// body is sent as JSON unchanged.
func (c *Client) ProcessBulkProjectAccess(ctx context.Context, slug string, body any) (Payload, error) {
	if err := validateSlug(slug, "Project slug"); err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPost, endpoint("project", slug, "authorities", "bulk"), body)
}
