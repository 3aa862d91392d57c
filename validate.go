package arcanum

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/arcanum-sdk/client-go/internal/apierrors"
)

// Role is an access level granted on a project or secret.
type Role string

// Roles accepted by the grant operations.
const (
	RoleViewer Role = "viewer"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

var allowedRoles = []Role{RoleViewer, RoleEditor, RoleAdmin}

// ParseRole normalizes s to lowercase and checks it names a known role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(s))
	for _, allowed := range allowedRoles {
		if r == allowed {
			return r, nil
		}
	}
	names := make([]string, len(allowedRoles))
	for i, allowed := range allowedRoles {
		names[i] = string(allowed)
	}
	return "", invalid("Role", "must be one of: "+strings.Join(names, ", "))
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidSlug reports whether s is lowercase alphanumeric groups joined by
// single hyphens.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

func invalid(field, reason string) error {
	return &apierrors.InvalidArgumentError{Field: field, Reason: reason}
}

func validateNotEmpty(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "cannot be empty.")
	}
	return nil
}

func validateNetID(netID string) error {
	return validateNotEmpty(netID, "NetID")
}

func validateSlug(slug, field string) error {
	if err := validateNotEmpty(slug, field); err != nil {
		return err
	}
	if !ValidSlug(slug) {
		return invalid(field, "must be a valid slug (lowercase letters, numbers, and hyphens only).")
	}
	return nil
}

// validateID accepts any decimal number, as the server parses ids itself.
// The id is sent in the path verbatim, so surrounding whitespace is rejected.
func validateID(id, field string) error {
	if err := validateNotEmpty(id, field); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(id, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return invalid(field, "must be a valid number.")
	}
	return nil
}

func validateRequired(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required.")
	}
	return nil
}
