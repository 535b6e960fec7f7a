// Package account provides user profiles and roles.
package account

import (
	"fmt"
	"strings"

	"github.com/investmatch/investmatch/domain/errs"
)

// Role is the account type issued at sign-up.
type Role string

// Role values.
const (
	RoleFounder  Role = "FOUNDER"
	RoleInvestor Role = "INVESTOR"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole parses a role case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleFounder:
		return RoleFounder, nil
	case RoleInvestor:
		return RoleInvestor, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", errs.ErrValidation, s)
	}
}

// String returns the role name.
func (r Role) String() string { return string(r) }

// HomePath returns the dashboard a user lands on after authenticating.
func (r Role) HomePath() string {
	switch r {
	case RoleFounder:
		return "/founder/dashboard"
	case RoleInvestor:
		return "/investor/dashboard"
	case RoleAdmin:
		return "/admin"
	default:
		return "/"
	}
}
