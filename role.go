package goAuthz

import (
	"github.com/MrEthical07/goAuthz/permission"
)

// StandardRole is the built-in three-tier role. The zero value is RoleUser.
//
// Roles compare by identity, not by permission set. Capability grows
// User ⊆ Premium ⊆ Admin, but the type carries no numeric ordering.
type StandardRole uint8

const (
	RoleUser StandardRole = iota
	RolePremium
	RoleAdmin
)

var standardRoleNames = [...]string{
	RoleUser:    "user",
	RolePremium: "premium",
	RoleAdmin:   "admin",
}

// StandardRoles returns every built-in role, least privileged first.
func StandardRoles() []StandardRole {
	return []StandardRole{RoleUser, RolePremium, RoleAdmin}
}

// ParseStandardRole matches s exactly against "user", "premium" and "admin".
func ParseStandardRole(s string) (StandardRole, error) {
	for i, name := range standardRoleNames {
		if s == name {
			return StandardRole(i), nil
		}
	}
	return 0, &permission.ParseError{Kind: ErrUnknownRoleName, Input: s}
}

// Permissions returns the fixed default set for r. An out-of-range value
// grants nothing.
func (r StandardRole) Permissions() permission.Set {
	switch r {
	case RoleUser:
		return permission.Read | permission.APIAccess
	case RolePremium:
		return permission.Read | permission.Write | permission.APIAccess |
			permission.Premium | permission.Export
	case RoleAdmin:
		return permission.All()
	default:
		return permission.Empty()
	}
}

// Name returns the stable lowercase identifier, or "" for an out-of-range value.
func (r StandardRole) Name() string {
	if !r.IsValid() {
		return ""
	}
	return standardRoleNames[r]
}

// String returns the role name.
func (r StandardRole) String() string { return r.Name() }

// IsValid reports whether r is one of the three built-in roles.
func (r StandardRole) IsValid() bool { return int(r) < len(standardRoleNames) }

// IsAdmin reports whether the role grants Admin.
func (r StandardRole) IsAdmin() bool { return permission.IsAdmin(r) }

// IsPremium reports whether the role grants Premium.
func (r StandardRole) IsPremium() bool { return permission.IsPremium(r) }

// IsUser reports whether r is the default role.
func (r StandardRole) IsUser() bool { return r == RoleUser }

// Can reports whether the role grants every bit of p.
func (r StandardRole) Can(p permission.Set) bool { return permission.Can(r, p) }

// CanAll is Can.
func (r StandardRole) CanAll(p permission.Set) bool { return permission.CanAll(r, p) }

// CanAny reports whether the role grants at least one bit of p.
func (r StandardRole) CanAny(p permission.Set) bool { return permission.CanAny(r, p) }

// MarshalText writes the lowercase name; JSON and YAML use it too.
func (r StandardRole) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, &permission.ParseError{Kind: ErrUnknownRoleName}
	}
	return []byte(standardRoleNames[r]), nil
}

// UnmarshalText parses the exact lowercase role name.
func (r *StandardRole) UnmarshalText(text []byte) error {
	v, err := ParseStandardRole(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
