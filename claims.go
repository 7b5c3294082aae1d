package goAuthz

import (
	"fmt"
	"time"

	"github.com/MrEthical07/goAuthz/permission"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the authorization payload of a verified token: who the subject
// is, which role it holds, when the token expires, and an optional
// permission override.
//
// Claims never enforce expiry themselves; callers check IsExpired before
// trusting a value. Optional fields are omitted from JSON when absent.
type Claims[ID comparable, R permission.Role] struct {
	Subject     ID              `json:"sub" validate:"required"`
	Role        R               `json:"role"`
	ExpiresAt   int64           `json:"exp" validate:"gt=0"`
	IssuedAt    *int64          `json:"iat,omitempty" validate:"omitempty,gt=0"`
	Permissions *permission.Set `json:"permissions,omitempty"`
}

// UserClaims are claims for a UUID subject holding a built-in role.
type UserClaims = Claims[uuid.UUID, StandardRole]

// NewClaims returns claims without issued-at time or permission override.
func NewClaims[ID comparable, R permission.Role](sub ID, role R, exp int64) Claims[ID, R] {
	return Claims[ID, R]{Subject: sub, Role: role, ExpiresAt: exp}
}

// NewClaimsWithIssuedAt returns claims carrying an issued-at time.
func NewClaimsWithIssuedAt[ID comparable, R permission.Role](sub ID, role R, exp, iat int64) Claims[ID, R] {
	c := NewClaims(sub, role, exp)
	c.IssuedAt = &iat
	return c
}

// NewClaimsWithPermissions returns claims whose override replaces the role's
// default permissions. The override is never merged with the role set, so a
// narrower override on an admin reduces that principal's access.
func NewClaimsWithPermissions[ID comparable, R permission.Role](sub ID, role R, exp int64, override permission.Set) Claims[ID, R] {
	c := NewClaims(sub, role, exp)
	c.Permissions = &override
	return c
}

// EffectivePermissions returns the override when present, else the role's
// default set.
func (c Claims[ID, R]) EffectivePermissions() permission.Set {
	if c.Permissions != nil {
		return *c.Permissions
	}
	return c.Role.Permissions()
}

// HasOverride reports whether a permission override is set.
func (c Claims[ID, R]) HasOverride() bool { return c.Permissions != nil }

// Can, CanAll and CanAny check the effective permissions, not the role
// defaults. They diverge from the role checks whenever an override is set.
func (c Claims[ID, R]) Can(p permission.Set) bool {
	return c.EffectivePermissions().Contains(p)
}

// CanAll is Can.
func (c Claims[ID, R]) CanAll(p permission.Set) bool {
	return c.EffectivePermissions().Contains(p)
}

// CanAny reports whether the effective permissions share a bit with p.
func (c Claims[ID, R]) CanAny(p permission.Set) bool {
	return c.EffectivePermissions().Intersects(p)
}

// IsAdmin and IsPremium describe the role, ignoring any override. Use
// Can(permission.Admin) for an override-aware check.
func (c Claims[ID, R]) IsAdmin() bool { return permission.IsAdmin(c.Role) }

// IsPremium reports whether the role, not the override, grants Premium.
func (c Claims[ID, R]) IsPremium() bool { return permission.IsPremium(c.Role) }

// IsExpired compares the expiry with the system clock.
func (c Claims[ID, R]) IsExpired() bool {
	return c.IsExpiredAt(time.Now())
}

// IsExpiredWith compares the expiry with clock.
func (c Claims[ID, R]) IsExpiredWith(clock Clock) bool {
	if clock == nil {
		clock = SystemClock
	}
	return c.IsExpiredAt(clock.Now())
}

// IsExpiredAt reports exp < now, in whole seconds. There is no leeway.
func (c Claims[ID, R]) IsExpiredAt(now time.Time) bool {
	return c.ExpiresAt < now.Unix()
}

// Expiry returns the expiry as a time.
func (c Claims[ID, R]) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}

// The methods below let golang-jwt parse a verified token directly into
// Claims (jwt.ParseWithClaims). Only exp and iat are carried.

func (c Claims[ID, R]) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(time.Unix(c.ExpiresAt, 0)), nil
}

func (c Claims[ID, R]) GetIssuedAt() (*jwt.NumericDate, error) {
	if c.IssuedAt == nil {
		return nil, nil
	}
	return jwt.NewNumericDate(time.Unix(*c.IssuedAt, 0)), nil
}

func (c Claims[ID, R]) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }

func (c Claims[ID, R]) GetIssuer() (string, error) { return "", nil }

func (c Claims[ID, R]) GetSubject() (string, error) {
	return subjectString(c.Subject), nil
}

func (c Claims[ID, R]) GetAudience() (jwt.ClaimStrings, error) { return nil, nil }

func subjectString[ID comparable](id ID) string {
	switch v := any(id).(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
