package goAuthz

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var claimsValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the structure of decoded claims: a non-zero subject, a
// positive expiry, an issued-at time (if any) not after the expiry, and an
// override (if any) made only of named bits. It does not check expiry
// against the clock.
func (c Claims[ID, R]) Validate() error {
	if err := claimsValidator.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
			}
			return fmt.Errorf("%w: %s", ErrInvalidClaims, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}
	if c.IssuedAt != nil && *c.IssuedAt > c.ExpiresAt {
		return fmt.Errorf("%w: iat after exp", ErrInvalidClaims)
	}
	if c.Permissions != nil && !c.Permissions.IsValid() {
		return fmt.Errorf("%w: permissions carry unknown bits", ErrInvalidClaims)
	}
	if v, ok := any(c.Role).(interface{ IsValid() bool }); ok && !v.IsValid() {
		return fmt.Errorf("%w: unknown role", ErrInvalidClaims)
	}
	return nil
}
