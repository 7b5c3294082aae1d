package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	goAuthz "github.com/MrEthical07/goAuthz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type claimsReport struct {
	Subject   string    `json:"sub"`
	Role      string    `json:"role"`
	Override  bool      `json:"override"`
	Effective setReport `json:"effective"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
	Valid     bool      `json:"valid"`
	Problem   string    `json:"problem,omitempty"`
}

func newClaimsCmd(a *app) *cobra.Command {
	var now int64

	cmd := &cobra.Command{
		Use:   "claims <json|->",
		Short: "Decode a claims JSON object and report effective permissions and expiry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := []byte(args[0])
			if args[0] == "-" {
				b, err := io.ReadAll(a.in)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				raw = b
			}

			var c goAuthz.UserClaims
			if err := json.Unmarshal(raw, &c); err != nil {
				return fmt.Errorf("decode claims: %w", err)
			}

			clock := goAuthz.SystemClock
			if now != 0 {
				clock = goAuthz.FixedClock(time.Unix(now, 0))
			}

			r := claimsReport{
				Subject:   c.Subject.String(),
				Role:      c.Role.Name(),
				Override:  c.HasOverride(),
				Effective: reportFor(c.EffectivePermissions()),
				ExpiresAt: c.Expiry().UTC(),
				Expired:   c.IsExpiredWith(clock),
				Valid:     true,
			}
			if err := c.Validate(); err != nil {
				r.Valid = false
				r.Problem = err.Error()
				a.logger.Debug("claims failed validation", zap.Error(err))
			}

			if a.asJSON {
				return a.printJSON(r)
			}
			a.printf("subject:    %s\n", r.Subject)
			a.printf("role:       %s\n", r.Role)
			source := "role"
			if r.Override {
				source = "override"
			}
			a.printf("effective:  %s (%d, from %s)\n", c.EffectivePermissions(), r.Effective.Bits, source)
			a.printf("granted by: %s\n", strings.Join(r.Effective.Roles, ", "))
			a.printf("expires:    %s (expired=%t)\n", r.ExpiresAt.Format(time.RFC3339), r.Expired)
			if r.Valid {
				a.printf("valid:      yes\n")
			} else {
				a.printf("valid:      no: %s\n", r.Problem)
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&now, "now", 0, "evaluate expiry at this unix time instead of the wall clock")
	return cmd
}
