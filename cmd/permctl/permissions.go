package main

import (
	"fmt"
	"strconv"
	"strings"

	goAuthz "github.com/MrEthical07/goAuthz"
	"github.com/MrEthical07/goAuthz/permission"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type setReport struct {
	Bits  uint32   `json:"bits"`
	Hex   string   `json:"hex"`
	Names []string `json:"names"`
	Roles []string `json:"granted_by"`
}

func reportFor(s permission.Set) setReport {
	r := setReport{
		Bits:  s.Bits(),
		Hex:   fmt.Sprintf("0x%04x", s.Bits()),
		Names: s.Names(),
		Roles: []string{},
	}
	if r.Names == nil {
		r.Names = []string{}
	}
	for _, role := range goAuthz.StandardRoles() {
		if role.CanAll(s) {
			r.Roles = append(r.Roles, role.Name())
		}
	}
	return r
}

func (a *app) printSet(s permission.Set) error {
	r := reportFor(s)
	if a.asJSON {
		return a.printJSON(r)
	}
	a.printf("bits:       %d (%s)\n", r.Bits, r.Hex)
	a.printf("names:      %s\n", s)
	a.printf("granted by: %s\n", strings.Join(r.Roles, ", "))
	return nil
}

func newExplainCmd(a *app) *cobra.Command {
	var truncate bool

	cmd := &cobra.Command{
		Use:   "explain <value>",
		Short: "Explain a permission value given as a number or names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.TrimSpace(args[0])

			if truncate {
				v, err := strconv.ParseUint(raw, 0, 32)
				if err != nil {
					return fmt.Errorf("--truncate needs a 32-bit number: %w", err)
				}
				s := permission.FromBitsTruncating(uint32(v))
				if dropped := uint32(v) &^ s.Bits(); dropped != 0 {
					a.logger.Debug("dropped unknown bits", zap.String("bits", fmt.Sprintf("0x%x", dropped)))
				}
				return a.printSet(s)
			}

			var s permission.Set
			if err := s.UnmarshalText([]byte(raw)); err != nil {
				return err
			}
			return a.printSet(s)
		},
	}
	cmd.Flags().BoolVar(&truncate, "truncate", false, "drop unknown bits instead of failing")
	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <name>...",
		Short: "Parse permission names (comma or pipe separated, case-insensitive)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := permission.ParseNames(strings.Join(args, ","))
			if err != nil {
				return err
			}
			a.logger.Debug("parsed", zap.Strings("input", args), zap.Uint32("bits", s.Bits()))
			return a.printSet(s)
		},
	}
}
