package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	goAuthz "github.com/MrEthical07/goAuthz"
	"github.com/MrEthical07/goAuthz/permission"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type roleReport struct {
	Name   string   `json:"name"`
	Bits   uint32   `json:"bits"`
	Names  []string `json:"permissions"`
	Custom bool     `json:"custom,omitempty"`
}

func newRolesCmd(a *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Print the built-in role table and, with --file, custom roles from YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roles := make([]roleReport, 0, 8)
			for _, r := range goAuthz.StandardRoles() {
				roles = append(roles, toRoleReport(r, false))
			}

			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()

				rm := permission.NewRoleManager()
				if err := rm.LoadRoles(f); err != nil {
					return fmt.Errorf("%s: %w", file, err)
				}
				custom := rm.Roles()
				a.logger.Debug("loaded roles", zap.String("file", file), zap.Int("count", len(custom)))
				for _, r := range custom {
					roles = append(roles, toRoleReport(r, true))
				}
			}

			if a.asJSON {
				return a.printJSON(roles)
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ROLE\tBITS\tPERMISSIONS")
			for _, r := range roles {
				name := r.Name
				if r.Custom {
					name += "*"
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\n", name, r.Bits, permission.Set(r.Bits))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file with a top-level roles: map")
	return cmd
}

func toRoleReport(r permission.Role, custom bool) roleReport {
	names := r.Permissions().Names()
	if names == nil {
		names = []string{}
	}
	return roleReport{
		Name:   r.Name(),
		Bits:   r.Permissions().Bits(),
		Names:  names,
		Custom: custom,
	}
}
