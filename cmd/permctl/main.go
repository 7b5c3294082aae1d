// Command permctl inspects goAuthz permission values, roles and claims.
//
//	permctl explain 1027            # bits, hex and names of a raw value
//	permctl explain "read|billing"  # same, from names
//	permctl parse read write        # names to bits
//	permctl roles --file roles.yaml # built-in and custom role tables
//	permctl claims -                # effective permissions of a claims JSON on stdin
//
// Every command accepts --json for machine-readable output.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
