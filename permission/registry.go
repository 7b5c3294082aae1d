package permission

import (
	"strings"
)

// bitEntry pairs a named bit with its stable lowercase identifier.
type bitEntry struct {
	bit  Set
	name string
}

// registry is the fixed name table, in declaration order. Names may appear in
// tokens, config files and audit logs and must never change for a given bit.
var registry = [...]bitEntry{
	{Read, "read"},
	{Write, "write"},
	{Delete, "delete"},
	{Admin, "admin"},
	{ManageUsers, "manage_users"},
	{ManageRoles, "manage_roles"},
	{Billing, "billing"},
	{Audit, "audit"},
	{Export, "export"},
	{Import, "import"},
	{APIAccess, "api_access"},
	{Premium, "premium"},
}

var nameToBit = func() map[string]Set {
	m := make(map[string]Set, len(registry))
	for _, e := range registry {
		m[e.name] = e.bit
	}
	return m
}()

// Lookup returns the bit registered under name. Matching is case-insensitive
// and ignores surrounding whitespace.
func Lookup(name string) (Set, bool) {
	bit, ok := nameToBit[strings.ToLower(strings.TrimSpace(name))]
	return bit, ok
}

// NameOf returns the name of a single named bit. Composite sets and unknown
// bits report false.
func NameOf(bit Set) (string, bool) {
	for _, e := range registry {
		if e.bit == bit {
			return e.name, true
		}
	}
	return "", false
}

// KnownNames returns every permission name in declaration order.
func KnownNames() []string {
	out := make([]string, 0, len(registry))
	for _, e := range registry {
		out = append(out, e.name)
	}
	return out
}

// Names returns the names of the bits set in s, in declaration order.
func (s Set) Names() []string {
	out := make([]string, 0, len(registry))
	for _, e := range registry {
		if s&e.bit != 0 {
			out = append(out, e.name)
		}
	}
	return out
}

// String renders s as comma-separated names in declaration order, or "none"
// for the empty set. Unknown bits are not rendered.
func (s Set) String() string {
	names := s.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// ParseNames parses a list of permission names separated by ',' or '|'.
// Tokens are trimmed and matched case-insensitively; empty tokens are skipped,
// so "read,,write" and trailing separators are accepted. An unknown token is
// reported as a *ParseError wrapping ErrUnknownPermissionName.
func ParseNames(s string) (Set, error) {
	var out Set
	for _, part := range strings.FieldsFunc(s, isNameSeparator) {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		bit, ok := nameToBit[name]
		if !ok {
			return 0, &ParseError{Kind: ErrUnknownPermissionName, Input: name}
		}
		out |= bit
	}
	return out, nil
}

// MustParseNames is ParseNames for static inputs; it panics on error.
func MustParseNames(s string) Set {
	set, err := ParseNames(s)
	if err != nil {
		panic(err)
	}
	return set
}

func isNameSeparator(r rune) bool {
	return r == ',' || r == '|'
}
