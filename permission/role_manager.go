package permission

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// RoleManager holds host-defined roles by name.
//
// RoleManager instances are intended to be configured during initialization,
// frozen, and then only read. All methods are safe for concurrent use.
type RoleManager struct {
	mu     sync.RWMutex
	roles  map[string]StaticRole
	frozen bool
}

// roleCatalog is the YAML document read by LoadRoles:
//
//	roles:
//	  viewer: read
//	  editor: [read, write]
//	  auditor: "read, audit"
//	  ops: 1039
type roleCatalog struct {
	Roles map[string]Set `yaml:"roles"`
}

// NewRoleManager returns an empty, unfrozen manager.
func NewRoleManager() *RoleManager {
	return &RoleManager{
		roles: make(map[string]StaticRole),
	}
}

// RegisterRole adds a role granting perms. Names are normalized to lowercase.
func (rm *RoleManager) RegisterRole(roleName string, perms Set) error {
	name := strings.ToLower(strings.TrimSpace(roleName))

	rm.mu.Lock()
	defer rm.mu.Unlock()

	if rm.frozen {
		return ErrRoleManagerFrozen
	}
	if name == "" {
		return ErrRoleNameEmpty
	}
	if _, exists := rm.roles[name]; exists {
		return fmt.Errorf("%w: %s", ErrRoleExists, name)
	}
	if !perms.IsValid() {
		return &ParseError{Kind: ErrInvalidBits, Input: fmt.Sprint(uint32(perms))}
	}

	rm.roles[name] = NewStaticRole(name, perms)
	return nil
}

// RegisterRoleNames adds a role granting the named permissions.
func (rm *RoleManager) RegisterRoleNames(roleName string, permissionNames ...string) error {
	var perms Set
	for _, n := range permissionNames {
		bit, err := ParseNames(n)
		if err != nil {
			return fmt.Errorf("role %s: %w", roleName, err)
		}
		perms |= bit
	}
	return rm.RegisterRole(roleName, perms)
}

// LoadRoles registers every role of a YAML catalog. Permission values may be
// numbers, name strings or name sequences. Nothing is registered when the
// document fails to parse; a registration error stops at the failing role.
func (rm *RoleManager) LoadRoles(r io.Reader) error {
	var catalog roleCatalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode role catalog: %w", err)
	}

	names := make([]string, 0, len(catalog.Roles))
	for name := range catalog.Roles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := rm.RegisterRole(name, catalog.Roles[name]); err != nil {
			return err
		}
	}
	return nil
}

// Role returns the role registered under name.
func (rm *RoleManager) Role(roleName string) (Role, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	r, ok := rm.roles[strings.ToLower(strings.TrimSpace(roleName))]
	if !ok {
		return nil, false
	}
	return r, true
}

// Roles returns every registered role sorted by name.
func (rm *RoleManager) Roles() []Role {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	out := make([]Role, 0, len(rm.roles))
	for _, r := range rm.roles {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Freeze prevents further registrations.
func (rm *RoleManager) Freeze() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.frozen = true
}
