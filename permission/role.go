package permission

// Role maps a role value to its default permission set. Any type can
// implement it; the authorization primitive is the Set, not a particular
// role taxonomy.
//
// Permissions must be a pure function of the role value. Name must be a
// stable lowercase identifier since it can end up in audit logs.
type Role interface {
	Permissions() Set
	Name() string
}

// Can reports whether r grants p.
func Can(r Role, p Set) bool {
	return r.Permissions().Contains(p)
}

// CanAll reports whether r grants every bit of p.
func CanAll(r Role, p Set) bool {
	return r.Permissions().Contains(p)
}

// CanAny reports whether r grants at least one bit of p.
func CanAny(r Role, p Set) bool {
	return r.Permissions().Intersects(p)
}

// IsAdmin reports whether r grants Admin.
func IsAdmin(r Role) bool { return Can(r, Admin) }

// IsPremium reports whether r grants Premium.
func IsPremium(r Role) bool { return Can(r, Premium) }

// StaticRole is a Role defined by a name and a fixed set, for host
// applications that need roles beyond the built-in ones.
type StaticRole struct {
	name  string
	perms Set
}

// NewStaticRole returns a role named name granting perms. Unknown bits in
// perms are dropped.
func NewStaticRole(name string, perms Set) StaticRole {
	return StaticRole{name: name, perms: perms & allBits}
}

// Permissions returns the set the role was built with.
func (r StaticRole) Permissions() Set { return r.perms }

// Name returns the role name.
func (r StaticRole) Name() string { return r.name }

// String returns the role name.
func (r StaticRole) String() string { return r.name }
