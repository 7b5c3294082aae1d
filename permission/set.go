package permission

// Set is a 32-bit permission bitmask. Each named bit is an independently
// grantable capability. Set is a value type: every operation returns a new
// Set and nothing mutates in place.
type Set uint32

// Named permission bits. Declaration order is the display order.
const (
	Read        Set = 1 << iota // 0x0001
	Write                       // 0x0002
	Delete                      // 0x0004
	Admin                       // 0x0008
	ManageUsers                 // 0x0010
	ManageRoles                 // 0x0020
	Billing                     // 0x0040
	Audit                       // 0x0080
	Export                      // 0x0100
	Import                      // 0x0200
	APIAccess                   // 0x0400
	Premium                     // 0x0800
)

// Presets. These are aliases over the named bits, not additional bits.
const (
	Viewer  = Read
	Editor  = Read | Write
	Manager = Read | Write | Delete | ManageUsers
)

// allBits is the union of every named bit.
const allBits = Read | Write | Delete | Admin | ManageUsers | ManageRoles |
	Billing | Audit | Export | Import | APIAccess | Premium

// Empty returns the set with no bits.
func Empty() Set { return 0 }

// All returns the union of every named permission.
func All() Set { return allBits }

// Default returns the least-privilege default, Read.
func Default() Set { return Read }

// FromBitsChecked returns the set for raw when every bit of raw is a named
// permission. It reports false otherwise.
func FromBitsChecked(raw uint32) (Set, bool) {
	if Set(raw)&^allBits != 0 {
		return 0, false
	}
	return Set(raw), true
}

// FromBitsTruncating returns the set for raw with unknown bits dropped.
// It never fails.
func FromBitsTruncating(raw uint32) Set {
	return Set(raw) & allBits
}

// Bits returns the raw integer form.
func (s Set) Bits() uint32 { return uint32(s) }

// IsEmpty reports whether no bit is set.
func (s Set) IsEmpty() bool { return s == 0 }

// IsValid reports whether s only carries named bits. Values built from the
// constants are always valid; a Set converted from an arbitrary integer may not be.
func (s Set) IsValid() bool { return s&^allBits == 0 }

// Union returns the bits in s or other.
func (s Set) Union(other Set) Set { return s | other }

// Intersection returns the bits in both s and other.
func (s Set) Intersection(other Set) Set { return s & other }

// Difference returns the bits of s not in other.
func (s Set) Difference(other Set) Set { return s &^ other }

// SymmetricDifference returns the bits in exactly one of s and other.
func (s Set) SymmetricDifference(other Set) Set { return s ^ other }

// Complement returns the named bits not present in s.
func (s Set) Complement() Set { return ^s & allBits }

// Contains reports whether every bit of other is set in s. This is the
// authorization primitive: a holder of s may perform an action requiring other.
func (s Set) Contains(other Set) bool { return s&other == other }

// Satisfies is Contains read from the caller's side: granted.Satisfies(required).
func (s Set) Satisfies(required Set) bool { return s.Contains(required) }

// Intersects reports whether s and other share at least one bit.
func (s Set) Intersects(other Set) bool { return s&other != 0 }
