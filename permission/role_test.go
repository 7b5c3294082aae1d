package permission

import (
	"testing"
)

type testRole int

const (
	guest testRole = iota
	member
	owner
)

func (r testRole) Permissions() Set {
	switch r {
	case member:
		return Read | Write | Premium
	case owner:
		return All()
	default:
		return Read
	}
}

func (r testRole) Name() string {
	switch r {
	case member:
		return "member"
	case owner:
		return "owner"
	default:
		return "guest"
	}
}

func TestRoleCan(t *testing.T) {
	if !Can(owner, Delete) || !Can(owner, Admin) {
		t.Fatal("owner must be able to delete and admin")
	}
	if !Can(guest, Read) || Can(guest, Write) {
		t.Fatal("guest must only read")
	}
}

func TestRoleCanAll(t *testing.T) {
	required := Read | Write | Delete
	if !CanAll(owner, required) {
		t.Fatal("owner must satisfy all")
	}
	if CanAll(guest, required) {
		t.Fatal("guest must not satisfy all")
	}
}

func TestRoleCanAny(t *testing.T) {
	if !CanAny(guest, Admin|Read) {
		t.Fatal("guest shares read")
	}
	if CanAny(guest, Admin|Delete) {
		t.Fatal("guest shares nothing with admin|delete")
	}
}

func TestRoleDerivedHelpersMatchBits(t *testing.T) {
	for _, r := range []testRole{guest, member, owner} {
		for raw := uint32(0); raw <= All().Bits(); raw += 5 {
			p := Set(raw)
			if CanAll(r, p) != r.Permissions().Contains(p) {
				t.Fatalf("%s CanAll(%s) diverges from Contains", r.Name(), p)
			}
			if CanAny(r, p) != r.Permissions().Intersects(p) {
				t.Fatalf("%s CanAny(%s) diverges from Intersects", r.Name(), p)
			}
		}
	}
}

func TestRoleIsAdminIsPremium(t *testing.T) {
	if !IsAdmin(owner) || IsAdmin(member) || IsAdmin(guest) {
		t.Fatal("IsAdmin mismatch")
	}
	if !IsPremium(owner) || !IsPremium(member) || IsPremium(guest) {
		t.Fatal("IsPremium mismatch")
	}
}

func TestStaticRole(t *testing.T) {
	r := NewStaticRole("auditor", Read|Audit|Set(0x10000))
	if r.Name() != "auditor" || r.String() != "auditor" {
		t.Fatalf("unexpected name %q", r.Name())
	}
	if r.Permissions() != Read|Audit {
		t.Fatalf("expected unknown bits dropped, got %#x", r.Permissions().Bits())
	}
	var _ Role = r
}
