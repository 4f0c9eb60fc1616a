package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Role adalah enumerasi tertutup: hanya tiga nilai ini yang valid di seluruh
// sistem. Perbandingan role di luar package ini harus lewat predicate, bukan
// string comparison.
type Role string

const (
	RoleSuperadmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleGuard      Role = "user"
)

// ParseRole memvalidasi string role dari storage/JWT menjadi variant tertutup.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperadmin, RoleAdmin, RoleGuard:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

func (r Role) String() string { return string(r) }

func (r Role) IsSuperadmin() bool { return r == RoleSuperadmin }

func (r Role) IsAdmin() bool { return r == RoleAdmin }

func (r Role) IsGuard() bool { return r == RoleGuard }

// HasAdminPrivileges berlaku untuk superadmin dan admin.
func (r Role) HasAdminPrivileges() bool {
	return r == RoleSuperadmin || r == RoleAdmin
}

// Actor adalah identitas terautentikasi yang menyertai setiap operasi.
type Actor struct {
	ID   uuid.UUID
	Name string
	Role Role
}

func (a Actor) IsSuperadmin() bool       { return a.Role.IsSuperadmin() }
func (a Actor) IsAdmin() bool            { return a.Role.IsAdmin() }
func (a Actor) IsGuard() bool            { return a.Role.IsGuard() }
func (a Actor) HasAdminPrivileges() bool { return a.Role.HasAdminPrivileges() }
