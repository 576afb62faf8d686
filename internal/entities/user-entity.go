package entities

import "ppe-tracker/pkg/types"

const (
	RoleAdmin      = "admin"
	RoleInspector  = "inspector"
	RoleTechnician = "technician"
)

type User struct {
	ID       uint64 `db:"id"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Password string `db:"password_hash"`
	Role     string `db:"role"`

	types.BaseEntity
}

// CanInspect reports whether the user may be recorded as an inspector.
func (u *User) CanInspect() bool {
	return u.Role == RoleInspector || u.Role == RoleAdmin
}
