package user

import "time"

type Role string

const (
	RoleStaff   Role = "staff"   // Regular employee
	RoleManager Role = "manager" // Can approve leave/purchase requests
	RoleOwner   Role = "owner"   // Full access, approves payroll
)

// privilegeLevels orders roles for threshold checks. Unknown roles map to 0.
var privilegeLevels = map[Role]int{
	RoleStaff:   1,
	RoleManager: 2,
	RoleOwner:   3,
}

// AtLeast reports whether r carries at least the privilege of required.
// This is the single privilege comparison used by the approval workflow;
// per-kind requirements are declared once in the approval policy table.
func (r Role) AtLeast(required Role) bool {
	return privilegeLevels[r] >= privilegeLevels[required]
}

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	_, ok := privilegeLevels[r]
	return ok
}

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsOwner checks if user is the company owner
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}

// IsManager checks if user is manager or owner
func (u *User) IsManager() bool {
	return u.Role.AtLeast(RoleManager)
}
