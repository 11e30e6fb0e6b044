package employee

import "time"

type Employee struct {
	ID           string
	UserID       *string
	EmployeeCode string
	FullName     string
	Email        string
	HireDate     time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
