package employee

import "time"

// Collection keeps the legacy name: employee records double as login
// accounts.
const Collection = "users"

type Employee struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	ICPassport   string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
