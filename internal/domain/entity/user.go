package entity

import "time"

// Role is the closed set of account roles. Stored as text in Postgres.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// User is the aggregate root for the accounts domain.
//
// Accounts are created inactive on signup and activated when the
// confirmation code is exchanged for an access token. ConfirmationCode holds
// only the latest issued code; rotating it invalidates the previous one.
type User struct {
	ID               string
	Username         string
	Email            string
	FirstName        string
	LastName         string
	Bio              string
	Role             Role
	IsStaff          bool
	IsSuperuser      bool
	IsActive         bool
	ConfirmationCode string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsAdmin reports admin capability: the admin role or the staff flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsStaff
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
