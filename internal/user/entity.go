// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	Name      *string   `db:"name"`
	Password  string    `db:"password"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}
	return *u.Name
}

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
