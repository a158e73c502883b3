// Файл: internal/entities/user_entity.go
package entities

import (
	"time"

	"inventory-system/pkg/constants"
)

type User struct {
	ID       string `json:"id" db:"id"`
	Username string `json:"username" db:"username"`

	Password string `json:"-" db:"password"`

	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == constants.RoleAdmin
}
