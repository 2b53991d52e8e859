package users

import (
	"time"

	"github.com/google/uuid"
)

// Role is the access level assigned to a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleModerator), string(RoleAdmin):
		return true
	default:
		return false
	}
}

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Username  string    `json:"username" gorm:"not null;size:100"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"` // bcrypt digest, hide in json
	Role      Role      `json:"role" gorm:"not null;default:'user'"`
	Confirmed bool      `json:"confirmed" gorm:"not null;default:false"`
	Avatar    string    `json:"avatar"`
	// At most one valid refresh token per user. Issuing a new one
	// overwrites the previous value; nil means no active session.
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
