package contacts

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a user-owned address book entry.
type Contact struct {
	ID        uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string     `json:"first_name" gorm:"not null;size:100"`
	LastName  string     `json:"last_name" gorm:"not null;size:100"`
	Email     string     `json:"email" gorm:"not null;size:255"`
	Phone     string     `json:"phone" gorm:"size:50"`
	Birthday  *time.Time `json:"birthday" gorm:"type:date"`
	ExtraData string     `json:"extra_data" gorm:"size:500"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Contact) TableName() string {
	return "contacts"
}

func (c *Contact) ToResponse() ContactResponse {
	return ContactResponse{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Birthday:  c.Birthday,
		ExtraData: c.ExtraData,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
