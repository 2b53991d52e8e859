package contacts

import "time"

type ContactRequest struct {
	FirstName string     `json:"first_name" validate:"required,min=1,max=100"`
	LastName  string     `json:"last_name" validate:"required,min=1,max=100"`
	Email     string     `json:"email" validate:"required,email,max=255"`
	Phone     string     `json:"phone" validate:"max=50"`
	Birthday  *time.Time `json:"birthday"`
	ExtraData string     `json:"extra_data" validate:"max=500"`
}
