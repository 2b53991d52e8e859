package notes

// note creation payload; tags are IDs of tags owned by the same user
type CreateNoteRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Tags        []string `json:"tags,omitempty" validate:"dive,uuid"`
}

// full note update payload
type UpdateNoteRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=100"`
	Description string   `json:"description" validate:"max=500"`
	Done        bool     `json:"done"`
	Tags        []string `json:"tags,omitempty" validate:"dive,uuid"`
}

// done-flag patch payload
type UpdateStatusRequest struct {
	Done *bool `json:"done" validate:"required"`
}
