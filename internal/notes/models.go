package notes

import (
	"time"

	"notesapi/internal/tags"

	"github.com/google/uuid"
)

// Note is a user-owned note with an optional tag set.
type Note struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Title       string     `json:"title" gorm:"not null;size:100"`
	Description string     `json:"description" gorm:"size:500"`
	Done        bool       `json:"done" gorm:"not null;default:false"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	Tags        []tags.Tag `json:"tags" gorm:"many2many:note_tags;"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// NoteTag is the join table between notes and tags.
type NoteTag struct {
	NoteID uuid.UUID `json:"note_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_note_tag_unique"`
	TagID  uuid.UUID `json:"tag_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_note_tag_unique"`
}

func (Note) TableName() string {
	return "notes"
}

func (NoteTag) TableName() string {
	return "note_tags"
}

func (n *Note) ToResponse() NoteResponse {
	tagResponses := make([]tags.TagResponse, len(n.Tags))
	for i, tag := range n.Tags {
		tagResponses[i] = tag.ToResponse()
	}
	return NoteResponse{
		ID:          n.ID.String(),
		Title:       n.Title,
		Description: n.Description,
		Done:        n.Done,
		Tags:        tagResponses,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}
