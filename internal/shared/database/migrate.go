package database

import (
	"notesapi/internal/contacts"
	"notesapi/internal/notes"
	"notesapi/internal/tags"
	"notesapi/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&tags.Tag{},
		&notes.Note{},
		&notes.NoteTag{},
		&contacts.Contact{},
	)
}
