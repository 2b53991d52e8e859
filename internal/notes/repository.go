package notes

import (
	"context"
	"errors"

	"notesapi/internal/tags"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNoteNotFound = errors.New("note not found")

type Repository interface {
	GetAll(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Note, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Note, error)
	Create(ctx context.Context, note *Note) error
	Save(ctx context.Context, note *Note) error
	ReplaceTags(ctx context.Context, note *Note, tagList []tags.Tag) error
	Delete(ctx context.Context, note *Note) error
	GetUserTags(ctx context.Context, userID uuid.UUID, tagIDs []uuid.UUID) ([]tags.Tag, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Note, error) {
	var result []Note
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Note, error) {
	var note Note
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("id = ? AND user_id = ?", id, userID).
		First(&note).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

func (r *repository) Create(ctx context.Context, note *Note) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *repository) Save(ctx context.Context, note *Note) error {
	return r.db.WithContext(ctx).Save(note).Error
}

func (r *repository) ReplaceTags(ctx context.Context, note *Note, tagList []tags.Tag) error {
	return r.db.WithContext(ctx).Model(note).Association("Tags").Replace(tagList)
}

func (r *repository) Delete(ctx context.Context, note *Note) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("note_id = ?", note.ID).Delete(&NoteTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(note).Error
	})
}

// GetUserTags resolves tag IDs to tags owned by the user; IDs that do
// not belong to the user are silently dropped.
func (r *repository) GetUserTags(ctx context.Context, userID uuid.UUID, tagIDs []uuid.UUID) ([]tags.Tag, error) {
	if len(tagIDs) == 0 {
		return []tags.Tag{}, nil
	}
	var result []tags.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, tagIDs).
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
