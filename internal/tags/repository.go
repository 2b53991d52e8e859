package tags

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrTagNotFound = errors.New("tag not found")

type Repository interface {
	GetAll(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Tag, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Tag, error)
	GetByName(ctx context.Context, name string, userID uuid.UUID) (*Tag, error)
	Create(ctx context.Context, tag *Tag) error
	Save(ctx context.Context, tag *Tag) error
	Delete(ctx context.Context, tag *Tag) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Tag, error) {
	var result []Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Offset(skip).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Tag, error) {
	var tag Tag
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *repository) GetByName(ctx context.Context, name string, userID uuid.UUID) (*Tag, error) {
	var tag Tag
	err := r.db.WithContext(ctx).
		Where("name = ? AND user_id = ?", name, userID).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (r *repository) Create(ctx context.Context, tag *Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *repository) Save(ctx context.Context, tag *Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *repository) Delete(ctx context.Context, tag *Tag) error {
	return r.db.WithContext(ctx).Delete(tag).Error
}
