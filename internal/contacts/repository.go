package contacts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("contact not found")

type Repository interface {
	GetAll(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Contact, error)
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error)
	Create(ctx context.Context, contact *Contact) error
	Save(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, contact *Contact) error
	Search(ctx context.Context, userID uuid.UUID, query string, skip, limit int) ([]Contact, error)
	GetByBirthdayWindow(ctx context.Context, userID uuid.UUID, from time.Time, days int) ([]Contact, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAll(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Contact, error) {
	var result []Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_name ASC, first_name ASC").
		Offset(skip).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error) {
	var contact Contact
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return &contact, nil
}

func (r *repository) Create(ctx context.Context, contact *Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *repository) Save(ctx context.Context, contact *Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

func (r *repository) Delete(ctx context.Context, contact *Contact) error {
	return r.db.WithContext(ctx).Delete(contact).Error
}

// Search matches the query case-insensitively against first name, last name
// and email.
func (r *repository) Search(ctx context.Context, userID uuid.UUID, query string, skip, limit int) ([]Contact, error) {
	pattern := "%" + query + "%"

	var result []Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Order("last_name ASC, first_name ASC").
		Offset(skip).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByBirthdayWindow returns contacts whose birthday (ignoring the year)
// falls on one of the next `days` calendar days starting at from.
func (r *repository) GetByBirthdayWindow(ctx context.Context, userID uuid.UUID, from time.Time, days int) ([]Contact, error) {
	monthDays := make([]string, 0, days)
	for i := 0; i < days; i++ {
		monthDays = append(monthDays, from.AddDate(0, 0, i).Format("01-02"))
	}

	var result []Contact
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("birthday IS NOT NULL").
		Where("to_char(birthday, 'MM-DD') IN ?", monthDays).
		Order("to_char(birthday, 'MM-DD') ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}
