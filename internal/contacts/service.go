package contacts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"notesapi/pkg/cache"
	"notesapi/pkg/logger"

	"github.com/google/uuid"
)

// upcomingBirthdayDays is the window used by GetUpcomingBirthdays,
// today included.
const upcomingBirthdayDays = 7

type Service interface {
	GetContacts(ctx context.Context, userID uuid.UUID, skip, limit int) ([]ContactResponse, error)
	GetContact(ctx context.Context, id, userID uuid.UUID) (*ContactResponse, error)
	CreateContact(ctx context.Context, userID uuid.UUID, req ContactRequest) (*ContactResponse, error)
	UpdateContact(ctx context.Context, id, userID uuid.UUID, req ContactRequest) (*ContactResponse, error)
	DeleteContact(ctx context.Context, id, userID uuid.UUID) (*ContactResponse, error)
	SearchContacts(ctx context.Context, userID uuid.UUID, query string, skip, limit int) ([]ContactResponse, error)
	GetUpcomingBirthdays(ctx context.Context, userID uuid.UUID) ([]ContactResponse, error)
}

type service struct {
	repo     Repository
	cache    *cache.Cache
	cacheTTL time.Duration
	log      *logger.Logger
}

func NewService(repo Repository, c *cache.Cache, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		log:      logger.GetDefault(),
	}
}

func (s *service) GetContacts(ctx context.Context, userID uuid.UUID, skip, limit int) ([]ContactResponse, error) {
	skip, limit = clampPage(skip, limit)

	contactList, err := s.repo.GetAll(ctx, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	return toResponses(contactList), nil
}

func (s *service) GetContact(ctx context.Context, id, userID uuid.UUID) (*ContactResponse, error) {
	contact, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := contact.ToResponse()
	return &resp, nil
}

func (s *service) CreateContact(ctx context.Context, userID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	contact := &Contact{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Birthday:  req.Birthday,
		ExtraData: req.ExtraData,
		UserID:    userID,
	}
	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.invalidateBirthdayCache(ctx, userID)

	resp := contact.ToResponse()
	return &resp, nil
}

func (s *service) UpdateContact(ctx context.Context, id, userID uuid.UUID, req ContactRequest) (*ContactResponse, error) {
	contact, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	contact.FirstName = strings.TrimSpace(req.FirstName)
	contact.LastName = strings.TrimSpace(req.LastName)
	contact.Email = strings.TrimSpace(req.Email)
	contact.Phone = strings.TrimSpace(req.Phone)
	contact.Birthday = req.Birthday
	contact.ExtraData = req.ExtraData

	if err := s.repo.Save(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	s.invalidateBirthdayCache(ctx, userID)

	resp := contact.ToResponse()
	return &resp, nil
}

func (s *service) DeleteContact(ctx context.Context, id, userID uuid.UUID) (*ContactResponse, error) {
	contact, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to delete contact: %w", err)
	}

	s.invalidateBirthdayCache(ctx, userID)

	resp := contact.ToResponse()
	return &resp, nil
}

func (s *service) SearchContacts(ctx context.Context, userID uuid.UUID, query string, skip, limit int) ([]ContactResponse, error) {
	skip, limit = clampPage(skip, limit)

	query = strings.TrimSpace(query)
	if query == "" {
		return s.GetContacts(ctx, userID, skip, limit)
	}

	contactList, err := s.repo.Search(ctx, userID, query, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}
	return toResponses(contactList), nil
}

// GetUpcomingBirthdays returns contacts whose birthday falls within the next
// seven days. Results are cached per user and invalidated on any write.
func (s *service) GetUpcomingBirthdays(ctx context.Context, userID uuid.UUID) ([]ContactResponse, error) {
	var cached []ContactResponse
	if err := s.cache.Get(ctx, &cached, "birthdays", userID.String()); err == nil {
		return cached, nil
	}

	contactList, err := s.repo.GetByBirthdayWindow(ctx, userID, time.Now().UTC(), upcomingBirthdayDays)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming birthdays: %w", err)
	}

	responses := toResponses(contactList)
	if err := s.cache.Set(ctx, responses, s.cacheTTL, "birthdays", userID.String()); err != nil {
		s.log.Warn("Failed to cache upcoming birthdays", "user_id", userID.String(), "error", err)
	}
	return responses, nil
}

func (s *service) invalidateBirthdayCache(ctx context.Context, userID uuid.UUID) {
	if err := s.cache.Delete(ctx, "birthdays", userID.String()); err != nil {
		s.log.Warn("Failed to invalidate birthday cache", "user_id", userID.String(), "error", err)
	}
}

func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return skip, limit
}

func toResponses(contactList []Contact) []ContactResponse {
	responses := make([]ContactResponse, len(contactList))
	for i, contact := range contactList {
		responses[i] = contact.ToResponse()
	}
	return responses
}
