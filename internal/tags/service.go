package tags

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrTagExists = errors.New("tag already exists")

type Service interface {
	GetTags(ctx context.Context, userID uuid.UUID, skip, limit int) ([]TagResponse, error)
	GetTag(ctx context.Context, id, userID uuid.UUID) (*TagResponse, error)
	CreateTag(ctx context.Context, userID uuid.UUID, req TagRequest) (*TagResponse, error)
	UpdateTag(ctx context.Context, id, userID uuid.UUID, req TagRequest) (*TagResponse, error)
	DeleteTag(ctx context.Context, id, userID uuid.UUID) (*TagResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetTags(ctx context.Context, userID uuid.UUID, skip, limit int) ([]TagResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	tagList, err := s.repo.GetAll(ctx, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}

	responses := make([]TagResponse, len(tagList))
	for i, tag := range tagList {
		responses[i] = tag.ToResponse()
	}
	return responses, nil
}

func (s *service) GetTag(ctx context.Context, id, userID uuid.UUID) (*TagResponse, error) {
	tag, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := tag.ToResponse()
	return &resp, nil
}

func (s *service) CreateTag(ctx context.Context, userID uuid.UUID, req TagRequest) (*TagResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("tag name cannot be empty")
	}

	existing, err := s.repo.GetByName(ctx, name, userID)
	if err != nil && !errors.Is(err, ErrTagNotFound) {
		return nil, fmt.Errorf("failed to check existing tag: %w", err)
	}
	if existing != nil {
		return nil, ErrTagExists
	}

	tag := &Tag{
		Name:   name,
		UserID: userID,
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	resp := tag.ToResponse()
	return &resp, nil
}

func (s *service) UpdateTag(ctx context.Context, id, userID uuid.UUID, req TagRequest) (*TagResponse, error) {
	tag, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.New("tag name cannot be empty")
	}

	if name != tag.Name {
		existing, err := s.repo.GetByName(ctx, name, userID)
		if err != nil && !errors.Is(err, ErrTagNotFound) {
			return nil, fmt.Errorf("failed to check existing tag: %w", err)
		}
		if existing != nil {
			return nil, ErrTagExists
		}
	}

	tag.Name = name
	if err := s.repo.Save(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}

	resp := tag.ToResponse()
	return &resp, nil
}

func (s *service) DeleteTag(ctx context.Context, id, userID uuid.UUID) (*TagResponse, error) {
	tag, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to delete tag: %w", err)
	}

	resp := tag.ToResponse()
	return &resp, nil
}
