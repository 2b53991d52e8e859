package notes

import (
	"context"
	"fmt"

	"notesapi/internal/tags"

	"github.com/google/uuid"
)

type Service interface {
	GetNotes(ctx context.Context, userID uuid.UUID, skip, limit int) ([]NoteResponse, error)
	GetNote(ctx context.Context, id, userID uuid.UUID) (*NoteResponse, error)
	CreateNote(ctx context.Context, userID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error)
	UpdateNote(ctx context.Context, id, userID uuid.UUID, req UpdateNoteRequest) (*NoteResponse, error)
	UpdateStatus(ctx context.Context, id, userID uuid.UUID, req UpdateStatusRequest) (*NoteResponse, error)
	DeleteNote(ctx context.Context, id, userID uuid.UUID) (*NoteResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetNotes(ctx context.Context, userID uuid.UUID, skip, limit int) ([]NoteResponse, error) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	noteList, err := s.repo.GetAll(ctx, userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}

	responses := make([]NoteResponse, len(noteList))
	for i, note := range noteList {
		responses[i] = note.ToResponse()
	}
	return responses, nil
}

func (s *service) GetNote(ctx context.Context, id, userID uuid.UUID) (*NoteResponse, error) {
	note, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := note.ToResponse()
	return &resp, nil
}

func (s *service) CreateNote(ctx context.Context, userID uuid.UUID, req CreateNoteRequest) (*NoteResponse, error) {
	tagList, err := s.resolveTags(ctx, userID, req.Tags)
	if err != nil {
		return nil, err
	}

	note := &Note{
		Title:       req.Title,
		Description: req.Description,
		UserID:      userID,
		Tags:        tagList,
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	resp := note.ToResponse()
	return &resp, nil
}

func (s *service) UpdateNote(ctx context.Context, id, userID uuid.UUID, req UpdateNoteRequest) (*NoteResponse, error) {
	note, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	tagList, err := s.resolveTags(ctx, userID, req.Tags)
	if err != nil {
		return nil, err
	}

	note.Title = req.Title
	note.Description = req.Description
	note.Done = req.Done
	if err := s.repo.ReplaceTags(ctx, note, tagList); err != nil {
		return nil, fmt.Errorf("failed to update note tags: %w", err)
	}
	note.Tags = tagList
	if err := s.repo.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	resp := note.ToResponse()
	return &resp, nil
}

func (s *service) UpdateStatus(ctx context.Context, id, userID uuid.UUID, req UpdateStatusRequest) (*NoteResponse, error) {
	note, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	note.Done = *req.Done
	if err := s.repo.Save(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note status: %w", err)
	}

	resp := note.ToResponse()
	return &resp, nil
}

func (s *service) DeleteNote(ctx context.Context, id, userID uuid.UUID) (*NoteResponse, error) {
	note, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}

	resp := note.ToResponse()
	return &resp, nil
}

func (s *service) resolveTags(ctx context.Context, userID uuid.UUID, ids []string) ([]tags.Tag, error) {
	if len(ids) == 0 {
		return []tags.Tag{}, nil
	}

	tagIDs := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid tag id %q", raw)
		}
		tagIDs = append(tagIDs, id)
	}

	tagList, err := s.repo.GetUserTags(ctx, userID, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	return tagList, nil
}
