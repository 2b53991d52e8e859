package notes

import (
	"context"
	"testing"
	"time"

	"notesapi/internal/tags"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	notes map[uuid.UUID]*Note
	tags  map[uuid.UUID]*tags.Tag
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		notes: make(map[uuid.UUID]*Note),
		tags:  make(map[uuid.UUID]*tags.Tag),
	}
}

func (r *fakeRepository) addTag(userID uuid.UUID, name string) tags.Tag {
	tag := tags.Tag{ID: uuid.New(), Name: name, UserID: userID}
	r.tags[tag.ID] = &tag
	return tag
}

func (r *fakeRepository) GetAll(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Note, error) {
	var owned []Note
	for _, n := range r.notes {
		if n.UserID == userID {
			owned = append(owned, *n)
		}
	}
	if skip >= len(owned) {
		return []Note{}, nil
	}
	end := skip + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[skip:end], nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Note, error) {
	n, ok := r.notes[id]
	if !ok || n.UserID != userID {
		return nil, ErrNoteNotFound
	}
	copied := *n
	return &copied, nil
}

func (r *fakeRepository) Create(ctx context.Context, note *Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt
	stored := *note
	r.notes[note.ID] = &stored
	return nil
}

func (r *fakeRepository) Save(ctx context.Context, note *Note) error {
	if _, ok := r.notes[note.ID]; !ok {
		return ErrNoteNotFound
	}
	note.UpdatedAt = time.Now()
	stored := *note
	r.notes[note.ID] = &stored
	return nil
}

func (r *fakeRepository) ReplaceTags(ctx context.Context, note *Note, tagList []tags.Tag) error {
	stored, ok := r.notes[note.ID]
	if !ok {
		return ErrNoteNotFound
	}
	stored.Tags = tagList
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, note *Note) error {
	delete(r.notes, note.ID)
	return nil
}

func (r *fakeRepository) GetUserTags(ctx context.Context, userID uuid.UUID, tagIDs []uuid.UUID) ([]tags.Tag, error) {
	result := []tags.Tag{}
	for _, id := range tagIDs {
		if tag, ok := r.tags[id]; ok && tag.UserID == userID {
			result = append(result, *tag)
		}
	}
	return result, nil
}

func TestCreateNote(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	userID := uuid.New()

	tag := repo.addTag(userID, "work")

	resp, err := svc.CreateNote(ctx, userID, CreateNoteRequest{
		Title:       "Write report",
		Description: "Quarterly summary",
		Tags:        []string{tag.ID.String()},
	})
	require.NoError(t, err)

	assert.Equal(t, "Write report", resp.Title)
	assert.Equal(t, "Quarterly summary", resp.Description)
	assert.False(t, resp.Done)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "work", resp.Tags[0].Name)
}

func TestCreateNoteInvalidTagID(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	_, err := svc.CreateNote(context.Background(), uuid.New(), CreateNoteRequest{
		Title: "Note",
		Tags:  []string{"not-a-uuid"},
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid tag id")
}

func TestCreateNoteForeignTagDropped(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	owner := uuid.New()
	intruder := uuid.New()
	foreignTag := repo.addTag(owner, "private")

	resp, err := svc.CreateNote(ctx, intruder, CreateNoteRequest{
		Title: "Sneaky",
		Tags:  []string{foreignTag.ID.String()},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Tags)
}

func TestGetNoteScopedToOwner(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()

	owner := uuid.New()
	created, err := svc.CreateNote(ctx, owner, CreateNoteRequest{Title: "Mine"})
	require.NoError(t, err)

	noteID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	got, err := svc.GetNote(ctx, noteID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Mine", got.Title)

	_, err = svc.GetNote(ctx, noteID, uuid.New())
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestUpdateNote(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	userID := uuid.New()

	tag := repo.addTag(userID, "home")

	created, err := svc.CreateNote(ctx, userID, CreateNoteRequest{Title: "Old title"})
	require.NoError(t, err)
	noteID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateNote(ctx, noteID, userID, UpdateNoteRequest{
		Title:       "New title",
		Description: "Now with a tag",
		Done:        true,
		Tags:        []string{tag.ID.String()},
	})
	require.NoError(t, err)

	assert.Equal(t, "New title", updated.Title)
	assert.True(t, updated.Done)
	require.Len(t, updated.Tags, 1)
	assert.Equal(t, "home", updated.Tags[0].Name)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.CreateNote(ctx, userID, CreateNoteRequest{Title: "Todo"})
	require.NoError(t, err)
	noteID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	done := true
	resp, err := svc.UpdateStatus(ctx, noteID, userID, UpdateStatusRequest{Done: &done})
	require.NoError(t, err)
	assert.True(t, resp.Done)

	done = false
	resp, err = svc.UpdateStatus(ctx, noteID, userID, UpdateStatusRequest{Done: &done})
	require.NoError(t, err)
	assert.False(t, resp.Done)
}

func TestDeleteNote(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.CreateNote(ctx, userID, CreateNoteRequest{Title: "Ephemeral"})
	require.NoError(t, err)
	noteID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	deleted, err := svc.DeleteNote(ctx, noteID, userID)
	require.NoError(t, err)
	assert.Equal(t, "Ephemeral", deleted.Title)

	_, err = svc.GetNote(ctx, noteID, userID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	_, err = svc.DeleteNote(ctx, noteID, userID)
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestGetNotesPagination(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)
	ctx := context.Background()
	userID := uuid.New()

	for i := 0; i < 5; i++ {
		_, err := svc.CreateNote(ctx, userID, CreateNoteRequest{Title: "Note"})
		require.NoError(t, err)
	}

	all, err := svc.GetNotes(ctx, userID, 0, 100)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	page, err := svc.GetNotes(ctx, userID, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	// Negative skip and oversized limit are clamped
	clamped, err := svc.GetNotes(ctx, userID, -1, 1000)
	require.NoError(t, err)
	assert.Len(t, clamped, 5)

	other, err := svc.GetNotes(ctx, uuid.New(), 0, 100)
	require.NoError(t, err)
	assert.Empty(t, other)
}
