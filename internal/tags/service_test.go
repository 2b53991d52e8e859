package tags

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	tags map[uuid.UUID]*Tag
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tags: make(map[uuid.UUID]*Tag)}
}

func (r *fakeRepository) GetAll(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Tag, error) {
	var owned []Tag
	for _, tag := range r.tags {
		if tag.UserID == userID {
			owned = append(owned, *tag)
		}
	}
	if skip >= len(owned) {
		return []Tag{}, nil
	}
	end := skip + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[skip:end], nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Tag, error) {
	tag, ok := r.tags[id]
	if !ok || tag.UserID != userID {
		return nil, ErrTagNotFound
	}
	copied := *tag
	return &copied, nil
}

func (r *fakeRepository) GetByName(ctx context.Context, name string, userID uuid.UUID) (*Tag, error) {
	for _, tag := range r.tags {
		if tag.UserID == userID && tag.Name == name {
			copied := *tag
			return &copied, nil
		}
	}
	return nil, ErrTagNotFound
}

func (r *fakeRepository) Create(ctx context.Context, tag *Tag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	tag.CreatedAt = time.Now()
	tag.UpdatedAt = tag.CreatedAt
	stored := *tag
	r.tags[tag.ID] = &stored
	return nil
}

func (r *fakeRepository) Save(ctx context.Context, tag *Tag) error {
	if _, ok := r.tags[tag.ID]; !ok {
		return ErrTagNotFound
	}
	tag.UpdatedAt = time.Now()
	stored := *tag
	r.tags[tag.ID] = &stored
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, tag *Tag) error {
	delete(r.tags, tag.ID)
	return nil
}

func TestCreateTag(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()
	userID := uuid.New()

	tag, err := svc.CreateTag(ctx, userID, TagRequest{Name: "  work  "})
	require.NoError(t, err)
	assert.Equal(t, "work", tag.Name)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.CreateTag(ctx, userID, TagRequest{Name: "work"})
		assert.ErrorIs(t, err, ErrTagExists)
	})

	t.Run("same name for another user", func(t *testing.T) {
		_, err := svc.CreateTag(ctx, uuid.New(), TagRequest{Name: "work"})
		assert.NoError(t, err)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.CreateTag(ctx, userID, TagRequest{Name: "   "})
		assert.Error(t, err)
	})
}

func TestUpdateTag(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.CreateTag(ctx, userID, TagRequest{Name: "work"})
	require.NoError(t, err)
	other, err := svc.CreateTag(ctx, userID, TagRequest{Name: "home"})
	require.NoError(t, err)

	tagID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		updated, err := svc.UpdateTag(ctx, tagID, userID, TagRequest{Name: "office"})
		require.NoError(t, err)
		assert.Equal(t, "office", updated.Name)
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		_, err := svc.UpdateTag(ctx, tagID, userID, TagRequest{Name: other.Name})
		assert.ErrorIs(t, err, ErrTagExists)
	})

	t.Run("keeping the same name is fine", func(t *testing.T) {
		updated, err := svc.UpdateTag(ctx, tagID, userID, TagRequest{Name: "office"})
		require.NoError(t, err)
		assert.Equal(t, "office", updated.Name)
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := svc.UpdateTag(ctx, uuid.New(), userID, TagRequest{Name: "whatever"})
		assert.ErrorIs(t, err, ErrTagNotFound)
	})
}

func TestDeleteTag(t *testing.T) {
	svc := NewService(newFakeRepository())
	ctx := context.Background()
	userID := uuid.New()

	created, err := svc.CreateTag(ctx, userID, TagRequest{Name: "obsolete"})
	require.NoError(t, err)
	tagID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	t.Run("foreign user cannot delete", func(t *testing.T) {
		_, err := svc.DeleteTag(ctx, tagID, uuid.New())
		assert.ErrorIs(t, err, ErrTagNotFound)
	})

	deleted, err := svc.DeleteTag(ctx, tagID, userID)
	require.NoError(t, err)
	assert.Equal(t, "obsolete", deleted.Name)

	_, err = svc.GetTag(ctx, tagID, userID)
	assert.ErrorIs(t, err, ErrTagNotFound)
}
