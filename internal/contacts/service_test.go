package contacts

import (
	"context"
	"testing"
	"time"

	"notesapi/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	contacts       map[uuid.UUID]*Contact
	birthdayCalls  int
	searchQueries  []string
	birthdayResult []Contact
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{contacts: make(map[uuid.UUID]*Contact)}
}

func (r *fakeRepository) GetAll(ctx context.Context, userID uuid.UUID, skip, limit int) ([]Contact, error) {
	var owned []Contact
	for _, c := range r.contacts {
		if c.UserID == userID {
			owned = append(owned, *c)
		}
	}
	if skip >= len(owned) {
		return []Contact{}, nil
	}
	end := skip + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[skip:end], nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Contact, error) {
	c, ok := r.contacts[id]
	if !ok || c.UserID != userID {
		return nil, ErrContactNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeRepository) Create(ctx context.Context, contact *Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = contact.CreatedAt
	stored := *contact
	r.contacts[contact.ID] = &stored
	return nil
}

func (r *fakeRepository) Save(ctx context.Context, contact *Contact) error {
	if _, ok := r.contacts[contact.ID]; !ok {
		return ErrContactNotFound
	}
	contact.UpdatedAt = time.Now()
	stored := *contact
	r.contacts[contact.ID] = &stored
	return nil
}

func (r *fakeRepository) Delete(ctx context.Context, contact *Contact) error {
	delete(r.contacts, contact.ID)
	return nil
}

func (r *fakeRepository) Search(ctx context.Context, userID uuid.UUID, query string, skip, limit int) ([]Contact, error) {
	r.searchQueries = append(r.searchQueries, query)
	return []Contact{}, nil
}

func (r *fakeRepository) GetByBirthdayWindow(ctx context.Context, userID uuid.UUID, from time.Time, days int) ([]Contact, error) {
	r.birthdayCalls++
	return r.birthdayResult, nil
}

func newTestService(repo Repository) Service {
	// nil Redis client makes the cache a pass-through
	return NewService(repo, cache.New(nil, "test:contacts"), time.Hour)
}

func TestContactLifecycle(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()
	userID := uuid.New()

	birthday := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	created, err := svc.CreateContact(ctx, userID, ContactRequest{
		FirstName: "  Jamie  ",
		LastName:  "Rivera",
		Email:     "jamie@example.com",
		Phone:     "+1 555 0100",
		Birthday:  &birthday,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jamie", created.FirstName)
	assert.Equal(t, "jamie@example.com", created.Email)
	require.NotNil(t, created.Birthday)

	contactID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	t.Run("foreign user cannot read", func(t *testing.T) {
		_, err := svc.GetContact(ctx, contactID, uuid.New())
		assert.ErrorIs(t, err, ErrContactNotFound)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := svc.UpdateContact(ctx, contactID, userID, ContactRequest{
			FirstName: "Jamie",
			LastName:  "Rivera-Cruz",
			Email:     "jamie@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "Rivera-Cruz", updated.LastName)
		assert.Nil(t, updated.Birthday)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := svc.DeleteContact(ctx, contactID, userID)
		require.NoError(t, err)
		assert.Equal(t, "Jamie", deleted.FirstName)

		_, err = svc.GetContact(ctx, contactID, userID)
		assert.ErrorIs(t, err, ErrContactNotFound)
	})
}

func TestSearchContacts(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.CreateContact(ctx, userID, ContactRequest{
		FirstName: "Jamie", LastName: "Rivera", Email: "jamie@example.com",
	})
	require.NoError(t, err)

	t.Run("blank query falls back to listing", func(t *testing.T) {
		result, err := svc.SearchContacts(ctx, userID, "   ", 0, 100)
		require.NoError(t, err)
		assert.Len(t, result, 1)
		assert.Empty(t, repo.searchQueries)
	})

	t.Run("query is trimmed and forwarded", func(t *testing.T) {
		_, err := svc.SearchContacts(ctx, userID, "  jamie  ", 0, 100)
		require.NoError(t, err)
		require.Len(t, repo.searchQueries, 1)
		assert.Equal(t, "jamie", repo.searchQueries[0])
	})
}

func TestGetUpcomingBirthdays(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()
	userID := uuid.New()

	birthday := time.Now().AddDate(-30, 0, 3)
	repo.birthdayResult = []Contact{{
		ID:        uuid.New(),
		FirstName: "Jamie",
		LastName:  "Rivera",
		Email:     "jamie@example.com",
		Birthday:  &birthday,
		UserID:    userID,
	}}

	result, err := svc.GetUpcomingBirthdays(ctx, userID)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Jamie", result[0].FirstName)
	assert.Equal(t, 1, repo.birthdayCalls)

	// Without a live cache every call hits the repository
	_, err = svc.GetUpcomingBirthdays(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.birthdayCalls)
}
