// Copyright (c) 2026 Biblion. All rights reserved.

package author

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkempf/biblion/internal/platform/apperr"
	"github.com/tkempf/biblion/internal/platform/dberr"
	"github.com/tkempf/biblion/pkg/uuid"
)

type fakeRepository struct {
	rows map[string]*Author
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{rows: map[string]*Author{}}
}

func (r *fakeRepository) ListAuthors(_ context.Context, _ Filter, _, _ int) ([]*Author, int, error) {
	out := make([]*Author, 0, len(r.rows))
	for _, a := range r.rows {
		out = append(out, a)
	}
	return out, len(out), nil
}

func (r *fakeRepository) GetAuthor(_ context.Context, id string) (*Author, error) {
	a, ok := r.rows[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return a, nil
}

func (r *fakeRepository) CreateAuthor(_ context.Context, a *Author) error {
	clone := *a
	r.rows[a.ID] = &clone
	return nil
}

func (r *fakeRepository) UpdateAuthor(_ context.Context, a *Author) error {
	if _, ok := r.rows[a.ID]; !ok {
		return dberr.ErrNotFound
	}
	clone := *a
	r.rows[a.ID] = &clone
	return nil
}

func (r *fakeRepository) DeleteAuthor(_ context.Context, id string) error {
	if _, ok := r.rows[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRepository) PruneAuthors(_ context.Context) (int, error) {
	return 0, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAddAuthor_GeneratesID(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	id, err := service.AddAuthor(context.Background(), &Author{Last: "Doe", First: "J."})
	require.NoError(t, err)
	assert.True(t, uuid.IsValid(id))
	assert.Equal(t, "Doe", repo.rows[id].Last)
}

func TestAddAuthor_UpdatesExisting(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	id := uuid.New()
	repo.rows[id] = &Author{ID: id, Last: "Old"}

	returned, err := service.AddAuthor(context.Background(), &Author{ID: id, Last: "New"})
	require.NoError(t, err)
	assert.Equal(t, id, returned)
	assert.Equal(t, "New", repo.rows[id].Last)
}

func TestAddAuthor_UnknownIDFallsBackToCreate(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	id := uuid.New()
	returned, err := service.AddAuthor(context.Background(), &Author{ID: id, Last: "Kept"})
	require.NoError(t, err)
	assert.Equal(t, id, returned)
	assert.Equal(t, "Kept", repo.rows[id].Last)
}

func TestAddAuthor_RequiresLastName(t *testing.T) {
	service := newTestService(newFakeRepository())

	_, err := service.AddAuthor(context.Background(), &Author{First: "J."})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

func TestDeleteAuthor_NotFound(t *testing.T) {
	service := newTestService(newFakeRepository())

	err := service.DeleteAuthor(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}
