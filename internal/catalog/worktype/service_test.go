// Copyright (c) 2026 Biblion. All rights reserved.

package worktype

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	rows map[string]string
}

func (r *fakeRepository) ListWorkTypes(_ context.Context) ([]*WorkType, error) { return nil, nil }

func (r *fakeRepository) GetWorkType(_ context.Context, id string) (*WorkType, error) {
	return &WorkType{ID: id, Name: r.rows[id]}, nil
}

func (r *fakeRepository) UpsertWorkType(_ context.Context, t *WorkType) error {
	r.rows[t.ID] = t.Name
	return nil
}

func (r *fakeRepository) DeleteWorkType(_ context.Context, id string) error {
	delete(r.rows, id)
	return nil
}

func TestAddWorkType_Defaults(t *testing.T) {
	tests := []struct {
		name     string
		input    *WorkType
		wantID   string
		wantName string
	}{
		{"full", &WorkType{ID: "book", Name: "Book"}, "book", "Book"},
		{"name_defaults_to_id", &WorkType{ID: "thesis"}, "thesis", "thesis"},
		{"placeholder", &WorkType{}, PlaceholderID, PlaceholderID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepository{rows: map[string]string{}}
			service := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

			id, err := service.AddWorkType(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantName, repo.rows[tt.wantID])
		})
	}
}

func TestAddWorkType_UpsertOverwritesName(t *testing.T) {
	repo := &fakeRepository{rows: map[string]string{"book": "Old"}}
	service := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := service.AddWorkType(context.Background(), &WorkType{ID: "book", Name: "Book"})
	require.NoError(t, err)
	assert.Equal(t, "Book", repo.rows["book"])
}
