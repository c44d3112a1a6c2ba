// Copyright (c) 2026 Biblion. All rights reserved.

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tkempf/biblion/pkg/pagination"
)

func TestParams_Offset(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		want  int
	}{
		{"first_page", 1, 20, 0},
		{"second_page", 2, 20, 20},
		{"fifth_page", 5, 10, 40},
		{"unbounded_ignores_page", 3, pagination.AllRows, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := pagination.Params{Page: tt.page, Limit: tt.limit}
			assert.Equal(t, tt.want, p.Offset())
		})
	}
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "", 1, 20},
		{"explicit", "?page=3&limit=50", 3, 50},
		{"zero_limit_means_all", "?limit=0", 1, pagination.AllRows},
		{"negative_limit_clamped", "?limit=-5", 1, 20},
		{"oversized_limit_clamped", "?limit=9999", 1, pagination.MaxLimit},
		{"garbage_ignored", "?page=x&limit=y", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/works"+tt.query, nil)
			p := pagination.FromRequest(r)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(2, 20, 45)
	assert.Equal(t, 3, meta.TotalPages)

	unbounded := pagination.NewMeta(1, pagination.AllRows, 45)
	assert.Equal(t, 1, unbounded.TotalPages)
}
