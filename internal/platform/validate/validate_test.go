// Copyright (c) 2026 Biblion. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkempf/biblion/internal/platform/apperr"
	"github.com/tkempf/biblion/internal/platform/validate"
)

func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Biblion", false},
		{"empty_string", "title", "", true},
		{"whitespace_only", "title", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.NoError(t, v.Err())
			}
		})
	}
}

func TestValidator_Language(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		hasError bool
	}{
		{"iso_639_1", "en", false},
		{"iso_639_3", "deu", false},
		{"empty_is_ok", "", false},
		{"uppercase_rejected", "EN", true},
		{"too_long", "german", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Language("language", tt.value)
			assert.Equal(t, tt.hasError, v.HasErrors())
		})
	}
}

func TestValidator_Chaining(t *testing.T) {
	v := &validate.Validator{}
	v.Required("title", "").MaxLen("note", "ok", 1).Range("year_pub", 50000, 0, 9999)

	err := v.Err()
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}
