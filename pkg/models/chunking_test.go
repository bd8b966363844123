package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultChunkParams(t *testing.T) {
	params := DefaultChunkParams()

	assert.Equal(t, DefaultMaxChunkSize, params.MaxChunkSize)
	assert.Equal(t, DefaultChunkOverlap, params.ChunkOverlap)
	assert.Equal(t, DefaultSeparators, params.Separators)
	assert.NoError(t, params.Validate())
}

func TestDefaultSeparatorsAreNotShared(t *testing.T) {
	params := DefaultChunkParams()
	params.Separators[0] = "mutated"

	assert.Equal(t, "\n\n", DefaultSeparators[0])
}

func TestChunkParamsValidate(t *testing.T) {
	testCases := []struct {
		name      string
		params    ChunkParams
		wantField string
	}{
		{
			name:      "zero max chunk size",
			params:    ChunkParams{MaxChunkSize: 0},
			wantField: "max_chunk_size",
		},
		{
			name:      "negative max chunk size",
			params:    ChunkParams{MaxChunkSize: -5},
			wantField: "max_chunk_size",
		},
		{
			name:      "negative overlap",
			params:    ChunkParams{MaxChunkSize: 10, ChunkOverlap: -1},
			wantField: "chunk_overlap",
		},
		{
			name:      "overlap equals max",
			params:    ChunkParams{MaxChunkSize: 10, ChunkOverlap: 10},
			wantField: "chunk_overlap",
		},
		{
			name:      "overlap above max",
			params:    ChunkParams{MaxChunkSize: 10, ChunkOverlap: 11},
			wantField: "chunk_overlap",
		},
		{
			name: "invalid regex separator",
			params: ChunkParams{
				MaxChunkSize:     10,
				Separators:       []string{"(unclosed"},
				IsSeparatorRegex: true,
			},
			wantField: "separators",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.params.Validate()
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}

func TestChunkParamsValidateAccepts(t *testing.T) {
	testCases := []struct {
		name   string
		params ChunkParams
	}{
		{
			name:   "minimal",
			params: ChunkParams{MaxChunkSize: 1},
		},
		{
			name:   "empty separators",
			params: ChunkParams{MaxChunkSize: 10, Separators: []string{}},
		},
		{
			name: "valid regex separators",
			params: ChunkParams{
				MaxChunkSize:     10,
				Separators:       []string{`\n+`, `\.\s`},
				IsSeparatorRegex: true,
			},
		},
		{
			name: "regex-invalid separator treated literally",
			params: ChunkParams{
				MaxChunkSize: 10,
				Separators:   []string{"["},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, tc.params.Validate())
		})
	}
}
