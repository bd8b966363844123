package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbTextDefaults(t *testing.T) {
	text, err := NewEmbText("hello world")
	require.NoError(t, err)

	assert.Equal(t, DefaultEmbeddingModel, text.EmbModel)
	assert.Equal(t, DefaultMaxChunkSize, text.MaxChunkSize)
	assert.Equal(t, DefaultChunkOverlap, text.ChunkOverlap)
	assert.Equal(t, DefaultSeparators, text.Separators)
	assert.False(t, text.IsSeparatorRegex)
	assert.False(t, text.KeepSeparator)
	assert.False(t, text.IsMaterialized())
	assert.Nil(t, text.Chunks())
}

func TestNewEmbTextOverlapBoundary(t *testing.T) {
	// overlap == max_chunk_size is rejected
	_, err := NewEmbText("hello world", WithMaxChunkSize(5), WithChunkOverlap(5))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	// overlap == max_chunk_size - 1 is accepted
	text, err := NewEmbText("hello world", WithMaxChunkSize(5), WithChunkOverlap(4))
	require.NoError(t, err)
	assert.Equal(t, 4, text.ChunkOverlap)

	_, err = NewEmbText("hello world", WithMaxChunkSize(5), WithChunkOverlap(1))
	assert.NoError(t, err)
}

func TestNewEmbTextValidation(t *testing.T) {
	testCases := []struct {
		name      string
		text      string
		opts      []EmbOption
		wantField string
	}{
		{
			name:      "empty text",
			text:      "",
			wantField: "text",
		},
		{
			name:      "whitespace only text",
			text:      "   \n",
			wantField: "text",
		},
		{
			name:      "zero max chunk size",
			text:      "hello",
			opts:      []EmbOption{WithMaxChunkSize(0)},
			wantField: "max_chunk_size",
		},
		{
			name:      "negative overlap",
			text:      "hello",
			opts:      []EmbOption{WithChunkOverlap(-1)},
			wantField: "chunk_overlap",
		},
		{
			name: "invalid separator regex",
			text: "hello",
			opts: []EmbOption{
				WithSeparators("["),
				WithSeparatorRegex(true),
			},
			wantField: "separators",
		},
		{
			name:      "unknown embedding model",
			text:      "hello",
			opts:      []EmbOption{WithEmbModel("bge-small-en")},
			wantField: "emb_model",
		},
		{
			name:      "vision model on text value",
			text:      "hello",
			opts:      []EmbOption{WithVisionModel(VisionGPT4o)},
			wantField: "vision_model",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEmbText(tc.text, tc.opts...)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}

func TestNewEmbTextLiteralSeparatorsNotCompiled(t *testing.T) {
	// "[" is an invalid regex but a perfectly fine literal separator
	text, err := NewEmbText("hello", WithSeparators("["))
	require.NoError(t, err)
	assert.Equal(t, []string{"["}, text.Separators)
}

func TestEmbTextChunksAreCopied(t *testing.T) {
	text, err := NewEmbText("hello world")
	require.NoError(t, err)

	text.SetChunks([]string{"hello", "world"})
	require.True(t, text.IsMaterialized())

	chunks := text.Chunks()
	chunks[0] = "mutated"

	assert.Equal(t, []string{"hello", "world"}, text.Chunks())
}

func TestEmbTextEmptyChunksStillMaterialized(t *testing.T) {
	text, err := NewEmbText("hello world")
	require.NoError(t, err)

	text.SetChunks([]string{})

	assert.True(t, text.IsMaterialized())
	assert.NotNil(t, text.Chunks())
	assert.Len(t, text.Chunks(), 0)
}

func TestEmbTextValidateCatchesMutation(t *testing.T) {
	text, err := NewEmbText("hello world")
	require.NoError(t, err)

	text.ChunkOverlap = text.MaxChunkSize

	err = text.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}
