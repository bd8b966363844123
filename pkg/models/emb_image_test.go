package models

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validImageData() string {
	return base64.StdEncoding.EncodeToString([]byte("not really a png"))
}

func TestNewEmbImageDefaults(t *testing.T) {
	img, err := NewEmbImage(validImageData(), "image/png")
	require.NoError(t, err)

	// Both models default to unset: store only, do not process
	assert.Empty(t, img.EmbModel)
	assert.Empty(t, img.VisionModel)
	assert.Equal(t, DefaultMaxChunkSize, img.MaxChunkSize)
	assert.False(t, img.IsMaterialized())
	assert.Empty(t, img.URL())
}

func TestNewEmbImageWithModels(t *testing.T) {
	img, err := NewEmbImage(
		validImageData(),
		"image/jpeg",
		WithVisionModel(VisionGPT4oMini),
		WithEmbModel(EmbeddingTextEmbedding3Large),
	)
	require.NoError(t, err)

	assert.Equal(t, VisionGPT4oMini, img.VisionModel)
	assert.Equal(t, EmbeddingTextEmbedding3Large, img.EmbModel)
}

func TestNewEmbImageValidation(t *testing.T) {
	testCases := []struct {
		name      string
		data      string
		mimeType  string
		opts      []EmbOption
		wantField string
	}{
		{
			name:      "empty data",
			data:      "",
			mimeType:  "image/png",
			wantField: "data",
		},
		{
			name:      "invalid base64",
			data:      "!!!not-base64!!!",
			mimeType:  "image/png",
			wantField: "data",
		},
		{
			name:      "unsupported mime type",
			data:      validImageData(),
			mimeType:  "image/tiff",
			wantField: "mime_type",
		},
		{
			name:      "overlap equals max chunk size",
			data:      validImageData(),
			mimeType:  "image/png",
			opts:      []EmbOption{WithMaxChunkSize(10), WithChunkOverlap(10)},
			wantField: "chunk_overlap",
		},
		{
			name:      "unknown embedding model",
			data:      validImageData(),
			mimeType:  "image/png",
			opts:      []EmbOption{WithEmbModel("clip-vit")},
			wantField: "emb_model",
		},
		{
			name:      "unknown vision model",
			data:      validImageData(),
			mimeType:  "image/png",
			opts:      []EmbOption{WithVisionModel("llava")},
			wantField: "vision_model",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewEmbImage(tc.data, tc.mimeType, tc.opts...)
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantField, validationErr.Field)
		})
	}
}

func TestEmbImageString(t *testing.T) {
	img, err := NewEmbImage(validImageData(), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "EmbImage(<raw data>)", img.String())

	img.SetChunks([]string{"a capybara in a hot spring"})
	assert.Equal(t, `EmbImage("a capybara in a hot spring")`, img.String())

	img.SetURL("https://media.capydb.com/images/abc")
	assert.Equal(t, "EmbImage(https://media.capydb.com/images/abc)", img.String())
}
