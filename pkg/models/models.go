package models

import "github.com/capydb/capydb-go/internal"

// Embedding model identifiers accepted by the server.
const (
	EmbeddingTextEmbedding3Small = "text-embedding-3-small"
	EmbeddingTextEmbedding3Large = "text-embedding-3-large"
	EmbeddingTextEmbeddingAda002 = "text-embedding-ada-002"
)

// Vision model identifiers accepted by the server.
const (
	VisionGPT4o     = "gpt-4o"
	VisionGPT4oMini = "gpt-4o-mini"
	VisionGPT4Turbo = "gpt-4-turbo"
	VisionO1        = "o1"
)

// DefaultEmbeddingModel is applied to text values constructed without an
// explicit model.
const DefaultEmbeddingModel = EmbeddingTextEmbedding3Small

var ValidEmbeddingModels = map[string]bool{
	EmbeddingTextEmbedding3Small: true,
	EmbeddingTextEmbedding3Large: true,
	EmbeddingTextEmbeddingAda002: true,
}

var ValidVisionModels = map[string]bool{
	VisionGPT4o:     true,
	VisionGPT4oMini: true,
	VisionGPT4Turbo: true,
	VisionO1:        true,
}

// ValidModelMap contains every model identifier the server accepts,
// regardless of role.
var ValidModelMap = internal.MergeMaps(ValidEmbeddingModels, ValidVisionModels)

var SupportedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}
