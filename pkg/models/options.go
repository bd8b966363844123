package models

// EmbOption overrides a single field of a typed value's configuration at
// construction time. Unset fields keep their documented defaults.
type EmbOption func(*embConfig)

type embConfig struct {
	embModel       string
	embModelSet    bool
	visionModel    string
	visionModelSet bool
	params         ChunkParams
}

func newEmbConfig(opts []EmbOption) embConfig {
	cfg := embConfig{params: DefaultChunkParams()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithEmbModel sets the embedding model used to vectorize the value's chunks.
func WithEmbModel(model string) EmbOption {
	return func(cfg *embConfig) {
		cfg.embModel = model
		cfg.embModelSet = true
	}
}

// WithVisionModel sets the vision model used to describe image content.
// Only valid for image values.
func WithVisionModel(model string) EmbOption {
	return func(cfg *embConfig) {
		cfg.visionModel = model
		cfg.visionModelSet = true
	}
}

// WithMaxChunkSize bounds the number of characters per chunk.
func WithMaxChunkSize(size int) EmbOption {
	return func(cfg *embConfig) {
		cfg.params.MaxChunkSize = size
	}
}

// WithChunkOverlap sets the number of characters shared between adjacent
// chunks. Must be strictly less than the max chunk size.
func WithChunkOverlap(overlap int) EmbOption {
	return func(cfg *embConfig) {
		cfg.params.ChunkOverlap = overlap
	}
}

// WithSeparators replaces the default split separators. Separators are
// applied in priority order; an empty list falls back to the server's
// default splitting.
func WithSeparators(separators ...string) EmbOption {
	return func(cfg *embConfig) {
		cfg.params.Separators = separators
	}
}

// WithSeparatorRegex treats every separator as a regular expression.
func WithSeparatorRegex(isRegex bool) EmbOption {
	return func(cfg *embConfig) {
		cfg.params.IsSeparatorRegex = isRegex
	}
}

// WithKeepSeparator retains the separator text on split boundaries.
func WithKeepSeparator(keep bool) EmbOption {
	return func(cfg *embConfig) {
		cfg.params.KeepSeparator = keep
	}
}
