package models

import (
	"fmt"
	"strings"
)

// EmbText is a text field the server chunks, embeds, and indexes for
// semantic search. Processing is asynchronous: chunks stay unset until the
// document is read back after the server pipeline has run.
type EmbText struct {
	Text     string
	EmbModel string
	ChunkParams
	materialized
}

// NewEmbText builds a text value from its source text. Configuration is
// validated synchronously; an invalid value never makes it into a document.
func NewEmbText(text string, opts ...EmbOption) (*EmbText, error) {
	cfg := newEmbConfig(opts)

	if cfg.visionModelSet {
		return nil, NewValidationError("vision_model", "not supported for text values")
	}

	t := &EmbText{
		Text:        text,
		EmbModel:    DefaultEmbeddingModel,
		ChunkParams: cfg.params,
	}
	if cfg.embModelSet {
		t.EmbModel = cfg.embModel
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *EmbText) Kind() Kind {
	return KindText
}

// Validate re-checks the construction invariants. The codec calls this
// before encoding to catch mutation after construction.
func (t *EmbText) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return NewValidationError("text", "must not be empty")
	}

	if err := t.ChunkParams.Validate(); err != nil {
		return err
	}

	if !ValidEmbeddingModels[t.EmbModel] {
		return NewValidationError(
			"emb_model",
			fmt.Sprintf("%q is not a supported embedding model", t.EmbModel),
		)
	}

	return nil
}

func (t *EmbText) String() string {
	return fmt.Sprintf("EmbText(%q)", t.Text)
}
