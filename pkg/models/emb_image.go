package models

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
)

// EmbImage is an image field holding base64-encoded bytes. When a vision
// model is configured the server describes the image and indexes the
// resulting chunks; without one the image is stored but not processed.
// The server may also assign a hosted URL for the stored bytes.
type EmbImage struct {
	Data        string
	MimeType    string
	EmbModel    string
	VisionModel string
	ChunkParams
	materialized

	url string
}

// NewEmbImage builds an image value from base64-encoded bytes and their
// MIME type. Both models default to unset, meaning store only.
func NewEmbImage(data string, mimeType string, opts ...EmbOption) (*EmbImage, error) {
	cfg := newEmbConfig(opts)

	img := &EmbImage{
		Data:        data,
		MimeType:    mimeType,
		ChunkParams: cfg.params,
	}
	if cfg.embModelSet {
		img.EmbModel = cfg.embModel
	}
	if cfg.visionModelSet {
		img.VisionModel = cfg.visionModel
	}

	if err := img.Validate(); err != nil {
		return nil, err
	}

	return img, nil
}

func (i *EmbImage) Kind() Kind {
	return KindImage
}

// Validate re-checks the construction invariants. The codec calls this
// before encoding to catch mutation after construction.
func (i *EmbImage) Validate() error {
	if strings.TrimSpace(i.Data) == "" {
		return NewValidationError("data", "must be a non-empty base64-encoded string")
	}
	if _, err := base64.StdEncoding.DecodeString(i.Data); err != nil {
		return NewValidationError("data", "must be valid base64-encoded image data")
	}

	if !SupportedImageMimeTypes[i.MimeType] {
		return NewValidationError(
			"mime_type",
			fmt.Sprintf(
				"%q is not supported; supported types are: %s",
				i.MimeType,
				strings.Join(supportedMimeTypeList(), ", "),
			),
		)
	}

	if err := i.ChunkParams.Validate(); err != nil {
		return err
	}

	if i.EmbModel != "" && !ValidEmbeddingModels[i.EmbModel] {
		return NewValidationError(
			"emb_model",
			fmt.Sprintf("%q is not a supported embedding model", i.EmbModel),
		)
	}

	if i.VisionModel != "" && !ValidVisionModels[i.VisionModel] {
		return NewValidationError(
			"vision_model",
			fmt.Sprintf("%q is not a supported vision model", i.VisionModel),
		)
	}

	return nil
}

// URL returns the server-assigned location of the stored image, or the
// empty string if the server has not stored it yet.
func (i *EmbImage) URL() string {
	return i.url
}

// SetURL records the server-assigned URL. Called by the codec on decode.
func (i *EmbImage) SetURL(url string) {
	i.url = url
}

func (i *EmbImage) String() string {
	if i.url != "" {
		return fmt.Sprintf("EmbImage(%s)", i.url)
	}
	if chunks := i.Chunks(); len(chunks) > 0 {
		return fmt.Sprintf("EmbImage(%q)", chunks[0])
	}
	return "EmbImage(<raw data>)"
}

func supportedMimeTypeList() []string {
	types := make([]string, 0, len(SupportedImageMimeTypes))
	for mimeType := range SupportedImageMimeTypes {
		types = append(types, mimeType)
	}
	sort.Strings(types)
	return types
}
