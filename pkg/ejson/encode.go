package ejson

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/capydb/capydb-go/pkg/models"
)

// Wire field names for typed value objects.
const (
	typeField             = "__type"
	dataField             = "data"
	mimeTypeField         = "mime_type"
	embModelField         = "emb_model"
	visionModelField      = "vision_model"
	maxChunkSizeField     = "max_chunk_size"
	chunkOverlapField     = "chunk_overlap"
	separatorsField       = "separators"
	isSeparatorRegexField = "is_separator_regex"
	keepSeparatorField    = "keep_separator"
	chunksField           = "chunks"
	urlField              = "url"
)

// Wire tags for extended scalar types.
const (
	dateField = "$date"
	uuidField = "$uuid"
)

// EncodeDocument serializes doc into its wire JSON form, preserving key
// order. Typed values are re-validated before any output is produced, so
// a failure leaves nothing half-encoded. Chunks are never transmitted:
// they are server-authored, and the server's copy is the source of truth.
func EncodeDocument(doc *models.Document) ([]byte, error) {
	err := walkDocument(doc, func(path string, value models.TypedValue) error {
		if err := value.Validate(); err != nil {
			return fmt.Errorf("typed value at %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return json.Marshal(encodeDoc(doc))
}

func encodeDoc(doc *models.Document) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, encodeValue(pair.Value))
	}
	return out
}

func encodeValue(value any) any {
	switch v := value.(type) {
	case *models.Document:
		return encodeDoc(v)
	case []any:
		out := make([]any, len(v))
		for index, element := range v {
			out[index] = encodeValue(element)
		}
		return out
	case time.Time:
		return taggedScalar(dateField, v.UTC().Format(time.RFC3339Nano))
	case uuid.UUID:
		return taggedScalar(uuidField, v.String())
	case *models.EmbText:
		return encodeEmbText(v)
	case *models.EmbImage:
		return encodeEmbImage(v)
	default:
		return value
	}
}

func encodeEmbText(t *models.EmbText) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	out.Set(typeField, string(models.KindText))
	out.Set(dataField, t.Text)
	out.Set(embModelField, t.EmbModel)
	setChunkParams(out, t.ChunkParams)
	return out
}

func encodeEmbImage(i *models.EmbImage) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	out.Set(typeField, string(models.KindImage))
	out.Set(dataField, i.Data)
	out.Set(mimeTypeField, i.MimeType)
	out.Set(embModelField, nullableString(i.EmbModel))
	out.Set(visionModelField, nullableString(i.VisionModel))
	setChunkParams(out, i.ChunkParams)
	return out
}

func setChunkParams(out *orderedmap.OrderedMap[string, any], p models.ChunkParams) {
	separators := p.Separators
	if separators == nil {
		separators = []string{}
	}

	out.Set(maxChunkSizeField, p.MaxChunkSize)
	out.Set(chunkOverlapField, p.ChunkOverlap)
	out.Set(separatorsField, separators)
	out.Set(isSeparatorRegexField, p.IsSeparatorRegex)
	out.Set(keepSeparatorField, p.KeepSeparator)
}

func taggedScalar(tag string, value any) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	out.Set(tag, value)
	return out
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
