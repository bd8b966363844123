package ejson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/capydb/capydb-go/pkg/models"
)

// DecodeDocument parses a wire JSON payload back into a Document,
// reconstructing typed values and preserving key order. Wire objects with
// an unknown discriminator fail the decode so schema drift surfaces
// immediately instead of being silently dropped.
func DecodeDocument(data []byte) (*models.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, models.NewStructuralError("", "wire document must be a JSON object")
	}

	value, err := decodeObject(dec, "")
	if err != nil {
		return nil, err
	}

	doc, ok := value.(*models.Document)
	if !ok {
		return nil, models.NewStructuralError("", "top-level wire object must be a plain document")
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, models.NewStructuralError("", "unexpected data after document")
	}

	return doc, nil
}

// decodeObject reads the remainder of a JSON object (the opening brace has
// already been consumed) and interprets it as a typed value, an extended
// scalar, or a nested document.
func decodeObject(dec *json.Decoder, path string) (any, error) {
	fields := orderedmap.New[string, any]()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding object at %q: %w", path, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, models.NewStructuralError(path, "object key must be a string")
		}

		value, err := decodeValue(dec, childPath(path, key))
		if err != nil {
			return nil, err
		}
		fields.Set(key, value)
	}

	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding object at %q: %w", path, err)
	}

	if _, ok := fields.Get(typeField); ok {
		return buildTypedValue(fields, path)
	}

	if fields.Len() == 1 {
		if raw, ok := fields.Get(dateField); ok {
			return parseDate(raw, path)
		}
		if raw, ok := fields.Get(uuidField); ok {
			return parseUUID(raw, path)
		}
	}

	doc := models.NewDocument()
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		doc.Set(pair.Key, pair.Value)
	}
	return doc, nil
}

func decodeArray(dec *json.Decoder, path string) ([]any, error) {
	out := []any{}

	for dec.More() {
		value, err := decodeValue(dec, childPath(path, strconv.Itoa(len(out))))
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}

	// Consume the closing bracket
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding array at %q: %w", path, err)
	}

	return out, nil
}

func decodeValue(dec *json.Decoder, path string) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding value at %q: %w", path, err)
	}

	switch t := tok.(type) {
	case json.Delim:
		if t == '{' {
			return decodeObject(dec, path)
		}
		return decodeArray(dec, path)
	default:
		// string, float64, bool, or nil
		return t, nil
	}
}

func buildTypedValue(fields *orderedmap.OrderedMap[string, any], path string) (any, error) {
	raw, _ := fields.Get(typeField)
	kind, ok := raw.(string)
	if !ok {
		return nil, models.NewStructuralError(path, "typed value discriminator must be a string")
	}

	switch models.Kind(kind) {
	case models.KindText:
		return buildEmbText(fields, path)
	case models.KindImage:
		return buildEmbImage(fields, path)
	default:
		return nil, models.NewStructuralError(
			path,
			fmt.Sprintf("unknown typed value discriminator %q", kind),
		)
	}
}

func buildEmbText(fields *orderedmap.OrderedMap[string, any], path string) (any, error) {
	data, err := requireString(fields, dataField, path)
	if err != nil {
		return nil, err
	}

	opts, err := chunkOptions(fields, path)
	if err != nil {
		return nil, err
	}

	embModel, err := optionalString(fields, embModelField, path)
	if err != nil {
		return nil, err
	}
	if embModel != "" {
		opts = append(opts, models.WithEmbModel(embModel))
	}

	value, err := models.NewEmbText(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("typed value at %q: %w", path, err)
	}

	if err := applyChunks(fields, value, path); err != nil {
		return nil, err
	}

	return value, nil
}

func buildEmbImage(fields *orderedmap.OrderedMap[string, any], path string) (any, error) {
	data, err := requireString(fields, dataField, path)
	if err != nil {
		return nil, err
	}
	mimeType, err := requireString(fields, mimeTypeField, path)
	if err != nil {
		return nil, err
	}

	opts, err := chunkOptions(fields, path)
	if err != nil {
		return nil, err
	}

	embModel, err := optionalString(fields, embModelField, path)
	if err != nil {
		return nil, err
	}
	if embModel != "" {
		opts = append(opts, models.WithEmbModel(embModel))
	}

	visionModel, err := optionalString(fields, visionModelField, path)
	if err != nil {
		return nil, err
	}
	if visionModel != "" {
		opts = append(opts, models.WithVisionModel(visionModel))
	}

	value, err := models.NewEmbImage(data, mimeType, opts...)
	if err != nil {
		return nil, fmt.Errorf("typed value at %q: %w", path, err)
	}

	if err := applyChunks(fields, value, path); err != nil {
		return nil, err
	}

	url, err := optionalString(fields, urlField, path)
	if err != nil {
		return nil, err
	}
	if url != "" {
		value.SetURL(url)
	}

	return value, nil
}

// chunkOptions maps wire chunking fields to construction options.
// max_chunk_size and chunk_overlap are required; the remaining fields fall
// back to the construction defaults when absent.
func chunkOptions(fields *orderedmap.OrderedMap[string, any], path string) ([]models.EmbOption, error) {
	maxChunkSize, err := requireInt(fields, maxChunkSizeField, path)
	if err != nil {
		return nil, err
	}
	chunkOverlap, err := requireInt(fields, chunkOverlapField, path)
	if err != nil {
		return nil, err
	}

	opts := []models.EmbOption{
		models.WithMaxChunkSize(maxChunkSize),
		models.WithChunkOverlap(chunkOverlap),
	}

	if raw, ok := fields.Get(separatorsField); ok && raw != nil {
		separators, err := stringSlice(raw, separatorsField, path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, models.WithSeparators(separators...))
	}

	isRegex, err := optionalBool(fields, isSeparatorRegexField, path)
	if err != nil {
		return nil, err
	}
	opts = append(opts, models.WithSeparatorRegex(isRegex))

	keepSeparator, err := optionalBool(fields, keepSeparatorField, path)
	if err != nil {
		return nil, err
	}
	opts = append(opts, models.WithKeepSeparator(keepSeparator))

	return opts, nil
}

// applyChunks populates server-generated chunks when the wire object
// carries them. A malformed chunk list is a decode error, never a skip.
func applyChunks(fields *orderedmap.OrderedMap[string, any], value models.TypedValue, path string) error {
	raw, ok := fields.Get(chunksField)
	if !ok || raw == nil {
		return nil
	}

	chunks, err := stringSlice(raw, chunksField, path)
	if err != nil {
		return err
	}
	value.SetChunks(chunks)
	return nil
}

func requireString(fields *orderedmap.OrderedMap[string, any], field string, path string) (string, error) {
	raw, ok := fields.Get(field)
	if !ok {
		return "", models.NewStructuralError(
			path,
			fmt.Sprintf("typed value is missing required field %q", field),
		)
	}
	s, ok := raw.(string)
	if !ok {
		return "", models.NewStructuralError(
			path,
			fmt.Sprintf("typed value field %q must be a string", field),
		)
	}
	return s, nil
}

func requireInt(fields *orderedmap.OrderedMap[string, any], field string, path string) (int, error) {
	raw, ok := fields.Get(field)
	if !ok {
		return 0, models.NewStructuralError(
			path,
			fmt.Sprintf("typed value is missing required field %q", field),
		)
	}
	f, ok := raw.(float64)
	if !ok || f != float64(int(f)) {
		return 0, models.NewStructuralError(
			path,
			fmt.Sprintf("typed value field %q must be an integer", field),
		)
	}
	return int(f), nil
}

func optionalString(fields *orderedmap.OrderedMap[string, any], field string, path string) (string, error) {
	raw, ok := fields.Get(field)
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", models.NewStructuralError(
			path,
			fmt.Sprintf("typed value field %q must be a string or null", field),
		)
	}
	return s, nil
}

func optionalBool(fields *orderedmap.OrderedMap[string, any], field string, path string) (bool, error) {
	raw, ok := fields.Get(field)
	if !ok || raw == nil {
		return false, nil
	}
	b, ok := raw.(bool)
	if !ok {
		return false, models.NewStructuralError(
			path,
			fmt.Sprintf("typed value field %q must be a boolean", field),
		)
	}
	return b, nil
}

func stringSlice(raw any, field string, path string) ([]string, error) {
	elements, ok := raw.([]any)
	if !ok {
		return nil, models.NewStructuralError(
			path,
			fmt.Sprintf("typed value field %q must be an array of strings", field),
		)
	}

	out := make([]string, len(elements))
	for index, element := range elements {
		s, ok := element.(string)
		if !ok {
			return nil, models.NewStructuralError(
				path,
				fmt.Sprintf("typed value field %q must contain only strings", field),
			)
		}
		out[index] = s
	}
	return out, nil
}

func parseDate(raw any, path string) (time.Time, error) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, models.NewStructuralError(path, "$date value must be a string")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, models.NewStructuralError(
			path,
			fmt.Sprintf("invalid $date value %q", s),
		)
	}
	return t, nil
}

func parseUUID(raw any, path string) (uuid.UUID, error) {
	s, ok := raw.(string)
	if !ok {
		return uuid.UUID{}, models.NewStructuralError(path, "$uuid value must be a string")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, models.NewStructuralError(
			path,
			fmt.Sprintf("invalid $uuid value %q", s),
		)
	}
	return id, nil
}
