// Package ejson implements the wire codec for documents that embed
// AI-native typed values. It serializes a Document to the extended JSON
// form the CapyDB API exchanges, reconstructs documents from wire
// payloads, and reconciles server-generated chunks back onto caller-held
// documents.
package ejson

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/capydb/capydb-go/pkg/models"
)

// walker performs the depth-first traversal shared by encoding,
// reconciliation, and chunk indexing. It enforces the tree contract:
// no cycles, no container shared between two positions, and no typed
// value appearing at more than one field path.
type walker struct {
	containers map[uintptr]string
	values     map[models.TypedValue]string
	paths      map[string]bool
	visit      func(path string, value models.TypedValue) error
}

func walkDocument(
	doc *models.Document,
	visit func(path string, value models.TypedValue) error,
) error {
	w := &walker{
		containers: make(map[uintptr]string),
		values:     make(map[models.TypedValue]string),
		paths:      make(map[string]bool),
		visit:      visit,
	}
	return w.walkDoc(doc, "")
}

func (w *walker) walkDoc(doc *models.Document, path string) error {
	if doc == nil {
		return models.NewStructuralError(path, "nil document")
	}

	if err := w.checkContainer(reflect.ValueOf(doc).Pointer(), path); err != nil {
		return err
	}

	for pair := doc.Oldest(); pair != nil; pair = pair.Next() {
		if err := w.walkValue(pair.Value, childPath(path, pair.Key)); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkSeq(seq []any, path string) error {
	if len(seq) > 0 {
		if err := w.checkContainer(reflect.ValueOf(seq).Pointer(), path); err != nil {
			return err
		}
	}

	for index, element := range seq {
		if err := w.walkValue(element, childPath(path, strconv.Itoa(index))); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) walkValue(value any, path string) error {
	switch v := value.(type) {
	case nil:
		return nil
	case string, bool, int, int32, int64, float32, float64,
		time.Time, uuid.UUID:
		return nil
	case *models.Document:
		return w.walkDoc(v, path)
	case []any:
		return w.walkSeq(v, path)
	case *models.EmbText:
		return w.visitTyped(v, path)
	case *models.EmbImage:
		return w.visitTyped(v, path)
	default:
		return models.NewStructuralError(
			path,
			fmt.Sprintf("unsupported value type %T", value),
		)
	}
}

func (w *walker) visitTyped(value models.TypedValue, path string) error {
	if previous, ok := w.values[value]; ok {
		return models.NewStructuralError(
			path,
			fmt.Sprintf(
				"typed value already present at %q; a value may appear only once per document",
				previous,
			),
		)
	}
	if w.paths[path] {
		return models.NewStructuralError(path, "duplicate typed value path")
	}
	w.values[value] = path
	w.paths[path] = true

	if w.visit != nil {
		return w.visit(path, value)
	}
	return nil
}

// checkContainer rejects documents that are graphs rather than trees.
// A container seen twice is either a cycle or a shared subtree; both make
// field paths ambiguous.
func (w *walker) checkContainer(ptr uintptr, path string) error {
	if previous, seen := w.containers[ptr]; seen {
		return models.NewStructuralError(
			path,
			fmt.Sprintf("document is not a tree: container already present at %q", previous),
		)
	}
	w.containers[ptr] = path
	return nil
}

func childPath(prefix string, segment string) string {
	if prefix == "" {
		return segment
	}
	return prefix + "." + segment
}
