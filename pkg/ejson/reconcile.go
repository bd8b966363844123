package ejson

import (
	"github.com/capydb/capydb-go/pkg/models"
)

// Reconcile applies server-generated chunks onto a caller-held document.
// Entries are matched to typed values by field path. Paths that do not
// resolve to a typed value in the current document shape are skipped:
// chunk generation is asynchronous and the caller may have reshaped the
// document since the write. Reconciliation is idempotent and mutates
// nothing but chunks.
func Reconcile(doc *models.Document, chunksByPath map[string][]string) error {
	type update struct {
		value  models.TypedValue
		chunks []string
	}

	var updates []update
	err := walkDocument(doc, func(path string, value models.TypedValue) error {
		if chunks, ok := chunksByPath[path]; ok {
			updates = append(updates, update{value: value, chunks: chunks})
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Apply only after the walk has validated the whole tree, so a
	// structural failure leaves the document untouched.
	for _, u := range updates {
		u.value.SetChunks(u.chunks)
	}
	return nil
}

// ChunkIndex builds the {path -> chunks} mapping for every materialized
// typed value in doc, typically one freshly fetched from the server.
// Feed the result to Reconcile to copy server state onto the caller's
// original document.
func ChunkIndex(doc *models.Document) (map[string][]string, error) {
	index := make(map[string][]string)

	err := walkDocument(doc, func(path string, value models.TypedValue) error {
		if value.IsMaterialized() {
			index[path] = value.Chunks()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return index, nil
}
