package models

// Kind discriminates the typed values that can appear in a document.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// TypedValue is a scalar the server processes into vector-indexed chunks.
// The concrete implementations are EmbText and EmbImage.
type TypedValue interface {
	Kind() Kind
	// Chunks returns the server-generated chunks, or nil if the value has
	// not been reconciled yet. Chunks are server-authored and read-only.
	Chunks() []string
	// IsMaterialized reports whether the server has populated chunks for
	// this value. An empty, non-nil chunk list still counts as materialized.
	IsMaterialized() bool
	// SetChunks attaches server-generated chunks to the value. It is called
	// by the codec and the reconciler; callers should never invoke it with
	// chunk data of their own.
	SetChunks(chunks []string)
	Validate() error
}

var _ TypedValue = &EmbText{}
var _ TypedValue = &EmbImage{}

// materialized holds the server-authored chunk state shared by all typed
// values. A nil slice means the server has not produced chunks yet, which
// is distinct from an empty chunk list.
type materialized struct {
	chunks []string
}

func (m *materialized) Chunks() []string {
	if m.chunks == nil {
		return nil
	}
	out := make([]string, len(m.chunks))
	copy(out, m.chunks)
	return out
}

func (m *materialized) IsMaterialized() bool {
	return m.chunks != nil
}

func (m *materialized) SetChunks(chunks []string) {
	out := make([]string, len(chunks))
	copy(out, chunks)
	m.chunks = out
}
