package models

import (
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document is an ordered map of field names to values. A value may be a
// primitive, a nested *Document, a []any sequence, or a typed value
// (*EmbText, *EmbImage). Key order is preserved across encode and decode.
//
// Documents are trees: sharing a container or typed value between two
// positions is rejected by the codec.
type Document struct {
	fields *orderedmap.OrderedMap[string, any]
}

func NewDocument() *Document {
	return &Document{fields: orderedmap.New[string, any]()}
}

// Set stores value under key, preserving insertion order for new keys.
// It returns the document so calls can be chained.
func (d *Document) Set(key string, value any) *Document {
	d.fields.Set(key, value)
	return d
}

func (d *Document) Get(key string) (any, bool) {
	return d.fields.Get(key)
}

func (d *Document) Delete(key string) bool {
	_, present := d.fields.Delete(key)
	return present
}

func (d *Document) Len() int {
	return d.fields.Len()
}

// Keys returns the field names in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.fields.Len())
	for pair := d.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Oldest returns the first field pair for in-order iteration.
func (d *Document) Oldest() *orderedmap.Pair[string, any] {
	return d.fields.Oldest()
}

// GetPath resolves a dotted field path such as "profile.bio" or
// "items.2.description" against the document tree.
func (d *Document) GetPath(path string) (any, bool) {
	var current any = d
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case *Document:
			value, ok := node.Get(segment)
			if !ok {
				return nil, false
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, false
			}
			current = node[index]
		default:
			return nil, false
		}
	}
	return current, true
}
