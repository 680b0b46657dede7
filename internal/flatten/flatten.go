// Package flatten performs the bounded breadth-first traversal that turns one
// document tree into a flat sequence of per-field schema records.
package flatten

import (
	"strconv"
	"strings"

	"github.com/dbsmedya/goschema/internal/classify"
	"github.com/dbsmedya/goschema/internal/document"
)

const (
	// MaxDepth is the hierarchy depth ceiling. Children that would land beyond
	// this depth are discarded, not enqueued. A hard cap, not an error.
	MaxDepth = 100

	// DefaultMaxSubdocuments is the default per-document traversal budget.
	DefaultMaxSubdocuments = 500

	// ArrayItemField is the synthetic field name assigned to scalar array
	// elements, since arrays have no field names of their own.
	ArrayItemField = "<arrayitem>"

	// PlaceholderObject is reported as the value of object-typed fields.
	// The nested structure itself is never reported, only traversed.
	PlaceholderObject = "<object>"

	// PlaceholderArray is reported as the value of array-typed fields.
	PlaceholderArray = "<array>"
)

// FieldRecord is one field of one visited subdocument.
//
// Within one document's flattening, ID is strictly increasing and matches
// visit order. Position and Path are structural keys; they render to display
// strings only at the report boundary.
type FieldRecord struct {
	ID        int
	Depth     int
	Position  []int
	Path      []string
	Fieldname string
	Value     interface{}
	Type      classify.Tag
}

// PositionString renders the position as underscore-joined sibling ordinals,
// e.g. "0_1_2".
func (r FieldRecord) PositionString() string {
	parts := make([]string, len(r.Position))
	for i, p := range r.Position {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, "_")
}

// PathString renders the field path as a dot-joined string, empty at the root.
func (r FieldRecord) PathString() string {
	return strings.Join(r.Path, ".")
}

// queueItem is one pending subdocument visit. Created when a parent's children
// are enumerated, consumed exactly once, never mutated.
type queueItem struct {
	depth    int
	position []int
	path     []string
	doc      *document.Document
}

// Flatten walks one document breadth-first and emits one FieldRecord per field
// per visited subdocument, visiting at most maxSubdocuments subdocuments.
//
// The returned flag is true when the budget was exhausted while visits were
// still pending; the records produced up to the cutoff remain valid and the
// unvisited remainder is dropped. Field enumeration order is the document's
// own field order, so output is deterministic for a deterministic document.
func Flatten(doc *document.Document, maxSubdocuments int) ([]FieldRecord, bool) {
	if doc == nil {
		return nil, false
	}

	queue := []queueItem{{
		depth:    0,
		position: []int{0},
		path:     nil,
		doc:      doc,
	}}

	var records []FieldRecord
	visits := 0

	for len(queue) > 0 {
		if visits >= maxSubdocuments {
			// Budget exhausted with visits still pending.
			return records, true
		}

		cur := queue[0]
		queue = queue[1:]

		id := visits
		visits++

		for _, f := range cur.doc.Fields() {
			tag := classify.Classify(f.Value)
			value := f.Value
			switch tag {
			case classify.TagObject:
				value = PlaceholderObject
			case classify.TagArray:
				value = PlaceholderArray
			}

			records = append(records, FieldRecord{
				ID:        id,
				Depth:     cur.depth,
				Position:  cur.position,
				Path:      cur.path,
				Fieldname: f.Name,
				Value:     value,
				Type:      tag,
			})
		}

		if cur.depth+1 > MaxDepth {
			// Depth ceiling: children are discarded.
			continue
		}

		ordinal := 0
		for _, f := range cur.doc.Fields() {
			switch v := f.Value.(type) {
			case *document.Document:
				queue = append(queue, child(cur, ordinal, f.Name, v))
				ordinal++
			case []interface{}:
				for _, elem := range v {
					queue = append(queue, child(cur, ordinal, f.Name, wrapElement(elem)))
					ordinal++
				}
			}
		}
	}

	return records, false
}

// child builds the queue entry for one enumerated child of cur.
func child(cur queueItem, ordinal int, fieldname string, doc *document.Document) queueItem {
	position := make([]int, len(cur.position)+1)
	copy(position, cur.position)
	position[len(cur.position)] = ordinal

	path := make([]string, len(cur.path)+1)
	copy(path, cur.path)
	path[len(cur.path)] = fieldname

	return queueItem{
		depth:    cur.depth + 1,
		position: position,
		path:     path,
		doc:      doc,
	}
}

// wrapElement makes an array element uniformly object-shaped: object elements
// traverse as-is, anything else is wrapped under the array-item sentinel field.
func wrapElement(elem interface{}) *document.Document {
	if d, ok := elem.(*document.Document); ok {
		return d
	}
	return document.New().Set(ArrayItemField, elem)
}
