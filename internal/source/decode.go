// Package source provides document source collaborators for GoSchema.
//
// A source owns sampling and connection semantics and yields documents in the
// ordered tree shape the core analyzes. All sources decode through BSON so
// field order is preserved and extended-JSON scalars (ObjectIds, dates,
// decimals) classify as their real types rather than as strings.
package source

import (
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dbsmedya/goschema/internal/document"
)

// FromBSON converts an ordered BSON document into the core document model.
func FromBSON(d bson.D) *document.Document {
	doc := document.New()
	for _, elem := range d {
		doc.Set(elem.Key, fromValue(elem.Value))
	}
	return doc
}

// FromExtJSON parses one extended-JSON document (relaxed or canonical) into
// the core document model.
func FromExtJSON(data []byte) (*document.Document, error) {
	var d bson.D
	if err := bson.UnmarshalExtJSON(data, false, &d); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return FromBSON(d), nil
}

// fromValue normalizes nested containers: bson.D becomes *document.Document,
// bson.A becomes []interface{}, scalars pass through unchanged.
func fromValue(v interface{}) interface{} {
	switch val := v.(type) {
	case bson.D:
		return FromBSON(val)
	case bson.A:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = fromValue(elem)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, elem := range val {
			out[i] = fromValue(elem)
		}
		return out
	case bson.M:
		// Unordered maps should not appear on the decode path, but callers may
		// hand-build values. Sort keys so traversal stays deterministic.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		doc := document.New()
		for _, k := range keys {
			doc.Set(k, fromValue(val[k]))
		}
		return doc
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		doc := document.New()
		for _, k := range keys {
			doc.Set(k, fromValue(val[k]))
		}
		return doc
	default:
		return v
	}
}
