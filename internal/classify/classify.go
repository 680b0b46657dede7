// Package classify maps document values to canonical type tags and provides
// the per-tag total order used for min/max accumulation.
package classify

import (
	"bytes"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dbsmedya/goschema/internal/document"
	"github.com/dbsmedya/goschema/internal/types"
)

// Tag is a canonical type tag. The set is open: values no case recognizes fall
// back to TagUnknown rather than failing.
type Tag string

const (
	TagNull     Tag = "null"
	TagBool     Tag = "bool"
	TagInt      Tag = "int"
	TagDouble   Tag = "double"
	TagDecimal  Tag = "decimal" // counted only; the driver type has no cheap total order
	TagString   Tag = "string"
	TagDate     Tag = "date"
	TagObjectID Tag = "objectid"
	TagBinary   Tag = "binary"
	TagArray    Tag = "array"
	TagObject   Tag = "object"
	TagUnknown  Tag = "unknown"
)

// Classify returns the canonical type tag for a value.
// Deterministic: the same value always yields the same tag.
func Classify(v interface{}) Tag {
	if v == nil {
		return TagNull
	}

	switch v.(type) {
	case bool:
		return TagBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TagInt
	case float32, float64:
		return TagDouble
	case primitive.Decimal128:
		return TagDecimal
	case string:
		return TagString
	case time.Time:
		return TagDate
	case primitive.DateTime:
		return TagDate
	case primitive.Timestamp:
		return TagDate
	case primitive.ObjectID:
		return TagObjectID
	case primitive.Binary:
		return TagBinary
	case []byte:
		return TagBinary
	case *document.Document:
		return TagObject
	case map[string]interface{}:
		return TagObject
	case primitive.D, primitive.M:
		return TagObject
	case []interface{}:
		return TagArray
	case primitive.A:
		return TagArray
	case primitive.Null:
		return TagNull
	default:
		return TagUnknown
	}
}

// Comparable reports whether values of the tag admit a total order and thus
// participate in min/max accumulation. Container and null-like tags do not.
func Comparable(t Tag) bool {
	switch t {
	case TagBool, TagInt, TagDouble, TagString, TagDate, TagObjectID:
		return true
	default:
		return false
	}
}

// Key returns the comparable key for a value of a comparable tag, normalized
// to a single representative Go type per tag (int64, float64, string, bool,
// time.Time, primitive.ObjectID). The second return is false when the tag has
// no comparable key or the value does not match the tag.
func Key(t Tag, v interface{}) (interface{}, bool) {
	switch t {
	case TagBool:
		b, ok := v.(bool)
		return b, ok
	case TagInt:
		return normalizeInt(v)
	case TagDouble:
		return normalizeFloat(v)
	case TagString:
		s, ok := v.(string)
		return s, ok
	case TagDate:
		return normalizeTime(v)
	case TagObjectID:
		id, ok := v.(primitive.ObjectID)
		return id, ok
	default:
		return nil, false
	}
}

// Less reports whether a sorts before b under the tag's total order.
// Both arguments must be keys produced by Key for the same tag.
func Less(t Tag, a, b interface{}) bool {
	switch t {
	case TagBool:
		// false sorts before true
		return !a.(bool) && b.(bool)
	case TagInt:
		return a.(int64) < b.(int64)
	case TagDouble:
		return a.(float64) < b.(float64)
	case TagString:
		return a.(string) < b.(string)
	case TagDate:
		return a.(time.Time).Before(b.(time.Time))
	case TagObjectID:
		ai := a.(primitive.ObjectID)
		bi := b.(primitive.ObjectID)
		return bytes.Compare(ai[:], bi[:]) < 0
	default:
		return false
	}
}

func normalizeInt(v interface{}) (interface{}, bool) {
	i, ok := types.ToInt64(v)
	if !ok {
		return nil, false
	}
	return i, true
}

func normalizeFloat(v interface{}) (interface{}, bool) {
	f, ok := types.ToFloat64(v)
	if !ok {
		return nil, false
	}
	return f, true
}

func normalizeTime(v interface{}) (interface{}, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, true
	case primitive.DateTime:
		return d.Time().UTC(), true
	case primitive.Timestamp:
		return time.Unix(int64(d.T), 0).UTC(), true
	default:
		return nil, false
	}
}
