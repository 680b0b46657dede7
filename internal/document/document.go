// Package document provides the ordered document model analyzed by GoSchema.
//
// A Document preserves the insertion order of its fields. Field order matters:
// it determines the order schema records are emitted in and the position paths
// assigned to nested subdocuments, so two byte-identical source documents always
// flatten to identical output.
package document

import (
	orderedmap "github.com/elliotchance/orderedmap/v2"
)

// Document is one object-shaped node in a document tree. Field values are
// scalars, *Document for nested objects, or []interface{} for arrays.
type Document struct {
	fields *orderedmap.OrderedMap[string, interface{}]
}

// Field is a single named value of a Document, in declaration order.
type Field struct {
	Name  string
	Value interface{}
}

// New creates an empty Document.
func New() *Document {
	return &Document{
		fields: orderedmap.NewOrderedMap[string, interface{}](),
	}
}

// Set adds or replaces a field. Setting an existing field keeps its original
// position. Returns the document for chaining.
func (d *Document) Set(name string, value interface{}) *Document {
	d.fields.Set(name, value)
	return d
}

// Get returns the value of the named field and whether it exists.
func (d *Document) Get(name string) (interface{}, bool) {
	return d.fields.Get(name)
}

// Len returns the number of fields.
func (d *Document) Len() int {
	return d.fields.Len()
}

// Fields returns all fields in insertion order.
func (d *Document) Fields() []Field {
	out := make([]Field, 0, d.fields.Len())
	for el := d.fields.Front(); el != nil; el = el.Next() {
		out = append(out, Field{Name: el.Key, Value: el.Value})
	}
	return out
}

// Keys returns the field names in insertion order.
func (d *Document) Keys() []string {
	return d.fields.Keys()
}
