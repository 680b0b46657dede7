package flatten

import "github.com/dbsmedya/goschema/internal/classify"

// FieldSchema is one field of a subdocument-level schema.
type FieldSchema struct {
	Fieldname string
	Value     interface{}
	Type      classify.Tag
}

// SubdocumentSchema groups the field records of one visited subdocument.
type SubdocumentSchema struct {
	ID       int
	Depth    int
	Position []int
	Path     []string
	Schema   []FieldSchema
}

// Extract groups consecutive field records sharing the same visit into one
// subdocument-level record. Records must be in emission order, as returned by
// Flatten; grouping is by visit ID.
func Extract(records []FieldRecord) []SubdocumentSchema {
	var out []SubdocumentSchema

	for _, rec := range records {
		if len(out) == 0 || out[len(out)-1].ID != rec.ID {
			out = append(out, SubdocumentSchema{
				ID:       rec.ID,
				Depth:    rec.Depth,
				Position: rec.Position,
				Path:     rec.Path,
			})
		}
		last := &out[len(out)-1]
		last.Schema = append(last.Schema, FieldSchema{
			Fieldname: rec.Fieldname,
			Value:     rec.Value,
			Type:      rec.Type,
		})
	}

	return out
}
