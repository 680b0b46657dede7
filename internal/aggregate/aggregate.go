// Package aggregate merges flattened schema records from many documents into
// per-(path, field, type) summaries and shapes the final schema report.
//
// The merge is commutative and associative over the records seen so far:
// merging partial accumulators built from disjoint document subsets yields the
// same result as merging every record in one pass, in any order.
package aggregate

import (
	"github.com/dbsmedya/goschema/internal/classify"
	"github.com/dbsmedya/goschema/internal/flatten"
)

// cellKey groups observations of one field under one type at one path.
type cellKey struct {
	path      string
	fieldname string
	tag       classify.Tag
}

// Cell accumulates all observations sharing a (path, fieldname, type) triple.
// Min and Max are set only for comparable scalar tags; container and null-like
// tags accumulate count only. Created on first observation, never deleted.
type Cell struct {
	Path      string
	Fieldname string
	Type      classify.Tag
	Count     int64
	Min       interface{}
	Max       interface{}
}

// Accumulator is the mutable merge state for one sample. Not safe for
// concurrent use; callers either serialize Add calls or combine per-worker
// accumulators with Merge.
type Accumulator struct {
	cells map[cellKey]*Cell
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		cells: make(map[cellKey]*Cell),
	}
}

// Add merges one document's flattened records into the accumulator.
func (a *Accumulator) Add(records []flatten.FieldRecord) {
	for _, rec := range records {
		a.observe(rec)
	}
}

func (a *Accumulator) observe(rec flatten.FieldRecord) {
	k := cellKey{
		path:      rec.PathString(),
		fieldname: rec.Fieldname,
		tag:       rec.Type,
	}

	cell, ok := a.cells[k]
	if !ok {
		cell = &Cell{
			Path:      k.path,
			Fieldname: k.fieldname,
			Type:      k.tag,
		}
		a.cells[k] = cell
	}

	cell.Count++

	if !classify.Comparable(rec.Type) {
		return
	}
	key, ok := classify.Key(rec.Type, rec.Value)
	if !ok {
		return
	}
	if cell.Min == nil || classify.Less(rec.Type, key, cell.Min) {
		cell.Min = key
	}
	if cell.Max == nil || classify.Less(rec.Type, cell.Max, key) {
		cell.Max = key
	}
}

// Merge folds another accumulator into this one. The other accumulator is not
// modified. Counts add; min/max take the extremes of both sides.
func (a *Accumulator) Merge(other *Accumulator) {
	for k, otherCell := range other.cells {
		cell, ok := a.cells[k]
		if !ok {
			copied := *otherCell
			a.cells[k] = &copied
			continue
		}

		cell.Count += otherCell.Count

		if otherCell.Min != nil {
			if cell.Min == nil || classify.Less(k.tag, otherCell.Min, cell.Min) {
				cell.Min = otherCell.Min
			}
		}
		if otherCell.Max != nil {
			if cell.Max == nil || classify.Less(k.tag, cell.Max, otherCell.Max) {
				cell.Max = otherCell.Max
			}
		}
	}
}

// Len returns the number of distinct (path, fieldname, type) cells.
func (a *Accumulator) Len() int {
	return len(a.cells)
}
