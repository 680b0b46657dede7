package aggregate

import (
	"sort"

	"github.com/dbsmedya/goschema/internal/classify"
	"github.com/dbsmedya/goschema/internal/flatten"
)

// TypeSummary is the read-only projection of one Cell inside a report entry.
type TypeSummary struct {
	Type  classify.Tag `json:"type"`
	Count int64        `json:"count"`
	Min   interface{}  `json:"min,omitempty"`
	Max   interface{}  `json:"max,omitempty"`
}

// ReportEntry lists every observed type of one field at one path.
type ReportEntry struct {
	Path      string        `json:"path"`
	Fieldname string        `json:"field"`
	Types     []TypeSummary `json:"types"`
}

// Report regroups the accumulated cells by (path, fieldname) into the final
// sorted schema report. Entries are ordered lexicographically by path then
// fieldname, the empty path (document root) first; the type list within an
// entry is sorted by type tag so output is independent of observation order.
func (a *Accumulator) Report() []ReportEntry {
	type entryKey struct {
		path      string
		fieldname string
	}

	grouped := make(map[entryKey][]TypeSummary)
	for k, cell := range a.cells {
		ek := entryKey{path: k.path, fieldname: k.fieldname}
		grouped[ek] = append(grouped[ek], TypeSummary{
			Type:  cell.Type,
			Count: cell.Count,
			Min:   cell.Min,
			Max:   cell.Max,
		})
	}

	entries := make([]ReportEntry, 0, len(grouped))
	for ek, summaries := range grouped {
		sort.Slice(summaries, func(i, j int) bool {
			return summaries[i].Type < summaries[j].Type
		})
		entries = append(entries, ReportEntry{
			Path:      ek.path,
			Fieldname: ek.fieldname,
			Types:     summaries,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Path != entries[j].Path {
			return entries[i].Path < entries[j].Path
		}
		return entries[i].Fieldname < entries[j].Fieldname
	})

	return entries
}

// Aggregate merges many documents' flattened record sequences in one pass and
// returns the sorted schema report. Pure convenience over Accumulator for
// callers that already hold every sequence in memory.
func Aggregate(sequences [][]flatten.FieldRecord) []ReportEntry {
	acc := NewAccumulator()
	for _, records := range sequences {
		acc.Add(records)
	}
	return acc.Report()
}
