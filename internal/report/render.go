// Package report renders schema reports for human or machine consumption.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dbsmedya/goschema/internal/aggregate"
	"github.com/dbsmedya/goschema/internal/classify"
	"github.com/dbsmedya/goschema/internal/types"
)

// Renderer writes schema reports to an output stream.
type Renderer struct {
	out     io.Writer
	colored bool
}

// NewRenderer creates a Renderer. Coloring applies to table output only.
func NewRenderer(out io.Writer, colored bool) *Renderer {
	return &Renderer{out: out, colored: colored}
}

// tableColumns are the table header labels, in order.
var tableColumns = []string{"PATH", "FIELD", "TYPE", "COUNT", "MIN", "MAX"}

// typeColors maps type tags to their table display color.
var typeColors = map[classify.Tag]color.Color{
	classify.TagNull:     color.Gray,
	classify.TagBool:     color.Magenta,
	classify.TagInt:      color.Cyan,
	classify.TagDouble:   color.Cyan,
	classify.TagDecimal:  color.Cyan,
	classify.TagString:   color.Green,
	classify.TagDate:     color.Yellow,
	classify.TagObjectID: color.Yellow,
	classify.TagArray:    color.Blue,
	classify.TagObject:   color.Blue,
}

// RenderTable writes the report as an aligned text table, one row per
// (path, field, type) cell, followed by a run summary line.
func (r *Renderer) RenderTable(entries []aggregate.ReportEntry, stats types.AnalysisStats) error {
	rows := [][]string{tableColumns}
	tags := []classify.Tag{"", "", "", "", "", ""}

	for _, entry := range entries {
		path := entry.Path
		if path == "" {
			path = "(root)"
		}
		for _, summary := range entry.Types {
			rows = append(rows, []string{
				path,
				entry.Fieldname,
				string(summary.Type),
				strconv.FormatInt(summary.Count, 10),
				formatValue(summary.Min),
				formatValue(summary.Max),
			})
			tags = append(tags, summary.Type)
		}
	}

	widths := make([]int, len(tableColumns))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for rowIdx, row := range rows {
		line := ""
		for i, cell := range row {
			padded := cell + spaces(widths[i]-runewidth.StringWidth(cell))
			if r.colored && i == 2 && rowIdx > 0 {
				if c, ok := typeColors[tags[rowIdx]]; ok {
					padded = c.Sprint(padded)
				}
			}
			if i > 0 {
				line += "  "
			}
			line += padded
		}
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(r.out,
		"\n%d field(s) across %d document(s) in %s (%d failed, %d overflowed)\n",
		stats.DistinctFields,
		stats.DocumentsAnalyzed,
		stats.Duration.Round(time.Millisecond),
		stats.DocumentsFailed,
		stats.Overflows,
	)
	return err
}

// jsonReport is the machine-readable report envelope.
type jsonReport struct {
	Schema []aggregate.ReportEntry `json:"schema"`
	Stats  jsonStats               `json:"stats"`
}

type jsonStats struct {
	DocumentsAnalyzed int    `json:"documents_analyzed"`
	DocumentsFailed   int    `json:"documents_failed"`
	Overflows         int    `json:"overflows"`
	DistinctFields    int    `json:"distinct_fields"`
	Duration          string `json:"duration"`
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(entries []aggregate.ReportEntry, stats types.AnalysisStats) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Schema: entries,
		Stats: jsonStats{
			DocumentsAnalyzed: stats.DocumentsAnalyzed,
			DocumentsFailed:   stats.DocumentsFailed,
			Overflows:         stats.Overflows,
			DistinctFields:    stats.DistinctFields,
			Duration:          stats.Duration.String(),
		},
	})
}

// formatValue renders a min/max key for table display.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "-"
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case primitive.ObjectID:
		return val.Hex()
	default:
		return fmt.Sprintf("%v", val)
	}
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
