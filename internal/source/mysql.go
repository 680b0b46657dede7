package source

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/dbsmedya/goschema/internal/document"
	"github.com/dbsmedya/goschema/internal/sqlutil"
)

// MySQLSource yields JSON documents stored in one column of a MySQL table.
// Rows are sampled with ORDER BY RAND(), which is acceptable at the sample
// sizes schema inference works with; NULL cells are filtered server-side.
type MySQLSource struct {
	rows *sql.Rows
}

// NewMySQL opens a sampling query over table.column. Table and column names
// come from configuration, so they are validated before interpolation.
// A sampleSize of zero or less scans every non-NULL row.
func NewMySQL(ctx context.Context, db *sql.DB, table, column string, sampleSize int) (*MySQLSource, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is nil")
	}

	quotedTable, err := sqlutil.QuoteIdentifierSafe(table)
	if err != nil {
		return nil, fmt.Errorf("invalid table name: %w", err)
	}
	quotedColumn, err := sqlutil.QuoteIdentifierSafe(column)
	if err != nil {
		return nil, fmt.Errorf("invalid column name: %w", err)
	}

	var rows *sql.Rows
	if sampleSize > 0 {
		query := fmt.Sprintf(
			"SELECT %s FROM %s WHERE %s IS NOT NULL ORDER BY RAND() LIMIT ?",
			quotedColumn, quotedTable, quotedColumn,
		)
		rows, err = db.QueryContext(ctx, query, sampleSize)
	} else {
		query := fmt.Sprintf(
			"SELECT %s FROM %s WHERE %s IS NOT NULL",
			quotedColumn, quotedTable, quotedColumn,
		)
		rows, err = db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s.%s: %w", table, column, err)
	}

	return &MySQLSource{rows: rows}, nil
}

// Next returns the next sampled document, or io.EOF when the rows drain.
func (s *MySQLSource) Next(ctx context.Context) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.rows.Next() {
		// MySQL driver returns JSON/TEXT cells as []byte
		var raw []byte
		if err := s.rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan document column: %w", err)
		}
		return FromExtJSON(raw)
	}

	if err := s.rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return nil, io.EOF
}

// Close releases the row set.
func (s *MySQLSource) Close() error {
	return s.rows.Close()
}
