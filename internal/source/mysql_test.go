package source

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMySQL_SampledQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"payload"}).
		AddRow([]byte(`{"a": 1, "b": "x"}`)).
		AddRow([]byte(`{"a": 2}`))

	mock.ExpectQuery("SELECT `payload` FROM `events` WHERE `payload` IS NOT NULL ORDER BY RAND\\(\\) LIMIT \\?").
		WithArgs(2).
		WillReturnRows(rows)

	src, err := NewMySQL(context.Background(), db, "events", "payload", 2)
	require.NoError(t, err)
	defer src.Close()

	first, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, first.Keys())

	second, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.Len())

	_, err = src.Next(context.Background())
	assert.True(t, errors.Is(err, io.EOF))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewMySQL_NoLimitScansAllRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"doc"}).AddRow([]byte(`{"a": 1}`))

	mock.ExpectQuery("SELECT `doc` FROM `t` WHERE `doc` IS NOT NULL$").
		WillReturnRows(rows)

	src, err := NewMySQL(context.Background(), db, "t", "doc", 0)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Next(context.Background())
	require.NoError(t, err)
	_, err = src.Next(context.Background())
	assert.True(t, errors.Is(err, io.EOF))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewMySQL_RejectsInvalidIdentifiers(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewMySQL(context.Background(), db, "events; DROP TABLE x", "payload", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid table name")

	_, err = NewMySQL(context.Background(), db, "events", "payload--", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid column name")
}

func TestNewMySQL_NilHandle(t *testing.T) {
	_, err := NewMySQL(context.Background(), nil, "t", "c", 1)
	require.Error(t, err)
}

func TestMySQLSource_MalformedCellIsAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{broken`)).
		AddRow([]byte(`{"ok": true}`))

	mock.ExpectQuery("SELECT `doc` FROM `t` WHERE `doc` IS NOT NULL ORDER BY RAND\\(\\) LIMIT \\?").
		WithArgs(5).
		WillReturnRows(rows)

	src, err := NewMySQL(context.Background(), db, "t", "doc", 5)
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Next(context.Background())
	require.Error(t, err)

	doc, err := src.Next(context.Background())
	require.NoError(t, err)
	v, _ := doc.Get("ok")
	assert.Equal(t, true, v)
}

func TestMySQLSource_QueryFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT `doc` FROM `t`").
		WillReturnError(errors.New("table does not exist"))

	_, err = NewMySQL(context.Background(), db, "t", "doc", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query")
}
