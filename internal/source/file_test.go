package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dbsmedya/goschema/internal/document"
)

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.ndjson")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func drain(t *testing.T, src *FileSource) (docs []*document.Document, errs []error) {
	t.Helper()
	for {
		doc, err := src.Next(context.Background())
		if errors.Is(err, io.EOF) {
			return docs, errs
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}
}

func TestFileSource_ReadsEveryLine(t *testing.T) {
	path := writeTestFile(t, `{"a": 1}
{"a": 2}
{"a": 3}
`)

	src, err := NewFile(path, 0)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer src.Close()

	docs, errs := drain(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(docs) != 3 {
		t.Fatalf("expected 3 documents, got %d", len(docs))
	}
	if v, _ := docs[2].Get("a"); v != int32(3) {
		t.Errorf("expected a=3 in the last document, got %v (%T)", v, v)
	}
}

func TestFileSource_SampleLimit(t *testing.T) {
	path := writeTestFile(t, `{"n": 1}
{"n": 2}
{"n": 3}
{"n": 4}
`)

	src, err := NewFile(path, 2)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer src.Close()

	docs, errs := drain(t, src)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(docs) != 2 {
		t.Errorf("expected the sample limit to stop at 2 documents, got %d", len(docs))
	}
}

func TestFileSource_SkipsBlankLines(t *testing.T) {
	path := writeTestFile(t, `{"a": 1}


{"a": 2}
`)

	src, err := NewFile(path, 0)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer src.Close()

	docs, errs := drain(t, src)
	if len(errs) != 0 || len(docs) != 2 {
		t.Errorf("expected 2 documents and no errors, got %d docs, %v", len(docs), errs)
	}
}

func TestFileSource_MalformedLineIsIsolated(t *testing.T) {
	path := writeTestFile(t, `{"a": 1}
{broken
{"a": 2}
`)

	src, err := NewFile(path, 0)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer src.Close()

	docs, errs := drain(t, src)
	if len(errs) != 1 {
		t.Fatalf("expected 1 parse error, got %d", len(errs))
	}
	if len(docs) != 2 {
		t.Errorf("documents after the bad line must still be read, got %d", len(docs))
	}
}

func TestFileSource_MalformedLineCountsAgainstSample(t *testing.T) {
	path := writeTestFile(t, `{broken
{"a": 1}
{"a": 2}
`)

	src, err := NewFile(path, 2)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer src.Close()

	docs, errs := drain(t, src)
	if len(errs) != 1 {
		t.Fatalf("expected 1 parse error, got %d", len(errs))
	}
	if len(docs) != 1 {
		t.Errorf("the bad line consumes one sample slot, expected 1 document, got %d", len(docs))
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	if _, err := NewFile(filepath.Join(t.TempDir(), "absent.ndjson"), 0); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFileSource_CancelledContext(t *testing.T) {
	path := writeTestFile(t, `{"a": 1}`)

	src, err := NewFile(path, 0)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
