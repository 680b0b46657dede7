// Package analyzer orchestrates a schema analysis run: it pulls sampled
// documents from a source, flattens them on a bounded worker pool, and merges
// the per-document records into one aggregate report.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dbsmedya/goschema/internal/aggregate"
	"github.com/dbsmedya/goschema/internal/config"
	"github.com/dbsmedya/goschema/internal/document"
	"github.com/dbsmedya/goschema/internal/flatten"
	"github.com/dbsmedya/goschema/internal/logger"
	"github.com/dbsmedya/goschema/internal/types"
)

// Source yields sampled documents. Next returns io.EOF when the sample is
// exhausted. Sources are not required to be safe for concurrent use; the
// analyzer reads them from a single goroutine.
type Source interface {
	Next(ctx context.Context) (*document.Document, error)
	Close() error
}

// Result contains the schema report and statistics of one analysis run.
// Errors holds the isolated per-document failures; they never abort the run.
type Result struct {
	Entries []aggregate.ReportEntry
	Stats   types.AnalysisStats
	Errors  []error
}

// Analyzer runs schema analysis with the given settings.
type Analyzer struct {
	analysis config.AnalysisConfig
	logger   *logger.Logger
}

// New creates an Analyzer. Unset analysis values fall back to defaults
// (budget 500, 4 workers).
func New(analysis config.AnalysisConfig, log *logger.Logger) *Analyzer {
	if analysis.MaxSubdocuments <= 0 {
		analysis.MaxSubdocuments = flatten.DefaultMaxSubdocuments
	}
	if analysis.Workers <= 0 {
		analysis.Workers = 4
	}
	if log == nil {
		log = logger.NewDefault()
	}

	return &Analyzer{
		analysis: analysis,
		logger:   log,
	}
}

// docResult is one document's flattening output, sent from a worker to the
// single-writer merge goroutine.
type docResult struct {
	records    []flatten.FieldRecord
	overflowed bool
}

// Run analyzes every document the source yields and returns the merged report.
//
// Flattening runs on a worker pool; merging happens on a single goroutine, so
// the accumulator never needs locking. The merge is commutative, so worker
// completion order does not affect the result. Per-document failures are
// recorded in Result.Errors and the run continues; cancellation stops the run
// at a document boundary and returns the partial result with ctx.Err().
func (a *Analyzer) Run(ctx context.Context, src Source) (*Result, error) {
	startTime := time.Now()

	result := &Result{}
	acc := aggregate.NewAccumulator()

	jobs := make(chan *document.Document)
	results := make(chan docResult)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < a.analysis.Workers; i++ {
		g.Go(func() error {
			for doc := range jobs {
				records, overflowed := flatten.Flatten(doc, a.analysis.MaxSubdocuments)
				select {
				case results <- docResult{records: records, overflowed: overflowed}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	// Single-writer merge: the only point of shared-state mutation.
	mergeDone := make(chan struct{})
	go func() {
		defer close(mergeDone)
		for r := range results {
			acc.Add(r.records)
			result.Stats.DocumentsAnalyzed++
			if r.overflowed {
				result.Stats.Overflows++
			}
		}
	}()

	a.logger.Infow("Starting schema analysis",
		"max_subdocuments", a.analysis.MaxSubdocuments,
		"workers", a.analysis.Workers,
	)

	// Read the source on this goroutine and fan documents out to the pool.
	var runErr error
	for {
		doc, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				runErr = err
				break
			}
			// Per-document failure: record it and keep going.
			a.logger.Warnf("Skipping document: %v", err)
			result.Stats.DocumentsFailed++
			result.Errors = append(result.Errors, err)
			continue
		}

		select {
		case jobs <- doc:
		case <-gctx.Done():
			runErr = gctx.Err()
		}
		if runErr != nil {
			break
		}
	}

	close(jobs)
	if err := g.Wait(); err != nil && runErr == nil {
		runErr = err
	}
	close(results)
	<-mergeDone

	result.Entries = acc.Report()
	result.Stats.DistinctFields = len(result.Entries)
	result.Stats.Duration = time.Since(startTime)

	if result.Stats.Overflows > 0 {
		a.logger.Warnf("%d document(s) exceeded the traversal budget of %d; "+
			"partial schemas were merged, consider raising max_subdocuments",
			result.Stats.Overflows, a.analysis.MaxSubdocuments)
	}

	a.logger.Infow("Schema analysis complete",
		"documents", result.Stats.DocumentsAnalyzed,
		"failed", result.Stats.DocumentsFailed,
		"overflows", result.Stats.Overflows,
		"distinct_fields", result.Stats.DistinctFields,
		"duration", result.Stats.Duration.String(),
	)

	if runErr != nil {
		return result, fmt.Errorf("analysis interrupted: %w", runErr)
	}
	return result, nil
}
