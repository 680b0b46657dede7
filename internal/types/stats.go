// Package types contains shared types used across multiple packages to avoid import cycles.
package types

import "time"

// AnalysisStats contains statistics about one analysis run.
type AnalysisStats struct {
	DocumentsAnalyzed int           // Documents successfully flattened and merged
	DocumentsFailed   int           // Documents skipped due to per-document errors
	Overflows         int           // Documents that hit the traversal budget
	DistinctFields    int           // Distinct (path, field) pairs in the final report
	Duration          time.Duration // Time taken for the full run
}
