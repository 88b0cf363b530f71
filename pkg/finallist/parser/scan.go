package parser

import (
	"context"
	"errors"

	"github.com/ukaji3/finallist-go/pkg/finallist/models"
	"golang.org/x/sync/errgroup"
)

// Classify turns an ExtractOrder result into a typed scan outcome.
func Classify(path string, rec *models.OrderRecord, err error) models.ScanResult {
	res := models.ScanResult{Path: path, Record: rec, Err: err}
	switch {
	case err == nil:
		res.Outcome = models.ScanOK
	case errors.Is(err, ErrNoDataTable):
		res.Outcome = models.ScanNoTable
	default:
		res.Outcome = models.ScanUnreadable
	}
	return res
}

// ScanFiles extracts every path concurrently and returns one result per
// path, in input order. Extraction of distinct files shares no state, so
// fan-out is safe; per-file failures are captured in the result rather than
// failing the batch. limit bounds the number of concurrent scans (0 or
// negative means one per file).
func ScanFiles(ctx context.Context, paths []string, params ScanParams, limit int) []models.ScanResult {
	results := make([]models.ScanResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Classify(path, nil, err)
				return nil
			}
			rec, err := ExtractOrder(path, params)
			results[i] = Classify(path, rec, err)
			return nil
		})
	}
	g.Wait()

	return results
}
