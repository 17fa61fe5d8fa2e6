// Package batch drives the renderer across every dataset row and assembles
// the results into a downloadable archive.
package batch

import (
	"context"
	"fmt"

	"github.com/lvillar/certgen"
)

// RenderFunc renders one record in the requested format. batch.Run adapts
// render.Renderer to this shape; tests substitute fakes.
type RenderFunc func(rec certgen.Record, format certgen.Format) ([]byte, error)

// Progress observes batch completion after each row, with completed in
// 0..total. It is called from the batch goroutine.
type Progress func(completed, total int)

// Run renders every dataset row in order and collects the outputs into
// arch, returning the combined archive blob.
//
// Rows render strictly sequentially; ctx is checked before each row, which
// is the cancellation point for an in-flight batch. The policy on row
// failure is fail-fast: the first failing row aborts the batch with a
// *certgen.RowError naming its 1-based ordinal, and no archive blob is
// produced.
func Run(ctx context.Context, ds *certgen.Dataset, render RenderFunc, format certgen.Format, arch Archive, progress Progress) ([]byte, error) {
	total := ds.Len()
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("batch: canceled before row %d: %w", i+1, err)
		}
		data, err := render(ds.Record(i), format)
		if err != nil {
			return nil, &certgen.RowError{Row: i + 1, Err: err}
		}
		if err := arch.Add(certgen.OutputName(i+1, format), data); err != nil {
			return nil, fmt.Errorf("%w: %v", certgen.ErrArchive, err)
		}
		if progress != nil {
			progress(i+1, total)
		}
	}
	blob, err := arch.Blob()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", certgen.ErrArchive, err)
	}
	return blob, nil
}
