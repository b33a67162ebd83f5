package image

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/mrsinham/noiseforge/internal/rng"
	"github.com/mrsinham/noiseforge/internal/util"
	"golang.org/x/sync/errgroup"
)

// FillOptions tunes how a raster is filled. The zero value is usable.
type FillOptions struct {
	// Workers bounds the number of rows filled concurrently (0 = CPU count).
	Workers int

	// Progress, if set, is called after each row completes with the number of
	// finished rows. It may be called from several goroutines at once.
	Progress func(done, total int)
}

// Fill allocates a width×height raster and fills it row by row.
//
// rows must hold exactly one generator per row, as produced by rng.Schedule.
// Each generator is moved into the task that fills its row, so no generator is
// ever shared and no locking is needed on the buffer: segments are disjoint.
func Fill(width, height uint32, mode Mode, rows []rng.XorShift32, opts FillOptions) (*Raster, error) {
	area, err := util.CheckArea(width, height)
	if err != nil {
		return nil, err
	}
	if mode != Grayscale && mode != Colorful {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(mode))
	}
	if len(rows) != int(height) {
		return nil, fmt.Errorf("got %d row generators for %d rows", len(rows), height)
	}

	pixels := make([]Pixel, area)
	w := int(width)
	total := len(rows)

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > total {
		workers = total
	}

	var done atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)
	for i, gen := range rows {
		segment := pixels[i*w : (i+1)*w : (i+1)*w]
		g.Go(func() error {
			FillRow(segment, gen, mode)
			if opts.Progress != nil {
				opts.Progress(int(done.Add(1)), total)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Raster{Width: width, Height: height, Pixels: pixels}, nil
}

// FillRow writes one encoded draw per slot of segment, left to right.
// gen is taken by value; the caller's copy is not advanced.
func FillRow(segment []Pixel, gen rng.XorShift32, mode Mode) {
	for i := range segment {
		segment[i] = Encode(gen.Next(), mode)
	}
}
