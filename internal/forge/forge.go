// Package forge runs the whole generation pipeline: seed scheduling, the
// parallel fill, conversion and the final write.
package forge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/noiseforge/internal/encode"
	"github.com/mrsinham/noiseforge/internal/image"
	"github.com/mrsinham/noiseforge/internal/rng"
	"github.com/mrsinham/noiseforge/internal/util"
)

// Options contains all parameters needed to generate one image.
type Options struct {
	Width  uint32
	Height uint32
	Seed   uint32
	Mode   image.Mode

	Output string        // Output path; its extension is replaced by the format's
	Format encode.Format // Empty = infer from Output, else PNG
	Stamp  bool          // Draw "seed=N WxH mode" on the encoded image

	Workers int // Number of parallel workers (0 = auto-detect based on CPU cores)

	// Output control
	Logger           *log.Logger              // Timing diagnostics (nil = discard)
	ProgressCallback func(current, total int) // Called once per filled row, possibly concurrently
	Clock            quartz.Clock             // nil = real clock
}

// Result describes a completed run.
type Result struct {
	Path   string
	Format encode.Format
	Bytes  int64

	Generation time.Duration
	Conversion time.Duration
	Write      time.Duration
	Total      time.Duration
}

// Validate checks options without doing any generation work.
func (o Options) Validate() error {
	if _, err := util.CheckArea(o.Width, o.Height); err != nil {
		return err
	}
	if o.Mode != image.Grayscale && o.Mode != image.Colorful {
		return fmt.Errorf("%w: %d", image.ErrUnknownMode, int(o.Mode))
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", o.Workers)
	}
	if _, _, err := encode.ResolvePath(o.Output, o.Format); err != nil {
		return err
	}
	return nil
}

// Run generates the image described by opts and writes it to disk.
//
// Options are validated before any generation starts; an oversized raster is
// rejected without allocating anything.
func Run(opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	path, format, err := encode.ResolvePath(opts.Output, opts.Format)
	if err != nil {
		return Result{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	res := Result{Path: path, Format: format}
	start := clock.Now()

	logger.Debug("generating",
		"width", opts.Width, "height", opts.Height, "seed", opts.Seed, "mode", opts.Mode, "workers", opts.Workers)

	phase := clock.Now()
	rows := rng.Schedule(opts.Seed, opts.Height)
	raster, err := image.Fill(opts.Width, opts.Height, opts.Mode, rows, image.FillOptions{
		Workers:  opts.Workers,
		Progress: opts.ProgressCallback,
	})
	if err != nil {
		return Result{}, fmt.Errorf("generating pixels: %w", err)
	}
	res.Generation = clock.Since(phase)
	logger.Info("generation finished", "elapsed", util.FormatDuration(res.Generation))

	meta := encode.Metadata{Seed: opts.Seed, Mode: opts.Mode, Stamp: opts.Stamp}

	phase = clock.Now()
	img, err := encode.Convert(raster, meta)
	if err != nil {
		return Result{}, fmt.Errorf("internal error: %w", err)
	}
	res.Conversion = clock.Since(phase)
	logger.Info("conversion finished", "elapsed", util.FormatDuration(res.Conversion))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	phase = clock.Now()
	n, err := encode.WriteFile(path, format, img, meta)
	if err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", path, err)
	}
	res.Bytes = n
	res.Write = clock.Since(phase)
	logger.Info("written", "path", path, "format", format, "size", humanize.Bytes(uint64(n)),
		"elapsed", util.FormatDuration(res.Write))

	res.Total = clock.Since(start)
	logger.Info("total", "elapsed", util.FormatDuration(res.Total))

	return res, nil
}
