package forge

import (
	"bytes"
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/mrsinham/noiseforge/internal/encode"
	"github.com/mrsinham/noiseforge/internal/image"
	"github.com/mrsinham/noiseforge/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_GrayscalePNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "noise.jpg")

	res, err := Run(Options{
		Width:  4,
		Height: 2,
		Seed:   42,
		Mode:   image.Grayscale,
		Output: out,
		Clock:  quartz.NewMock(t),
	})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(out), "noise.png"), res.Path)
	assert.Equal(t, encode.PNG, res.Format)

	info, err := os.Stat(res.Path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), res.Bytes)

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, stdimage.Rect(0, 0, 4, 2), img.Bounds())

	want := []uint8{207, 140, 161, 47, 126, 133, 60, 11}
	for i, v := range want {
		r, g, b, a := img.At(i%4, i/4).RGBA()
		assert.Equal(t, uint32(v), r>>8, "pixel %d red", i)
		assert.Equal(t, r, g, "pixel %d green", i)
		assert.Equal(t, r, b, "pixel %d blue", i)
		assert.Equal(t, uint32(0xFFFF), a, "pixel %d alpha", i)
	}
}

func TestRun_ExplicitFormat(t *testing.T) {
	dir := t.TempDir()
	for _, f := range encode.AllFormats() {
		t.Run(string(f), func(t *testing.T) {
			res, err := Run(Options{
				Width:  16,
				Height: 8,
				Seed:   7,
				Mode:   image.Colorful,
				Output: filepath.Join(dir, "out"),
				Format: f,
			})
			require.NoError(t, err)
			assert.Equal(t, f, res.Format)
			assert.Equal(t, filepath.Join(dir, "out"+f.Extension()), res.Path)
			assert.Positive(t, res.Bytes)
		})
	}
}

func TestRun_CreatesOutputDirectory(t *testing.T) {
	out := filepath.Join(t.TempDir(), "a", "b", "noise.png")

	res, err := Run(Options{Width: 2, Height: 2, Mode: image.Grayscale, Output: out})
	require.NoError(t, err)
	assert.FileExists(t, res.Path)
}

func TestRun_Deterministic(t *testing.T) {
	dir := t.TempDir()
	opts := Options{Width: 33, Height: 17, Seed: 1234, Mode: image.Colorful}

	opts.Output = filepath.Join(dir, "one.png")
	opts.Workers = 1
	first, err := Run(opts)
	require.NoError(t, err)

	opts.Output = filepath.Join(dir, "two.png")
	opts.Workers = 8
	second, err := Run(opts)
	require.NoError(t, err)

	a, err := os.ReadFile(first.Path)
	require.NoError(t, err)
	b, err := os.ReadFile(second.Path)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_ProgressReportsEveryRow(t *testing.T) {
	var calls atomic.Int32
	var last atomic.Int32

	_, err := Run(Options{
		Width:  8,
		Height: 24,
		Mode:   image.Grayscale,
		Output: filepath.Join(t.TempDir(), "p.png"),
		ProgressCallback: func(current, total int) {
			calls.Add(1)
			assert.Equal(t, 24, total)
			for {
				prev := last.Load()
				if int32(current) <= prev || last.CompareAndSwap(prev, int32(current)) {
					break
				}
			}
		},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 24, calls.Load())
	assert.EqualValues(t, 24, last.Load())
}

func TestRun_LogsTimings(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.InfoLevel)

	res, err := Run(Options{
		Width:  4,
		Height: 4,
		Mode:   image.Grayscale,
		Output: filepath.Join(t.TempDir(), "t.png"),
		Logger: logger,
		Clock:  quartz.NewMock(t),
	})
	require.NoError(t, err)

	// The mock clock never advances on its own.
	assert.Zero(t, res.Generation)
	assert.Zero(t, res.Conversion)
	assert.Zero(t, res.Write)
	assert.Zero(t, res.Total)

	out := buf.String()
	for _, msg := range []string{"generation finished", "conversion finished", "written", "total"} {
		assert.Contains(t, out, msg)
	}
	assert.Contains(t, out, "no time (0)")
	assert.NotContains(t, out, "generating", "debug lines are filtered at info level")
}

func TestRun_ValidationFailsBeforeWriting(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		opts Options
		err  error
	}{
		{
			name: "overflow",
			opts: Options{Width: 1 << 16, Height: 1 << 16, Mode: image.Grayscale},
			err:  util.ErrDimensionOverflow,
		},
		{
			name: "zero width",
			opts: Options{Width: 0, Height: 10, Mode: image.Grayscale},
			err:  util.ErrEmptyDimensions,
		},
		{
			name: "unknown mode",
			opts: Options{Width: 2, Height: 2, Mode: image.Mode(9)},
			err:  image.ErrUnknownMode,
		},
		{
			name: "unknown format",
			opts: Options{Width: 2, Height: 2, Mode: image.Grayscale, Format: encode.Format("gif")},
			err:  encode.ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Output = filepath.Join(dir, tt.name+".png")
			_, err := Run(tt.opts)
			require.ErrorIs(t, err, tt.err)
			assert.NoFileExists(t, tt.opts.Output)
		})
	}
}

func TestValidate(t *testing.T) {
	ok := Options{Width: 10, Height: 10, Mode: image.Colorful, Output: "x.png"}
	require.NoError(t, ok.Validate())

	neg := ok
	neg.Workers = -1
	assert.Error(t, neg.Validate())

	noPath := ok
	noPath.Output = ""
	assert.Error(t, noPath.Validate())
}
