package encode

import (
	"bufio"
	"fmt"
	stdimage "image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/mrsinham/noiseforge/internal/image"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Metadata describes how a raster was produced. It is embedded where the
// container allows it and drives the optional seed stamp.
type Metadata struct {
	Seed  uint32
	Mode  image.Mode
	Stamp bool
}

// Convert turns a raster into the opaque RGBA image handed to the encoders,
// applying the seed stamp when requested. The raster itself is not modified.
func Convert(r *image.Raster, meta Metadata) (*stdimage.RGBA, error) {
	img, err := r.RGBA()
	if err != nil {
		return nil, err
	}
	if meta.Stamp {
		if err := image.AddSeedStamp(img, image.StampText(meta.Seed, r.Width, r.Height, meta.Mode)); err != nil {
			return nil, fmt.Errorf("stamping image: %w", err)
		}
	}
	return img, nil
}

// Encode converts r and serializes it as format into w.
func Encode(w io.Writer, format Format, r *image.Raster, meta Metadata) error {
	img, err := Convert(r, meta)
	if err != nil {
		return err
	}
	return EncodeImage(w, format, img, meta)
}

// EncodeImage serializes an already converted image.
func EncodeImage(w io.Writer, format Format, img *stdimage.RGBA, meta Metadata) error {
	switch format {
	case PNG:
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		return enc.Encode(w, img)
	case BMP:
		return bmp.Encode(w, img)
	case TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case DICOM:
		return writeDICOM(w, img, meta)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

// WriteFile encodes img into path and returns the number of bytes written.
//
// The image is encoded into a temporary file next to path, which then replaces
// the destination. On failure the destination is left as it was and no partial
// file remains.
func WriteFile(path string, format Format, img *stdimage.RGBA, meta Metadata) (n int64, err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return 0, err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	cw := &countingWriter{w: f}
	bw := bufio.NewWriter(cw)
	if err := EncodeImage(bw, format, img, meta); err != nil {
		return 0, fmt.Errorf("encoding %s: %w", format, err)
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	if err := f.Chmod(0o644); err != nil {
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, path); err != nil {
		return 0, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
