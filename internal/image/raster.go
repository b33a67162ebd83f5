package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrShapeMismatch means a raster's pixel data does not match its dimensions.
// Fill never produces such a raster, so seeing it is an internal error.
var ErrShapeMismatch = errors.New("error while converting pixels to image buffer")

// Raster is a row-major RGB pixel buffer: row 0 first, left to right.
type Raster struct {
	Width  uint32
	Height uint32
	Pixels []Pixel
}

// Row returns the pixels of row y.
func (r *Raster) Row(y int) []Pixel {
	w := int(r.Width)
	return r.Pixels[y*w : (y+1)*w]
}

// checkShape reports ErrShapeMismatch unless the raster holds exactly
// width×height pixels, i.e. width×height×3 channel bytes.
func (r *Raster) checkShape() error {
	if want := int(r.Width) * int(r.Height) * 3; len(r.Pixels)*3 != want {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrShapeMismatch, len(r.Pixels)*3, r.Width, r.Height)
	}
	return nil
}

// Bytes flattens the raster into R, G, B bytes, and checks that the result is
// exactly width×height×3 long.
func (r *Raster) Bytes() ([]byte, error) {
	if err := r.checkShape(); err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(r.Pixels)*3)
	for _, p := range r.Pixels {
		out = append(out, p.R, p.G, p.B)
	}
	return out, nil
}

// RGBA converts the raster to an opaque *image.RGBA, copying pixels directly
// into the image buffer.
func (r *Raster) RGBA() (*image.RGBA, error) {
	if err := r.checkShape(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, int(r.Width), int(r.Height)))
	for i, p := range r.Pixels {
		j := i * 4
		img.Pix[j] = p.R
		img.Pix[j+1] = p.G
		img.Pix[j+2] = p.B
		img.Pix[j+3] = 0xff
	}
	return img, nil
}

// At returns the color of the pixel at (x, y).
func (r *Raster) At(x, y int) color.RGBA {
	p := r.Pixels[y*int(r.Width)+x]
	return color.RGBA{R: p.R, G: p.G, B: p.B, A: 0xff}
}
