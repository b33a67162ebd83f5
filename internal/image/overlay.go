package image

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// StampText returns the label written by AddSeedStamp, e.g. "seed=42 640x480 colorful".
func StampText(seed, width, height uint32, mode Mode) string {
	return fmt.Sprintf("seed=%d %dx%d %s", seed, width, height, mode)
}

// AddSeedStamp draws text in the bottom-left corner of img.
//
// The label is rendered with basicfont, scaled up by an integer factor on
// large images, and drawn white over a black outline so it stays readable on
// noise. It is applied to the encoded image only; the raster is untouched.
// Text that does not fit is clipped.
func AddSeedStamp(img *image.RGBA, text string) error {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid dimensions: %dx%d", width, height)
	}
	if text == "" {
		return nil
	}

	// Render at base size (white on transparent)
	face := basicfont.Face7x13
	metrics := face.Metrics()
	baseWidth := font.MeasureString(face, text).Ceil()
	baseHeight := metrics.Height.Ceil()

	base := image.NewRGBA(image.Rect(0, 0, baseWidth, baseHeight))
	drawer := &font.Drawer{
		Dst:  base,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(0, metrics.Ascent.Ceil()),
	}
	drawer.DrawString(text)

	scale := max(1, width/320)
	label := image.NewRGBA(image.Rect(0, 0, baseWidth*scale, baseHeight*scale))
	draw.NearestNeighbor.Scale(label, label.Bounds(), base, base.Bounds(), draw.Over, nil)

	outline := scale
	padding := 2 * outline
	originX := bounds.Min.X + padding
	originY := bounds.Max.Y - padding - label.Bounds().Dy()

	plot := func(x, y int, c color.RGBA) {
		p := image.Pt(x, y)
		if p.In(bounds) {
			img.SetRGBA(x, y, c)
		}
	}

	lb := label.Bounds()
	for sy := lb.Min.Y; sy < lb.Max.Y; sy++ {
		for sx := lb.Min.X; sx < lb.Max.X; sx++ {
			if label.RGBAAt(sx, sy).A == 0 {
				continue
			}
			for dy := -outline; dy <= outline; dy++ {
				for dx := -outline; dx <= outline; dx++ {
					plot(originX+sx+dx, originY+sy+dy, color.RGBA{A: 0xff})
				}
			}
		}
	}

	for sy := lb.Min.Y; sy < lb.Max.Y; sy++ {
		for sx := lb.Min.X; sx < lb.Max.X; sx++ {
			if a := label.RGBAAt(sx, sy).A; a > 0 {
				plot(originX+sx, originY+sy, color.RGBA{R: a, G: a, B: a, A: 0xff})
			}
		}
	}

	return nil
}
