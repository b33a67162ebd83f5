package image

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for names other than grayscale and colorful.
var ErrUnknownMode = errors.New("invalid mode")

// Mode selects how a raw 32-bit draw becomes a pixel.
type Mode int

const (
	// Grayscale replicates the low byte of the draw across all three channels.
	Grayscale Mode = iota
	// Colorful uses bytes 0, 1 and 2 of the draw as R, G and B.
	Colorful
)

// AllModes returns the modes in the order they are offered to users.
func AllModes() []Mode {
	return []Mode{Grayscale, Colorful}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Grayscale:
		return "grayscale"
	case Colorful:
		return "colorful"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name. Matching ignores case and surrounding spaces.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "grayscale":
		return Grayscale, nil
	case "colorful":
		return Colorful, nil
	default:
		return 0, fmt.Errorf("%w %q, valid modes are: grayscale, colorful", ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != Grayscale && m != Colorful {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Pixel is one 8-bit RGB sample.
type Pixel struct {
	R, G, B uint8
}

// Encode converts a raw draw into a pixel.
//
// Grayscale keeps raw % 256, which is the same value as the uint8 truncation.
// Colorful isolates bytes 0..2 by shifting each to the top and logically back
// down; byte 3 is dropped.
func Encode(raw uint32, mode Mode) Pixel {
	if mode == Colorful {
		return Pixel{
			R: uint8((raw << 24) >> 24),
			G: uint8((raw << 16) >> 24),
			B: uint8((raw << 8) >> 24),
		}
	}
	v := uint8(raw)
	return Pixel{R: v, G: v, B: v}
}
