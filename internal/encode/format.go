// Package encode serializes a filled raster into a lossless image container
// and writes it to disk.
package encode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for container names that are not supported.
var ErrUnknownFormat = errors.New("unknown output format")

// Format is a lossless raster container.
type Format string

const (
	PNG   Format = "png"
	BMP   Format = "bmp"
	TIFF  Format = "tiff"
	DICOM Format = "dcm"
)

// AllFormats returns the supported formats, default first.
func AllFormats() []Format {
	return []Format{PNG, BMP, TIFF, DICOM}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormat parses a format name. "tif" and "dicom" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "png":
		return PNG, nil
	case "bmp":
		return BMP, nil
	case "tiff", "tif":
		return TIFF, nil
	case "dcm", "dicom":
		return DICOM, nil
	default:
		return "", fmt.Errorf("%w %q, valid formats are: png, bmp, tiff, dcm", ErrUnknownFormat, s)
	}
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (Format, bool) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", false
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", false
	}
	return f, true
}

// ResolvePath normalizes an output path.
//
// When format is empty it is inferred from the extension, falling back to
// PNG. The extension is then replaced by the format's own, and the path is made
// absolute.
func ResolvePath(path string, format Format) (string, Format, error) {
	path = strings.TrimSpace(path)
	if path == "" || strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return "", "", fmt.Errorf("invalid path %q", path)
	}

	if format == "" {
		if inferred, ok := FormatFromPath(path); ok {
			format = inferred
		} else {
			format = PNG
		}
	} else {
		parsed, err := ParseFormat(string(format))
		if err != nil {
			return "", "", err
		}
		format = parsed
	}

	resolved := strings.TrimSuffix(path, filepath.Ext(path)) + format.Extension()
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", "", fmt.Errorf("resolving output path: %w", err)
	}
	return abs, format, nil
}
