package util

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrDimensionOverflow is returned when width×height does not fit in 32 bits.
	ErrDimensionOverflow = errors.New("width and height are too large to be multiplied")

	// ErrEmptyDimensions is returned when width or height is zero.
	ErrEmptyDimensions = errors.New("width and height must be greater than 0")
)

var dimensionsPattern = regexp.MustCompile(`^(\d+)\s*[xX×]\s*(\d+)$`)

// ParseDimensions parses a "WIDTHxHEIGHT" string (e.g., "1920x1080").
//
// Both values must fit in 32 bits and their product must not overflow.
func ParseDimensions(s string) (width, height uint32, err error) {
	matches := dimensionsPattern.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, 0, fmt.Errorf("invalid format: '%s'. Use format like '1920x1080'", s)
	}

	width, err = ParseUint32(matches[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width: %w", err)
	}
	height, err = ParseUint32(matches[2])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height: %w", err)
	}

	if _, err := CheckArea(width, height); err != nil {
		return 0, 0, err
	}
	return width, height, nil
}

// CheckArea returns width×height as a buffer length.
//
// It fails before any allocation when either side is zero or when the product
// does not fit in 32 bits.
func CheckArea(width, height uint32) (int, error) {
	if width == 0 || height == 0 {
		return 0, fmt.Errorf("%w: got %dx%d", ErrEmptyDimensions, width, height)
	}
	area := uint64(width) * uint64(height)
	if area > math.MaxUint32 || area > uint64(math.MaxInt/3) {
		return 0, fmt.Errorf("%w: %dx%d", ErrDimensionOverflow, width, height)
	}
	return int(area), nil
}

// ParseUint32 parses a base-10 unsigned 32-bit integer, ignoring surrounding spaces.
func ParseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value '%s'", s)
	}
	return uint32(v), nil
}
