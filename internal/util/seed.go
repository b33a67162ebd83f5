package util

import "fmt"

// ParseSeed parses a seed. Any unsigned 32-bit value, including 0, is valid.
func ParseSeed(s string) (uint32, error) {
	seed, err := ParseUint32(s)
	if err != nil {
		return 0, fmt.Errorf("invalid seed: %w", err)
	}
	return seed, nil
}
