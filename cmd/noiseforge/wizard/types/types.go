// Package types holds the settings edited by the wizard screens.
package types

// Settings holds everything needed for one generation run.
type Settings struct {
	Mode    string // "grayscale" or "colorful"
	Width   uint32
	Height  uint32
	Seed    uint32
	Output  string
	Format  string // Empty means inferred from Output
	Workers int    // 0 = one per CPU core
	Stamp   bool
}

// DefaultSettings returns the settings the wizard starts from.
func DefaultSettings() Settings {
	return Settings{
		Mode:   "grayscale",
		Width:  640,
		Height: 480,
		Output: "noise.png",
	}
}
