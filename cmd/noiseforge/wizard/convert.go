package wizard

import (
	"errors"
	"strings"

	"github.com/mrsinham/noiseforge/internal/encode"
	"github.com/mrsinham/noiseforge/internal/forge"
	"github.com/mrsinham/noiseforge/internal/image"
	"github.com/mrsinham/noiseforge/internal/util"
)

// ToForgeOptions converts WizardState to forge.Options for generation.
// Logger, clock and progress reporting are left for the caller to set.
func ToForgeOptions(s *WizardState) (forge.Options, error) {
	set := s.Settings

	mode, err := image.ParseMode(set.Mode)
	if err != nil {
		return forge.Options{}, errors.New("invalid mode")
	}
	if _, err := util.CheckArea(set.Width, set.Height); err != nil {
		return forge.Options{}, err
	}
	if strings.TrimSpace(set.Output) == "" {
		return forge.Options{}, errors.New("invalid path")
	}

	var format encode.Format
	if set.Format != "" {
		format, err = encode.ParseFormat(set.Format)
		if err != nil {
			return forge.Options{}, err
		}
	}

	return forge.Options{
		Width:   set.Width,
		Height:  set.Height,
		Seed:    set.Seed,
		Mode:    mode,
		Output:  set.Output,
		Format:  format,
		Stamp:   set.Stamp,
		Workers: set.Workers,
	}, nil
}

// FromForgeOptions creates a WizardState from forge.Options.
// Used by --save-config to export CLI options.
func FromForgeOptions(opts forge.Options) *WizardState {
	state := NewState()
	state.Settings.Mode = opts.Mode.String()
	state.Settings.Width = opts.Width
	state.Settings.Height = opts.Height
	state.Settings.Seed = opts.Seed
	if opts.Output != "" {
		state.Settings.Output = opts.Output
	}
	state.Settings.Format = string(opts.Format)
	state.Settings.Workers = opts.Workers
	state.Settings.Stamp = opts.Stamp
	return state
}
