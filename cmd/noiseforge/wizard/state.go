// Package wizard provides an interactive TUI for configuring noise generation.
package wizard

import "github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/types"

// WizardState holds the complete state for the wizard interface.
type WizardState struct {
	Settings types.Settings
}

// NewState returns a state initialised with the default settings.
func NewState() *WizardState {
	return &WizardState{Settings: types.DefaultSettings()}
}
