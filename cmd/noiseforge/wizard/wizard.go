package wizard

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/components"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/screens"
	"github.com/mrsinham/noiseforge/internal/forge"
)

// Phase represents the current phase/screen of the wizard.
type Phase int

const (
	PhaseSettings Phase = iota
	PhaseSummary
	PhaseSaveConfig
	PhaseProgress
	PhaseComplete
	PhaseError
)

// progressSteps is roughly how many progress updates a run sends to the UI.
const progressSteps = 100

// Wizard is the main orchestrator for the wizard interface.
type Wizard struct {
	state *WizardState

	phase Phase

	settingsScreen   *screens.SettingsScreen
	summaryScreen    *screens.SummaryScreen
	progressScreen   *screens.ProgressScreen
	completionScreen *screens.CompletionScreen
	errorScreen      *screens.ErrorScreen

	// Save config form
	saveConfigForm *huh.Form
	configPath     string

	// send delivers messages from the generation goroutine; nil in tests.
	send func(tea.Msg)

	width  int
	height int

	cancelled bool
	finished  bool
	err       error
}

// NewWizard creates a new wizard with default or loaded state.
func NewWizard(state *WizardState) *Wizard {
	if state == nil {
		state = NewState()
	}

	w := &Wizard{
		state: state,
		phase: PhaseSettings,
	}
	w.settingsScreen = screens.NewSettingsScreen(&w.state.Settings)

	return w
}

// Init implements tea.Model.
func (w *Wizard) Init() tea.Cmd {
	return w.settingsScreen.Init()
}

// Update implements tea.Model.
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = wsm.Width
		w.height = wsm.Height
	}

	switch w.phase {
	case PhaseSettings:
		return w.updateSettings(msg)
	case PhaseSummary:
		return w.updateSummary(msg)
	case PhaseSaveConfig:
		return w.updateSaveConfig(msg)
	case PhaseProgress:
		return w.updateProgress(msg)
	case PhaseComplete:
		return w.updateComplete(msg)
	case PhaseError:
		return w.updateError(msg)
	}

	return w, nil
}

// View implements tea.Model.
func (w *Wizard) View() string {
	switch w.phase {
	case PhaseSettings:
		return w.settingsScreen.View()
	case PhaseSummary:
		return w.summaryScreen.View()
	case PhaseSaveConfig:
		return w.viewSaveConfig()
	case PhaseProgress:
		return w.progressScreen.View()
	case PhaseComplete:
		return w.completionScreen.View()
	case PhaseError:
		return w.errorScreen.View()
	}

	return ""
}

// Phase returns the current phase.
func (w *Wizard) Phase() Phase {
	return w.phase
}

func (w *Wizard) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.settingsScreen.Update(msg)
	if ss, ok := model.(*screens.SettingsScreen); ok {
		w.settingsScreen = ss
	}

	if w.settingsScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}
	if w.settingsScreen.Done() {
		return w.transitionToSummary("")
	}

	return w, cmd
}

func (w *Wizard) transitionToSettings() (tea.Model, tea.Cmd) {
	w.phase = PhaseSettings
	w.settingsScreen = screens.NewSettingsScreen(&w.state.Settings)
	return w, w.settingsScreen.Init()
}

func (w *Wizard) transitionToSummary(notice string) (tea.Model, tea.Cmd) {
	w.phase = PhaseSummary
	w.summaryScreen = screens.NewSummaryScreen(&w.state.Settings, notice)
	return w, w.summaryScreen.Init()
}

func (w *Wizard) updateSummary(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.summaryScreen.Update(msg)
	if ss, ok := model.(*screens.SummaryScreen); ok {
		w.summaryScreen = ss
	}

	if w.summaryScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	if w.summaryScreen.Done() {
		switch w.summaryScreen.Action() {
		case screens.SummaryActionBack:
			return w.transitionToSettings()
		case screens.SummaryActionGenerate:
			return w.startGeneration()
		case screens.SummaryActionSaveConfig:
			return w.transitionToSaveConfig()
		case screens.SummaryActionCancel:
			w.cancelled = true
			return w, tea.Quit
		}
	}

	return w, cmd
}

func (w *Wizard) transitionToSaveConfig() (tea.Model, tea.Cmd) {
	w.phase = PhaseSaveConfig
	if w.configPath == "" {
		w.configPath = "noiseforge.yaml"
	}

	w.saveConfigForm = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("config_path").
				Title("Save configuration to").
				Description("A .yaml, .yml or .hcl file").
				Value(&w.configPath).
				Validate(func(s string) error {
					_, err := kindOf(s)
					return err
				}),
		),
	).WithShowHelp(false)

	return w, w.saveConfigForm.Init()
}

func (w *Wizard) updateSaveConfig(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return w.transitionToSummary("")
		case "ctrl+c":
			w.cancelled = true
			return w, tea.Quit
		}
	}

	form, cmd := w.saveConfigForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.saveConfigForm = f
	}

	if w.saveConfigForm.State == huh.StateCompleted {
		if err := SaveToFile(w.state, w.configPath); err != nil {
			w.err = err
			w.phase = PhaseError
			w.errorScreen = screens.NewErrorScreen(err)
			return w, nil
		}
		return w.transitionToSummary("Configuration saved to " + w.configPath)
	}

	return w, cmd
}

func (w *Wizard) viewSaveConfig() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render("Save Configuration"),
		"",
		w.saveConfigForm.View(),
		"",
		components.HintStyle.Render("Enter: Save | Esc: Back"),
	)
}

// startGeneration switches to the progress screen and returns the command
// that runs the pipeline.
func (w *Wizard) startGeneration() (tea.Model, tea.Cmd) {
	opts, err := ToForgeOptions(w.state)
	if err != nil {
		w.phase = PhaseError
		w.err = err
		w.errorScreen = screens.NewErrorScreen(err)
		return w, nil
	}

	total := int(opts.Height)
	w.phase = PhaseProgress
	w.progressScreen = screens.NewProgressScreen(total)

	if send := w.send; send != nil {
		step := max(1, total/progressSteps)
		opts.ProgressCallback = func(current, total int) {
			if current%step == 0 || current == total {
				send(screens.ProgressMsg{Current: current, Total: total})
			}
		}
	}

	generate := func() tea.Msg {
		res, err := forge.Run(opts)
		if err != nil {
			return screens.ErrorMsg{Error: err}
		}
		return screens.CompletionMsg{Result: res}
	}

	return w, tea.Batch(w.progressScreen.Init(), generate)
}

func (w *Wizard) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case screens.CompletionMsg:
		w.phase = PhaseComplete
		w.completionScreen = screens.NewCompletionScreen(msg)
		return w, nil

	case screens.ErrorMsg:
		w.phase = PhaseError
		w.err = msg.Error
		w.errorScreen = screens.NewErrorScreen(msg.Error)
		return w, nil
	}

	model, cmd := w.progressScreen.Update(msg)
	if ps, ok := model.(*screens.ProgressScreen); ok {
		w.progressScreen = ps
	}

	if w.progressScreen.Cancelled() {
		w.cancelled = true
		return w, tea.Quit
	}

	return w, cmd
}

func (w *Wizard) updateComplete(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.completionScreen.Update(msg)
	if cs, ok := model.(*screens.CompletionScreen); ok {
		w.completionScreen = cs
	}

	if w.completionScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

func (w *Wizard) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := w.errorScreen.Update(msg)
	if es, ok := model.(*screens.ErrorScreen); ok {
		w.errorScreen = es
	}

	if w.errorScreen.Done() {
		w.finished = true
		return w, tea.Quit
	}

	return w, cmd
}

func loadState(fromConfig string) (*WizardState, error) {
	if fromConfig == "" {
		return nil, nil
	}
	absPath, err := filepath.Abs(fromConfig)
	if err != nil {
		return nil, fmt.Errorf("resolving config path: %w", err)
	}
	state, err := LoadFromFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return state, nil
}

// Run starts the interactive wizard. If fromConfig is provided, the settings
// are preloaded from that YAML or HCL file.
func Run(fromConfig string) error {
	state, err := loadState(fromConfig)
	if err != nil {
		return err
	}

	wizard := NewWizard(state)
	p := tea.NewProgram(wizard, tea.WithAltScreen())
	wizard.send = p.Send

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}

	if w, ok := finalModel.(*Wizard); ok {
		if w.cancelled {
			return nil
		}
		if w.err != nil {
			return w.err
		}
	}

	return nil
}
