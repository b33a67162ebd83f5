package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/components"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/types"
	"github.com/mrsinham/noiseforge/internal/encode"
)

// SummaryAction represents the action selected on the summary screen
type SummaryAction int

const (
	// SummaryActionBack returns to the settings screen
	SummaryActionBack SummaryAction = iota
	// SummaryActionGenerate starts generation
	SummaryActionGenerate
	// SummaryActionSaveConfig saves the configuration to a YAML or HCL file
	SummaryActionSaveConfig
	// SummaryActionCancel exits the wizard
	SummaryActionCancel
)

const (
	actionBack       = "back"
	actionGenerate   = "generate"
	actionSaveConfig = "save_config"
	actionCancel     = "cancel"
)

var summaryPanelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(1, 2)

// SummaryScreen displays the settings before generation
type SummaryScreen struct {
	form      *huh.Form
	settings  *types.Settings
	notice    string
	action    string
	done      bool
	cancelled bool
}

// NewSummaryScreen creates a new summary screen. notice, when not empty, is
// shown above the action list (e.g. after saving a config).
func NewSummaryScreen(settings *types.Settings, notice string) *SummaryScreen {
	s := &SummaryScreen{
		settings: settings,
		notice:   notice,
		action:   actionGenerate,
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("action").
				Title("Select an action").
				Options(
					huh.NewOption("Generate image", actionGenerate),
					huh.NewOption("Save configuration (YAML or HCL)", actionSaveConfig),
					huh.NewOption("Back to edit", actionBack),
					huh.NewOption("Cancel and exit", actionCancel),
				).
				Value(&s.action),
		),
	).WithShowHelp(false)

	return s
}

// Init implements tea.Model
func (s *SummaryScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SummaryScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			s.cancelled = true
			return s, tea.Quit
		case "esc":
			s.action = actionBack
			s.done = true
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}
	if s.form.State == huh.StateCompleted {
		s.done = true
	}

	return s, cmd
}

// View implements tea.Model
func (s *SummaryScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	parts := []string{
		components.TitleStyle.Render("SUMMARY - Review Settings"),
		summaryPanelStyle.Render(s.buildParameterSummary()),
		"",
		components.SubtitleStyle.Render("Equivalent CLI command"),
		components.CommandStyle.Render(CLICommand(s.settings)),
		"",
	}
	if s.notice != "" {
		parts = append(parts, components.ValueStyle.Render(s.notice), "")
	}
	parts = append(parts,
		s.form.View(),
		"",
		components.HintStyle.Render("Enter: Select action | Esc: Back"),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (s *SummaryScreen) buildParameterSummary() string {
	set := s.settings

	format := set.Format
	if format == "" {
		if f, ok := encode.FormatFromPath(set.Output); ok {
			format = string(f) + " (from extension)"
		} else {
			format = string(encode.PNG) + " (default)"
		}
	}
	workers := "auto"
	if set.Workers > 0 {
		workers = fmt.Sprintf("%d", set.Workers)
	}
	stamp := "no"
	if set.Stamp {
		stamp = "yes"
	}

	params := []struct {
		label string
		value string
	}{
		{"Mode", set.Mode},
		{"Size", fmt.Sprintf("%dx%d", set.Width, set.Height)},
		{"Pixels", humanize.Comma(int64(set.Width) * int64(set.Height))},
		{"Seed", fmt.Sprintf("%d", set.Seed)},
		{"Output", set.Output},
		{"Format", format},
		{"Workers", workers},
		{"Stamp", stamp},
	}

	lines := make([]string, 0, len(params))
	for _, p := range params {
		lines = append(lines, components.KeyValue(p.label, p.value, 10))
	}
	return strings.Join(lines, "\n")
}

// CLICommand returns the noiseforge invocation equivalent to settings.
func CLICommand(set *types.Settings) string {
	parts := []string{
		"noiseforge generate",
		"--mode " + set.Mode,
		fmt.Sprintf("--size %dx%d", set.Width, set.Height),
		fmt.Sprintf("--seed %d", set.Seed),
		"--output " + quoteIfNeeded(set.Output),
	}
	if set.Format != "" {
		parts = append(parts, "--format "+set.Format)
	}
	if set.Workers > 0 {
		parts = append(parts, fmt.Sprintf("--workers %d", set.Workers))
	}
	if set.Stamp {
		parts = append(parts, "--stamp")
	}
	return strings.Join(parts, " ")
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " \t'\"") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// Done returns true if the form was completed
func (s *SummaryScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *SummaryScreen) Cancelled() bool {
	return s.cancelled
}

// Action returns the selected action
func (s *SummaryScreen) Action() SummaryAction {
	switch s.action {
	case actionBack:
		return SummaryActionBack
	case actionSaveConfig:
		return SummaryActionSaveConfig
	case actionCancel:
		return SummaryActionCancel
	default:
		return SummaryActionGenerate
	}
}
