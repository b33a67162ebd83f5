package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/components"
	"github.com/mrsinham/noiseforge/internal/forge"
	"github.com/mrsinham/noiseforge/internal/util"
)

// ProgressMsg is sent to update the progress screen during generation
type ProgressMsg struct {
	Current int // Rows filled so far
	Total   int // Image height
}

// CompletionMsg is sent when generation completes successfully
type CompletionMsg struct {
	Result forge.Result
}

// ErrorMsg is sent when an error occurs during generation
type ErrorMsg struct {
	Error error
}

// ProgressScreen displays generation progress
type ProgressScreen struct {
	bar       progress.Model
	spinner   spinner.Model
	current   int
	total     int
	startTime time.Time
	cancelled bool
	width     int
}

// NewProgressScreen creates a progress screen for an image of total rows.
func NewProgressScreen(total int) *ProgressScreen {
	return &ProgressScreen{
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		total:     total,
		startTime: time.Now(),
	}
}

// Init implements tea.Model
func (s *ProgressScreen) Init() tea.Cmd {
	return s.spinner.Tick
}

// Update implements tea.Model
func (s *ProgressScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.bar.Width = min(max(msg.Width/2, 20), 60)
	case ProgressMsg:
		s.SetProgress(msg.Current, msg.Total)
	case spinner.TickMsg:
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd
	}

	return s, nil
}

// Percent returns the completed fraction in [0, 1].
func (s *ProgressScreen) Percent() float64 {
	if s.total <= 0 {
		return 0
	}
	return min(float64(s.current)/float64(s.total), 1)
}

// View implements tea.Model
func (s *ProgressScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	var sb strings.Builder
	sb.WriteString(components.TitleStyle.Render(s.spinner.View() + " Generating noise..."))
	sb.WriteString("\n\n")
	sb.WriteString(s.bar.ViewAs(s.Percent()))
	sb.WriteString("\n\n")
	sb.WriteString(components.LabelStyle.Render(fmt.Sprintf("Row %d/%d", s.current, s.total)))
	sb.WriteString("\n")
	sb.WriteString(components.LabelStyle.Render(fmt.Sprintf("Elapsed: %.1fs", time.Since(s.startTime).Seconds())))
	sb.WriteString("\n\n")
	sb.WriteString(components.HintStyle.Render("Press Ctrl+C to cancel"))

	return sb.String()
}

// Cancelled returns true if the user cancelled
func (s *ProgressScreen) Cancelled() bool {
	return s.cancelled
}

// SetProgress updates the progress. Reports arrive out of order from the
// workers, so the counter never moves backwards.
func (s *ProgressScreen) SetProgress(current, total int) {
	if current > s.current {
		s.current = current
	}
	s.total = total
}

var (
	completionSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorTitleStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// CompletionScreen displays the completion summary
type CompletionScreen struct {
	result forge.Result
	done   bool
}

// NewCompletionScreen creates a new completion screen
func NewCompletionScreen(msg CompletionMsg) *CompletionScreen {
	return &CompletionScreen{result: msg.Result}
}

// Init implements tea.Model
func (s *CompletionScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *CompletionScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			s.done = true
			return s, tea.Quit
		}
	}
	return s, nil
}

// View implements tea.Model
func (s *CompletionScreen) View() string {
	r := s.result

	var sb strings.Builder
	sb.WriteString(completionSuccessStyle.Render("✓ Generation complete!"))
	sb.WriteString("\n\n")
	sb.WriteString(components.TitleStyle.Render("Summary:"))
	sb.WriteString("\n")

	stats := []struct {
		label string
		value string
	}{
		{"File", r.Path},
		{"Format", string(r.Format)},
		{"Size", humanize.Bytes(uint64(r.Bytes))},
		{"Generation", util.FormatDuration(r.Generation)},
		{"Conversion", util.FormatDuration(r.Conversion)},
		{"Write", util.FormatDuration(r.Write)},
		{"Total", util.FormatDuration(r.Total)},
	}
	for _, stat := range stats {
		sb.WriteString("  ")
		sb.WriteString(components.KeyValue(stat.label, stat.value, 12))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(components.HintStyle.Render("Press Enter or q to exit"))

	return sb.String()
}

// Done returns true if the user is finished
func (s *CompletionScreen) Done() bool {
	return s.done
}

// ErrorScreen displays an error that occurred during generation
type ErrorScreen struct {
	err  error
	done bool
}

// NewErrorScreen creates a new error screen
func NewErrorScreen(err error) *ErrorScreen {
	return &ErrorScreen{err: err}
}

// Init implements tea.Model
func (s *ErrorScreen) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (s *ErrorScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			s.done = true
			return s, tea.Quit
		}
	}
	return s, nil
}

// View implements tea.Model
func (s *ErrorScreen) View() string {
	var sb strings.Builder
	sb.WriteString(errorTitleStyle.Render("✗ Generation failed"))
	sb.WriteString("\n\n")
	sb.WriteString(components.TitleStyle.Render("Error:"))
	sb.WriteString("\n  ")
	sb.WriteString(components.ValueStyle.Render(s.err.Error()))
	sb.WriteString("\n\n")
	sb.WriteString(components.HintStyle.Render("Press Enter or q to exit"))
	return sb.String()
}

// Done returns true if the user is finished
func (s *ErrorScreen) Done() bool {
	return s.done
}

// Error returns the error
func (s *ErrorScreen) Error() error {
	return s.err
}
