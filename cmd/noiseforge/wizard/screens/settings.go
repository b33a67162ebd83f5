package screens

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/components"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/types"
	"github.com/mrsinham/noiseforge/internal/encode"
	"github.com/mrsinham/noiseforge/internal/image"
	"github.com/mrsinham/noiseforge/internal/util"
)

// Prompt errors. They are shown as-is next to the offending field.
var (
	ErrInvalidMode    = errors.New("invalid mode")
	ErrInvalidWidth   = errors.New("invalid width")
	ErrInvalidHeight  = errors.New("invalid height")
	ErrInvalidSeed    = errors.New("invalid seed")
	ErrInvalidPath    = errors.New("invalid path")
	ErrInvalidWorkers = errors.New("invalid number of workers")
)

// SettingsScreen is the wizard screen where every generation setting is entered.
type SettingsScreen struct {
	form      *huh.Form
	helpPanel *components.HelpPanel
	settings  *types.Settings
	width     int
	height    int
	done      bool
	cancelled bool

	// String versions for form binding (huh binds to strings)
	modeStr    string
	formatStr  string
	widthStr   string
	heightStr  string
	seedStr    string
	workersStr string
}

// NewSettingsScreen creates the settings screen bound to settings. The mode
// is offered as a list.
func NewSettingsScreen(settings *types.Settings) *SettingsScreen {
	return newSettingsScreen(settings, false)
}

// NewAccessibleSettingsScreen is like NewSettingsScreen but asks for the mode
// by name, for line-by-line prompting.
func NewAccessibleSettingsScreen(settings *types.Settings) *SettingsScreen {
	return newSettingsScreen(settings, true)
}

func newSettingsScreen(settings *types.Settings, typedMode bool) *SettingsScreen {
	def := types.DefaultSettings()
	if settings.Mode == "" {
		settings.Mode = def.Mode
	}
	if settings.Width == 0 {
		settings.Width = def.Width
	}
	if settings.Height == 0 {
		settings.Height = def.Height
	}
	if settings.Output == "" {
		settings.Output = def.Output
	}

	s := &SettingsScreen{
		helpPanel:  components.NewHelpPanel(),
		settings:   settings,
		modeStr:    settings.Mode,
		formatStr:  settings.Format,
		widthStr:   strconv.FormatUint(uint64(settings.Width), 10),
		heightStr:  strconv.FormatUint(uint64(settings.Height), 10),
		seedStr:    strconv.FormatUint(uint64(settings.Seed), 10),
		workersStr: strconv.Itoa(settings.Workers),
	}

	formatOptions := []huh.Option[string]{huh.NewOption("auto (from output extension)", "")}
	for _, f := range encode.AllFormats() {
		formatOptions = append(formatOptions, huh.NewOption(string(f), string(f)))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			s.modeField(typedMode),

			huh.NewInput().
				Key("width").
				Title("Width").
				Value(&s.widthStr).
				Validate(ValidateWidth),

			huh.NewInput().
				Key("height").
				Title("Height").
				Value(&s.heightStr).
				Validate(func(v string) error {
					return ValidateHeight(s.widthStr, v)
				}),

			huh.NewInput().
				Key("seed").
				Title("Seed").
				Value(&s.seedStr).
				Validate(ValidateSeed),

			huh.NewInput().
				Key("output").
				Title("Output file").
				Value(&settings.Output).
				Validate(ValidatePath),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(formatOptions...).
				Value(&s.formatStr),

			huh.NewInput().
				Key("workers").
				Title("Workers").
				Value(&s.workersStr).
				Validate(ValidateWorkers),

			huh.NewConfirm().
				Key("stamp").
				Title("Stamp the seed on the image?").
				Value(&settings.Stamp),
		),
	).WithShowHelp(false).WithShowErrors(true)

	return s
}

// modeField binds the mode to its own string so that a select list never
// rewrites an unknown mode in the settings before the form is submitted.
func (s *SettingsScreen) modeField(typed bool) huh.Field {
	if typed {
		return huh.NewInput().
			Key("mode").
			Title("Mode (grayscale or colorful)").
			Value(&s.modeStr).
			Validate(ValidateMode)
	}

	options := make([]huh.Option[string], 0, len(image.AllModes()))
	for _, m := range image.AllModes() {
		options = append(options, huh.NewOption(m.String(), m.String()))
	}
	return huh.NewSelect[string]().
		Key("mode").
		Title("Mode").
		Options(options...).
		Value(&s.modeStr).
		Validate(ValidateMode)
}

// ValidateMode accepts the mode names, case-insensitively.
func ValidateMode(s string) error {
	if _, err := image.ParseMode(s); err != nil {
		return ErrInvalidMode
	}
	return nil
}

// ValidateWidth accepts any positive 32-bit integer.
func ValidateWidth(s string) error {
	if n, err := util.ParseUint32(s); err != nil || n == 0 {
		return ErrInvalidWidth
	}
	return nil
}

// ValidateHeight accepts any positive 32-bit integer whose product with width
// does not overflow. An invalid width is reported on its own field.
func ValidateHeight(width, height string) error {
	h, err := util.ParseUint32(height)
	if err != nil || h == 0 {
		return ErrInvalidHeight
	}
	w, err := util.ParseUint32(width)
	if err != nil || w == 0 {
		return nil
	}
	if _, err := util.CheckArea(w, h); err != nil {
		return util.ErrDimensionOverflow
	}
	return nil
}

// ValidateSeed accepts any 32-bit unsigned integer, 0 included.
func ValidateSeed(s string) error {
	if _, err := util.ParseSeed(s); err != nil {
		return ErrInvalidSeed
	}
	return nil
}

// ValidatePath rejects empty paths and directories.
func ValidatePath(s string) error {
	if _, _, err := encode.ResolvePath(s, ""); err != nil {
		return ErrInvalidPath
	}
	return nil
}

// ValidateWorkers accepts 0 (auto) or a positive count.
func ValidateWorkers(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n < 0 {
		return ErrInvalidWorkers
	}
	return nil
}

// Form exposes the underlying form, for running it outside of the TUI.
func (s *SettingsScreen) Form() *huh.Form {
	return s.form
}

// Init implements tea.Model
func (s *SettingsScreen) Init() tea.Cmd {
	return s.form.Init()
}

// Update implements tea.Model
func (s *SettingsScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			s.cancelled = true
			return s, tea.Quit
		}
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.helpPanel.SetWidth(msg.Width / 2)
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if focused := s.form.GetFocusedField(); focused != nil {
		s.helpPanel.SetField(focused.GetKey())
	}

	if s.form.State == huh.StateCompleted {
		s.done = true
		s.Sync()
	}

	return s, cmd
}

// Sync parses the string-bound fields back into the settings.
// Values that do not parse are left untouched.
func (s *SettingsScreen) Sync() {
	if n, err := util.ParseUint32(s.widthStr); err == nil {
		s.settings.Width = n
	}
	if n, err := util.ParseUint32(s.heightStr); err == nil {
		s.settings.Height = n
	}
	if n, err := util.ParseSeed(s.seedStr); err == nil {
		s.settings.Seed = n
	}
	if strings.TrimSpace(s.workersStr) == "" {
		s.settings.Workers = 0
	} else if n, err := strconv.Atoi(strings.TrimSpace(s.workersStr)); err == nil && n >= 0 {
		s.settings.Workers = n
	}
	if mode, err := image.ParseMode(s.modeStr); err == nil {
		s.settings.Mode = mode.String()
	}
	if s.formatStr == "" {
		s.settings.Format = ""
	} else if f, err := encode.ParseFormat(s.formatStr); err == nil {
		s.settings.Format = string(f)
	}
	s.settings.Output = strings.TrimSpace(s.settings.Output)
}

// View implements tea.Model
func (s *SettingsScreen) View() string {
	if s.cancelled {
		return "Cancelled.\n"
	}

	title := components.TitleStyle.Render("NOISEFORGE WIZARD - Settings")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		s.form.View(),
		"",
		s.helpPanel.View(),
		"",
		components.HintStyle.Render("Tab: Next field | Enter: Submit | Esc: Cancel"),
	)
}

// Done returns true if the form was completed
func (s *SettingsScreen) Done() bool {
	return s.done
}

// Cancelled returns true if the user cancelled
func (s *SettingsScreen) Cancelled() bool {
	return s.cancelled
}

// Settings returns the edited settings
func (s *SettingsScreen) Settings() *types.Settings {
	return s.settings
}
