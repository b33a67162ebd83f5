package wizard

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/screens"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/types"
	"github.com/mrsinham/noiseforge/internal/encode"
	"github.com/mrsinham/noiseforge/internal/forge"
	"github.com/mrsinham/noiseforge/internal/image"
	"github.com/mrsinham/noiseforge/internal/util"
)

func TestToForgeOptions_BasicConversion(t *testing.T) {
	state := &WizardState{Settings: types.Settings{
		Mode:    "colorful",
		Width:   100,
		Height:  50,
		Seed:    12345,
		Output:  "/output/noise.png",
		Format:  "tif",
		Workers: 2,
		Stamp:   true,
	}}

	opts, err := ToForgeOptions(state)
	if err != nil {
		t.Fatalf("ToForgeOptions failed: %v", err)
	}

	if opts.Mode != image.Colorful {
		t.Errorf("Expected Mode colorful, got %s", opts.Mode)
	}
	if opts.Width != 100 || opts.Height != 50 {
		t.Errorf("Expected 100x50, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Seed != 12345 {
		t.Errorf("Expected Seed 12345, got %d", opts.Seed)
	}
	if opts.Output != "/output/noise.png" {
		t.Errorf("Expected Output /output/noise.png, got %s", opts.Output)
	}
	if opts.Format != encode.TIFF {
		t.Errorf("Expected Format tiff, got %s", opts.Format)
	}
	if opts.Workers != 2 {
		t.Errorf("Expected Workers 2, got %d", opts.Workers)
	}
	if !opts.Stamp {
		t.Error("Expected Stamp to be set")
	}
}

func TestToForgeOptions_EmptyFormatIsInferred(t *testing.T) {
	opts, err := ToForgeOptions(NewState())
	if err != nil {
		t.Fatalf("ToForgeOptions failed: %v", err)
	}
	if opts.Format != "" {
		t.Errorf("Expected empty format, got %q", opts.Format)
	}
	if opts.Mode != image.Grayscale {
		t.Errorf("Expected grayscale, got %s", opts.Mode)
	}
}

func TestToForgeOptions_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*types.Settings)
		want   string
	}{
		{"bad mode", func(s *types.Settings) { s.Mode = "rainbow" }, "invalid mode"},
		{"zero width", func(s *types.Settings) { s.Width = 0 }, util.ErrEmptyDimensions.Error()},
		{"overflow", func(s *types.Settings) { s.Width, s.Height = 1<<16, 1<<16 }, util.ErrDimensionOverflow.Error()},
		{"empty path", func(s *types.Settings) { s.Output = "  " }, "invalid path"},
		{"bad format", func(s *types.Settings) { s.Format = "gif" }, "unknown output format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			tt.modify(&state.Settings)
			_, err := ToForgeOptions(state)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %q", tt.want, err.Error())
			}
		})
	}
}

func TestFromForgeOptions(t *testing.T) {
	opts := forge.Options{
		Width:   64,
		Height:  32,
		Seed:    9,
		Mode:    image.Colorful,
		Output:  "x.dcm",
		Format:  encode.DICOM,
		Workers: 6,
	}

	state := FromForgeOptions(opts)
	back, err := ToForgeOptions(state)
	if err != nil {
		t.Fatalf("ToForgeOptions failed: %v", err)
	}
	if !reflect.DeepEqual(back, opts) {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", back, opts)
	}
}

func TestFromForgeOptions_DefaultOutput(t *testing.T) {
	state := FromForgeOptions(forge.Options{Width: 1, Height: 1})
	if state.Settings.Output != types.DefaultSettings().Output {
		t.Errorf("Expected default output, got %q", state.Settings.Output)
	}
}

func TestWizard_StartsOnSettings(t *testing.T) {
	w := NewWizard(nil)
	_ = w.Init()
	if w.Phase() != PhaseSettings {
		t.Errorf("Expected PhaseSettings, got %v", w.Phase())
	}
	if w.state.Settings != types.DefaultSettings() {
		t.Errorf("Expected default settings, got %+v", w.state.Settings)
	}
	if !strings.Contains(w.View(), "Settings") {
		t.Errorf("Expected settings view, got:\n%s", w.View())
	}
}

func TestWizard_EscCancels(t *testing.T) {
	w := NewWizard(nil)
	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !w.cancelled {
		t.Error("Expected wizard to be cancelled")
	}
	if cmd == nil {
		t.Error("Expected a quit command")
	}
}

func TestWizard_Generation(t *testing.T) {
	dir := t.TempDir()
	state := NewState()
	state.Settings.Width = 8
	state.Settings.Height = 4
	state.Settings.Output = filepath.Join(dir, "wizard.png")

	w := NewWizard(state)
	_, _ = w.startGeneration()
	if w.Phase() != PhaseProgress {
		t.Fatalf("Expected PhaseProgress, got %v", w.Phase())
	}

	opts, err := ToForgeOptions(state)
	if err != nil {
		t.Fatalf("ToForgeOptions failed: %v", err)
	}
	res, err := forge.Run(opts)
	if err != nil {
		t.Fatalf("forge.Run failed: %v", err)
	}

	_, _ = w.Update(screens.ProgressMsg{Current: 2, Total: 4})
	if got := w.progressScreen.Percent(); got != 0.5 {
		t.Errorf("Expected 50%% progress, got %v", got)
	}

	_, _ = w.Update(screens.CompletionMsg{Result: res})
	if w.Phase() != PhaseComplete {
		t.Fatalf("Expected PhaseComplete, got %v", w.Phase())
	}
	if !strings.Contains(w.View(), res.Path) {
		t.Errorf("Expected completion view to mention %s", res.Path)
	}

	_, _ = w.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !w.finished {
		t.Error("Expected wizard to be finished")
	}
}

func TestWizard_GenerationError(t *testing.T) {
	w := NewWizard(nil)
	_, _ = w.startGeneration()

	_, _ = w.Update(screens.ErrorMsg{Error: errors.New("disk full")})
	if w.Phase() != PhaseError {
		t.Fatalf("Expected PhaseError, got %v", w.Phase())
	}
	if !strings.Contains(w.View(), "disk full") {
		t.Errorf("Expected error view to mention the error, got:\n%s", w.View())
	}
	if w.err == nil {
		t.Error("Expected wizard error to be recorded")
	}
}

func TestWizard_InvalidStateGoesToError(t *testing.T) {
	state := NewState()
	state.Settings.Mode = "sepia"

	w := NewWizard(state)
	_, cmd := w.startGeneration()
	if cmd != nil {
		t.Error("Expected no command when options are invalid")
	}
	if w.Phase() != PhaseError {
		t.Errorf("Expected PhaseError, got %v", w.Phase())
	}
}

func TestRunAccessible(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "access.jpg")

	input := strings.Join([]string{
		"sepia",    // mode: rejected
		"colorful", // mode
		"abc",      // width: rejected
		"4",        // width
		"0",        // height: rejected
		"2",        // height
		"-1",       // seed: rejected
		"42",       // seed
		target,     // output
		"",         // format: auto
		"",         // workers: auto
		"",         // stamp: no
	}, "\n") + "\n"

	var out bytes.Buffer
	err := RunAccessible("", strings.NewReader(input), &out, nil)
	if err != nil {
		t.Fatalf("RunAccessible failed: %v\n%s", err, out.String())
	}

	transcript := out.String()
	for _, want := range []string{"invalid mode", "invalid width", "invalid height", "invalid seed", "Wrote"} {
		if !strings.Contains(transcript, want) {
			t.Errorf("Expected transcript to contain %q, got:\n%s", want, transcript)
		}
	}

	written := filepath.Join(dir, "access.png")
	if _, err := os.Stat(written); err != nil {
		t.Fatalf("Expected %s to exist: %v", written, err)
	}

	// Same settings through the pipeline give the same file.
	res, err := forge.Run(forge.Options{
		Width: 4, Height: 2, Seed: 42, Mode: image.Colorful,
		Output: filepath.Join(dir, "reference.png"),
	})
	if err != nil {
		t.Fatalf("forge.Run failed: %v", err)
	}
	a, _ := os.ReadFile(written)
	b, _ := os.ReadFile(res.Path)
	if !bytes.Equal(a, b) {
		t.Error("Expected accessible run to match a direct run")
	}
}

func TestRunAccessible_FromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, "preset.yaml", "image:\n  width: 3\n  height: 3\n  seed: 1\noutput:\n  path: "+
		filepath.Join(dir, "preset.bmp")+"\n")

	// Empty answers keep every preset value.
	var out bytes.Buffer
	err := RunAccessible(cfg, strings.NewReader(strings.Repeat("\n", 8)), &out, nil)
	if err != nil {
		t.Fatalf("RunAccessible failed: %v\n%s", err, out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "preset.bmp")); err != nil {
		t.Errorf("Expected preset.bmp to be written: %v", err)
	}
}

func TestRunAccessible_BadConfig(t *testing.T) {
	err := RunAccessible(filepath.Join(t.TempDir(), "nope.yaml"), strings.NewReader(""), &bytes.Buffer{}, nil)
	if err == nil || !strings.Contains(err.Error(), "loading config") {
		t.Errorf("Expected loading config error, got %v", err)
	}
}

func TestLineReader(t *testing.T) {
	r := newLineReader(strings.NewReader("first\nsecond\nlast"))

	buf := make([]byte, 64)
	var lines []string
	for {
		n, err := r.Read(buf)
		if n > 0 {
			lines = append(lines, string(buf[:n]))
		}
		if err != nil {
			break
		}
	}

	want := []string{"first\n", "second\n", "last"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("Expected %q, got %q", want, lines)
	}
}

func TestLineReader_SmallBuffer(t *testing.T) {
	r := newLineReader(strings.NewReader("abcdef\ngh\n"))

	buf := make([]byte, 4)
	var got []string
	for {
		n, err := r.Read(buf)
		if n > 0 {
			got = append(got, string(buf[:n]))
		}
		if err != nil {
			break
		}
	}

	want := []string{"abcd", "ef\n", "gh\n"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
