package wizard

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard/types"
	"github.com/mrsinham/noiseforge/internal/encode"
	"github.com/mrsinham/noiseforge/internal/util"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeConfig(t, "noise.yaml", `
image:
  mode: Colorful
  width: 1920
  height: 1080
  seed: 42
  workers: 4
output:
  path: out/noise.tiff
  format: tif
  stamp: true
`)

	state, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	want := types.Settings{
		Mode:    "colorful",
		Width:   1920,
		Height:  1080,
		Seed:    42,
		Output:  "out/noise.tiff",
		Format:  "tiff",
		Workers: 4,
		Stamp:   true,
	}
	if !reflect.DeepEqual(state.Settings, want) {
		t.Errorf("Settings mismatch:\n got %+v\nwant %+v", state.Settings, want)
	}
}

func TestLoadFromFile_HCL(t *testing.T) {
	path := writeConfig(t, "noise.hcl", `
image {
  mode = "grayscale"
  size = "800x600"
  seed = 4294967295
}

output {
  path   = "gray.dcm"
  format = "dcm"
}
`)

	state, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	s := state.Settings
	if s.Mode != "grayscale" {
		t.Errorf("Expected mode grayscale, got %s", s.Mode)
	}
	if s.Width != 800 || s.Height != 600 {
		t.Errorf("Expected 800x600, got %dx%d", s.Width, s.Height)
	}
	if s.Seed != 4294967295 {
		t.Errorf("Expected seed 4294967295, got %d", s.Seed)
	}
	if s.Output != "gray.dcm" || s.Format != "dcm" {
		t.Errorf("Expected gray.dcm/dcm, got %s/%s", s.Output, s.Format)
	}
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "empty.yml", "image:\n  seed: 7\n")

	state, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	want := types.DefaultSettings()
	want.Seed = 7
	if !reflect.DeepEqual(state.Settings, want) {
		t.Errorf("Settings mismatch:\n got %+v\nwant %+v", state.Settings, want)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	tests := []struct {
		name          string
		file          string
		content       string
		errorContains string
		errorIs       error
	}{
		{
			name:          "unknown mode",
			file:          "c.yaml",
			content:       "image:\n  mode: sepia\n",
			errorContains: "invalid mode",
		},
		{
			name:          "negative width",
			file:          "c.yaml",
			content:       "image:\n  width: -1\n",
			errorContains: "invalid width",
		},
		{
			name:          "height too large",
			file:          "c.yaml",
			content:       "image:\n  height: 4294967296\n",
			errorContains: "invalid height",
		},
		{
			name:          "negative seed",
			file:          "c.yaml",
			content:       "image:\n  seed: -5\n",
			errorContains: "invalid seed",
		},
		{
			name:    "overflowing area",
			file:    "c.yaml",
			content: "image:\n  width: 65536\n  height: 65536\n",
			errorIs: util.ErrDimensionOverflow,
		},
		{
			name:          "size with width",
			file:          "c.yaml",
			content:       "image:\n  size: 10x10\n  width: 5\n",
			errorContains: "size cannot be combined",
		},
		{
			name:    "unknown format",
			file:    "c.yaml",
			content: "output:\n  format: gif\n",
			errorIs: encode.ErrUnknownFormat,
		},
		{
			name:          "malformed YAML",
			file:          "c.yaml",
			content:       "image: [",
			errorContains: "parsing YAML config",
		},
		{
			name:          "malformed HCL",
			file:          "c.hcl",
			content:       "image {",
			errorContains: "failed to parse HCL file",
		},
		{
			name:          "unknown HCL attribute",
			file:          "c.hcl",
			content:       "image {\n  colour = \"red\"\n}\n",
			errorContains: "failed to decode HCL",
		},
		{
			name:    "unsupported extension",
			file:    "c.json",
			content: "{}",
			errorIs: ErrUnsupportedConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.content)
			_, err := LoadFromFile(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("Expected error containing %q, got %q", tt.errorContains, err.Error())
			}
			if tt.errorIs != nil && !errors.Is(err, tt.errorIs) {
				t.Errorf("Expected error wrapping %v, got %v", tt.errorIs, err)
			}
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestSaveToFile_RoundTrip(t *testing.T) {
	original := &WizardState{Settings: types.Settings{
		Mode:    "colorful",
		Width:   333,
		Height:  77,
		Seed:    123456789,
		Output:  "noise.bmp",
		Format:  "bmp",
		Workers: 3,
		Stamp:   true,
	}}

	for _, name := range []string{"saved.yaml", "saved.yml", "saved.hcl", filepath.Join("nested", "dir", "saved.hcl")} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := SaveToFile(original, path); err != nil {
				t.Fatalf("SaveToFile failed: %v", err)
			}

			loaded, err := LoadFromFile(path)
			if err != nil {
				t.Fatalf("LoadFromFile failed: %v", err)
			}
			if !reflect.DeepEqual(loaded.Settings, original.Settings) {
				t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", loaded.Settings, original.Settings)
			}
		})
	}
}

func TestSaveToFile_HCLLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.hcl")
	if err := SaveToFile(NewState(), path); err != nil {
		t.Fatalf("SaveToFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	content := string(data)
	for _, want := range []string{"image {", "output {", `mode`, `"grayscale"`, "width", "640"} {
		if !strings.Contains(content, want) {
			t.Errorf("Expected HCL output to contain %q, got:\n%s", want, content)
		}
	}
}

func TestSaveToFile_UnsupportedExtension(t *testing.T) {
	err := SaveToFile(NewState(), filepath.Join(t.TempDir(), "config.toml"))
	if !errors.Is(err, ErrUnsupportedConfig) {
		t.Errorf("Expected ErrUnsupportedConfig, got %v", err)
	}
}
