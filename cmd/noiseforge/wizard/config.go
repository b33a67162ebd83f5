package wizard

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/mrsinham/noiseforge/internal/encode"
	"github.com/mrsinham/noiseforge/internal/image"
	"github.com/mrsinham/noiseforge/internal/util"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedConfig is returned for config files that are neither YAML nor HCL.
var ErrUnsupportedConfig = errors.New("unsupported config file extension (want .yaml, .yml or .hcl)")

// Config is the on-disk configuration. The same structure is read from YAML
// and HCL files.
type Config struct {
	Image  *ImageConfig  `yaml:"image,omitempty" hcl:"image,block"`
	Output *OutputConfig `yaml:"output,omitempty" hcl:"output,block"`
}

// ImageConfig describes the raster to generate.
type ImageConfig struct {
	Mode    string `yaml:"mode,omitempty" hcl:"mode,optional"`
	Width   int64  `yaml:"width,omitempty" hcl:"width,optional"`
	Height  int64  `yaml:"height,omitempty" hcl:"height,optional"`
	Size    string `yaml:"size,omitempty" hcl:"size,optional"` // "WxH", alternative to width/height
	Seed    int64  `yaml:"seed" hcl:"seed,optional"`
	Workers int    `yaml:"workers,omitempty" hcl:"workers,optional"`
}

// OutputConfig describes where and how the image is written.
type OutputConfig struct {
	Path   string `yaml:"path,omitempty" hcl:"path,optional"`
	Format string `yaml:"format,omitempty" hcl:"format,optional"`
	Stamp  bool   `yaml:"stamp,omitempty" hcl:"stamp,optional"`
}

type configKind int

const (
	kindYAML configKind = iota
	kindHCL
)

func kindOf(path string) (configKind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kindYAML, nil
	case ".hcl":
		return kindHCL, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedConfig, path)
	}
}

// LoadFromFile reads a YAML or HCL config file, chosen by extension, and
// returns the resulting wizard state. Missing values keep their defaults.
func LoadFromFile(path string) (*WizardState, error) {
	kind, err := kindOf(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch kind {
	case kindYAML:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config: %w", err)
		}
	case kindHCL:
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
		}
		diags = gohcl.DecodeBody(file.Body, nil, &cfg)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
		}
	}

	return stateFromConfig(&cfg)
}

// SaveToFile writes the state as YAML or HCL depending on the extension of path.
func SaveToFile(state *WizardState, path string) error {
	kind, err := kindOf(path)
	if err != nil {
		return err
	}

	cfg := configFromState(state)

	var data []byte
	switch kind {
	case kindYAML:
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding YAML config: %w", err)
		}
	case kindHCL:
		f := hclwrite.NewEmptyFile()
		gohcl.EncodeIntoBody(cfg, f.Body())
		data = f.Bytes()
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func stateFromConfig(cfg *Config) (*WizardState, error) {
	state := NewState()
	s := &state.Settings

	if img := cfg.Image; img != nil {
		if img.Mode != "" {
			mode, err := image.ParseMode(img.Mode)
			if err != nil {
				return nil, errors.New("invalid mode")
			}
			s.Mode = mode.String()
		}
		if img.Size != "" {
			if img.Width != 0 || img.Height != 0 {
				return nil, errors.New("size cannot be combined with width or height")
			}
			w, h, err := util.ParseDimensions(img.Size)
			if err != nil {
				return nil, err
			}
			s.Width, s.Height = w, h
		}
		if img.Width != 0 {
			if img.Width < 0 || img.Width > math.MaxUint32 {
				return nil, errors.New("invalid width")
			}
			s.Width = uint32(img.Width)
		}
		if img.Height != 0 {
			if img.Height < 0 || img.Height > math.MaxUint32 {
				return nil, errors.New("invalid height")
			}
			s.Height = uint32(img.Height)
		}
		if img.Seed < 0 || img.Seed > math.MaxUint32 {
			return nil, errors.New("invalid seed")
		}
		s.Seed = uint32(img.Seed)
		if img.Workers < 0 {
			return nil, fmt.Errorf("workers must be >= 0, got %d", img.Workers)
		}
		s.Workers = img.Workers
	}

	if out := cfg.Output; out != nil {
		if out.Path != "" {
			s.Output = out.Path
		}
		if out.Format != "" {
			format, err := encode.ParseFormat(out.Format)
			if err != nil {
				return nil, err
			}
			s.Format = string(format)
		}
		s.Stamp = out.Stamp
	}

	if _, err := util.CheckArea(s.Width, s.Height); err != nil {
		return nil, err
	}
	return state, nil
}

func configFromState(state *WizardState) *Config {
	s := state.Settings
	return &Config{
		Image: &ImageConfig{
			Mode:    s.Mode,
			Width:   int64(s.Width),
			Height:  int64(s.Height),
			Seed:    int64(s.Seed),
			Workers: s.Workers,
		},
		Output: &OutputConfig{
			Path:   s.Output,
			Format: s.Format,
			Stamp:  s.Stamp,
		},
	}
}
