package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mrsinham/noiseforge/cmd/noiseforge/wizard"
	"github.com/mrsinham/noiseforge/internal/forge"
	"github.com/mrsinham/noiseforge/internal/util"
)

// GenerateCmd generates one image from flags, optionally layered on a config file.
type GenerateCmd struct {
	Mode    *string `short:"m" help:"Pixel mode: grayscale or colorful (default: grayscale)"`
	Width   *uint32 `short:"W" help:"Image width in pixels (default: 640)"`
	Height  *uint32 `short:"H" help:"Image height in pixels (default: 480)"`
	Size    string  `short:"s" help:"Image size as WIDTHxHEIGHT, instead of --width/--height"`
	Seed    *uint32 `short:"S" help:"Seed for reproducibility, 0 to 4294967295 (default: 0)"`
	Output  *string `short:"o" help:"Output file; its extension is replaced by the format's (default: noise.png)"`
	Format  *string `short:"f" help:"Container: png, bmp, tiff or dcm (default: from the output extension, else png)"`
	Workers *int    `short:"w" help:"Number of parallel workers (default: CPU cores)"`
	Stamp   bool    `help:"Write the seed, size and mode in the bottom-left corner"`

	Config     string `short:"c" help:"Load settings from a YAML or HCL file; flags override it" type:"existingfile"`
	SaveConfig string `help:"Save the effective settings to a YAML or HCL file after generation"`
}

// state merges the config file, if any, with the flags that were given.
func (c *GenerateCmd) state() (*wizard.WizardState, error) {
	state := wizard.NewState()
	if c.Config != "" {
		loaded, err := wizard.LoadFromFile(c.Config)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		state = loaded
	}
	s := &state.Settings

	if c.Size != "" {
		if c.Width != nil || c.Height != nil {
			return nil, errors.New("--size cannot be combined with --width or --height")
		}
		w, h, err := util.ParseDimensions(c.Size)
		if err != nil {
			return nil, err
		}
		s.Width, s.Height = w, h
	}
	if c.Mode != nil {
		s.Mode = *c.Mode
	}
	if c.Width != nil {
		s.Width = *c.Width
	}
	if c.Height != nil {
		s.Height = *c.Height
	}
	if c.Seed != nil {
		s.Seed = *c.Seed
	}
	if c.Output != nil {
		s.Output = *c.Output
	}
	if c.Format != nil {
		s.Format = *c.Format
	}
	if c.Workers != nil {
		if *c.Workers < 0 {
			return nil, fmt.Errorf("--workers must be >= 0, got %d", *c.Workers)
		}
		s.Workers = *c.Workers
	}
	if c.Stamp {
		s.Stamp = true
	}

	return state, nil
}

func (c *GenerateCmd) Run(g *Globals) error {
	state, err := c.state()
	if err != nil {
		return err
	}
	opts, err := wizard.ToForgeOptions(state)
	if err != nil {
		return err
	}
	logger := g.Logger()
	opts.Logger = logger

	var progress *dotProgress
	if !g.Quiet {
		fmt.Println("noiseforge")
		fmt.Println("==========")
		fmt.Printf("%s %dx%d, seed %d\n", opts.Mode, opts.Width, opts.Height, opts.Seed)
		progress = newDotProgress(os.Stdout, 40)
		opts.ProgressCallback = progress.Update
	}

	res, err := forge.Run(opts)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}

	if c.SaveConfig != "" {
		if err := wizard.SaveToFile(wizard.FromForgeOptions(opts), c.SaveConfig); err != nil {
			logger.Warn("could not save config", "path", c.SaveConfig, "error", err)
		} else if !g.Quiet {
			fmt.Printf("Configuration saved to %s\n", c.SaveConfig)
		}
	}

	if !g.Quiet {
		fmt.Println("\n✓ Generation complete!")
		fmt.Printf("  File: %s (%s, %s)\n", res.Path, res.Format, humanize.Bytes(uint64(res.Bytes)))
	}
	return nil
}

// WizardCmd starts the interactive wizard.
type WizardCmd struct {
	From       string `help:"Preload settings from a YAML or HCL config file" type:"existingfile"`
	Accessible bool   `help:"Ask one question per line instead of drawing a full-screen UI" env:"ACCESSIBLE"`
}

func (c *WizardCmd) Run(g *Globals) error {
	if c.Accessible {
		return wizard.RunAccessible(c.From, os.Stdin, os.Stdout, g.Logger())
	}
	return wizard.Run(c.From)
}
