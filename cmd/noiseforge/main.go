package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// version is set at build time via -ldflags
var version = "dev"

type CLI struct {
	Globals

	Generate GenerateCmd `cmd:"" help:"Generate a noise image"`
	Wizard   WizardCmd   `cmd:"" help:"Configure and generate interactively"`
	Version  VersionCmd  `cmd:"" help:"Show version"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("noiseforge"),
		kong.Description("Deterministic, row-parallel noise image generator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	if err := ctx.Run(&cli.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("noiseforge %s\n", version)
	return nil
}
