package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/idilsaglam/tada/internal/cli"
	"github.com/idilsaglam/tada/internal/ui"
)

func main() {
	// Root flags (apply to every subcommand)
	groupPending := flag.Bool("group", false, "group output by pending/done")
	configPath := flag.String("config", "", "YAML config file (default ./tada.yaml if present)")
	theme := flag.String("theme", "", "color theme: classic, neon or mono")
	color := flag.Bool("color", false, "force color output even when not a terminal")
	noColor := flag.Bool("no-color", false, "disable color output")
	flag.Parse()

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Group:      *groupPending,
		ConfigPath: *configPath,
		Theme:      *theme,
		Color:      *color,
		NoColor:    *noColor,
	})
	if code != 0 {
		fmt.Fprintln(ui.Err)
	}
	os.Exit(code)
}
