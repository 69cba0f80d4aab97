package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version     kong.VersionFlag `short:"v" help:"Show version"`
	Play        PlayCmd          `cmd:"" default:"withargs" help:"Play in the terminal (default)"`
	Scores      ScoresCmd        `cmd:"" help:"Show the best times"`
	ResetScores ResetScoresCmd   `cmd:"reset-scores" help:"Delete recorded times"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("minesweeper"),
		kong.Description("Classic minesweeper for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
