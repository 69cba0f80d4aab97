package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/minesweeper/internal/tui"
)

type ScoresCmd struct {
	Difficulty string `short:"d" help:"Only show this difficulty"`
	Limit      int    `short:"n" default:"0" help:"Entries per difficulty (0 shows all)"`
}

func (c *ScoresCmd) Run(g *Globals) error {
	return c.run(g, os.Stdout)
}

func (c *ScoresCmd) run(g *Globals, out io.Writer) error {
	difficulties, err := rankedDifficulties(c.Difficulty)
	if err != nil {
		return err
	}

	cfg, logger, closeLog, err := g.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	lb := openLeaderboard(cfg, logger)
	_, err = fmt.Fprint(out, tui.RenderScores(lb, c.Limit, difficulties...))
	return err
}
