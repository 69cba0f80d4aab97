package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type ResetScoresCmd struct {
	Difficulty string `short:"d" help:"Only reset this difficulty"`
	Yes        bool   `short:"y" help:"Do not ask for confirmation"`
}

func (c *ResetScoresCmd) Run(g *Globals) error {
	return c.run(g, os.Stdin, os.Stdout)
}

func (c *ResetScoresCmd) run(g *Globals, in io.Reader, out io.Writer) error {
	difficulties, err := rankedDifficulties(c.Difficulty)
	if err != nil {
		return err
	}

	names := make([]string, len(difficulties))
	keys := make([]string, len(difficulties))
	for i, d := range difficulties {
		names[i] = d.Name
		keys[i] = d.Key
	}

	if !c.Yes {
		fmt.Fprintf(out, "Delete all recorded times for %s? [y/N] ", strings.Join(names, ", "))
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(out, "Nothing deleted")
			return nil
		}
	}

	cfg, logger, closeLog, err := g.setup()
	if err != nil {
		return err
	}
	defer closeLog()

	if err := openLeaderboard(cfg, logger).Reset(keys...); err != nil {
		return err
	}
	fmt.Fprintf(out, "Reset %s\n", strings.Join(names, ", "))
	return nil
}
