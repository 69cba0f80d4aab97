// Package game implements the rules of a single-player minesweeper game.
//
// The main type is Session, which wraps a board.Board with the game
// lifecycle: the clock starts on the first reveal, and the game ends when a
// mine is hit or every safe cell is open. Engine sits on top and is what a
// front-end talks to. It replaces sessions on New Game and records winning
// times on a leaderboard.
//
// # Basic Usage
//
//	lb := leaderboard.New(leaderboard.NewFileStore("."))
//	e := game.NewEngine(lb)
//	if err := e.NewGame(game.Beginner); err != nil {
//	    return err
//	}
//	res, err := e.Reveal(4, 4)
//	if res.Outcome == game.OutcomeWon && e.Status().Qualifies {
//	    err = e.SubmitScore("Alice")
//	}
//
// # Deterministic Testing
//
// Inject a seeded source for mine placement and a mock clock for time:
//
//	clock := quartz.NewMock(t)
//	s, _ := game.NewSession(game.Beginner,
//	    game.WithRand(randutil.New(42)),
//	    game.WithClock(clock))
//	s.Reveal(0, 0)
//	clock.Advance(3 * time.Second)
//	s.ElapsedSeconds() // 3
//
// Neither Session nor Engine is safe for concurrent use; callers serialise
// access, which a Bubble Tea update loop does naturally.
package game
