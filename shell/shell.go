// Package shell is the interactive table: a readline loop that drives
// one game at a time against AI seats and prints engine events as they
// happen.
package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/pmarrero/malecon/ai"
	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/config"
	"github.com/pmarrero/malecon/game"
	"github.com/pmarrero/malecon/storage"
	"github.com/pmarrero/malecon/tile"
	"github.com/pmarrero/malecon/variant"
)

// humanSeat is where the interactive player always sits.
const humanSeat = 0

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	curGame *game.Engine
	names   []string
	store   *storage.Store
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mmalecon>\033[0m ",
		HistoryFile:     "/tmp/malecon_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := &ShellController{l: l, cfg: cfg}
	if cfg.DBPath != "" {
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			log.Error().Err(err).Msg("profile db unavailable, playing without persistence")
		} else {
			sc.store = store
		}
	}
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.l.Stdout(), msg)
	io.WriteString(sc.l.Stdout(), "\n")
}

func (sc *ShellController) showError(err error) {
	io.WriteString(sc.l.Stderr(), "Error: "+err.Error()+"\n")
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		switch err {
		case readline.ErrInterrupt:
			if len(line) == 0 {
				sig <- os.Interrupt
				return
			}
			continue
		case io.EOF:
			sig <- os.Interrupt
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "bye" {
			sig <- os.Interrupt
			return
		}
		if err := sc.dispatch(line); err != nil {
			sc.showError(err)
		}
	}
}

func (sc *ShellController) dispatch(line string) error {
	switch {
	case strings.HasPrefix(line, "new"):
		return sc.newGame(strings.Fields(line)[1:])

	case line == "modes":
		sc.showModes()
		return nil

	case strings.HasPrefix(line, "play "):
		return sc.play(strings.Fields(line)[1:])

	case line == "pass":
		return sc.withGame(func(e *game.Engine) error { return e.Pass(humanSeat) })

	case line == "draw":
		return sc.withGame(func(e *game.Engine) error { return e.DrawTile(humanSeat) })

	case line == "hint":
		return sc.hint()

	case line == "s" || line == "state":
		return sc.withGame(func(e *game.Engine) error {
			sc.showMessage(renderState(e.GetState()))
			return nil
		})

	case strings.HasPrefix(line, "save "):
		return sc.saveGame(strings.TrimSpace(line[5:]))

	case strings.HasPrefix(line, "load "):
		return sc.loadGame(strings.TrimSpace(line[5:]))

	case line == "pause":
		return sc.withGame(func(e *game.Engine) error { e.Pause(); return nil })

	case line == "resume":
		return sc.withGame(func(e *game.Engine) error { e.Resume(); return nil })

	case line == "restart":
		return sc.withGame(func(e *game.Engine) error { return e.Restart() })

	case strings.HasPrefix(line, "profile "):
		return sc.profile(strings.TrimSpace(line[8:]))

	case strings.HasPrefix(line, "help"):
		sc.showMessage(helpText)
		return nil

	default:
		return fmt.Errorf("unknown command %q, try help", strings.Fields(line)[0])
	}
}

func (sc *ShellController) withGame(f func(*game.Engine) error) error {
	if sc.curGame == nil {
		return errors.New("no game in progress, start one with new")
	}
	return f(sc.curGame)
}

// newGame starts a fresh match: `new [variant] [numPlayers]`.
func (sc *ShellController) newGame(args []string) error {
	variantID := sc.cfg.DefaultVariant
	if len(args) > 0 {
		variantID = args[0]
	}
	info, err := variant.GetInfo(variantID)
	if err != nil {
		return err
	}
	n := info.MinPlayers
	if info.Teams {
		n = 4
	}
	if len(args) > 1 {
		if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil {
			return fmt.Errorf("bad player count %q", args[1])
		}
	}

	cfg := game.Config{
		Variant:          variantID,
		MaxScore:         sc.cfg.MaxScore,
		ThinkDelay:       thinkDelay(sc.cfg),
		MaxDrawsPerRound: sc.cfg.MaxDrawsPerRound,
	}
	cfg.Players = append(cfg.Players, game.PlayerConfig{Name: "You"})
	for i := 1; i < n; i++ {
		cfg.Players = append(cfg.Players, game.PlayerConfig{
			Name: fmt.Sprintf("Bot %d", i), AI: true,
		})
	}
	e, err := game.NewEngine(cfg)
	if err != nil {
		return err
	}
	sc.attach(e)
	e.StartGame()
	return nil
}

// attach wires events, AI personalities and the profile store to a
// freshly built engine.
func (sc *ShellController) attach(e *game.Engine) {
	snap := e.GetState()
	sc.names = nil
	for _, pl := range snap.Players {
		sc.names = append(sc.names, pl.Name)
	}
	p, err := ai.Preset(sc.cfg.Personality)
	if err != nil {
		log.Error().Err(err).Msg("unknown personality, using baseline heuristic")
	} else {
		for _, pl := range snap.Players {
			if pl.IsAI {
				e.SetSelector(pl.Index, ai.NewSelector(p, 0))
			}
		}
	}
	if sc.store != nil {
		e.AddSink(sc.store)
	}
	e.Subscribe(sc.printEvent)
	sc.curGame = e
}

func (sc *ShellController) play(args []string) error {
	if sc.curGame == nil {
		return errors.New("no game in progress, start one with new")
	}
	if len(args) == 0 {
		return errors.New("usage: play <tile> [left|right|spinner] [branch]")
	}
	t, err := parseTile(args[0])
	if err != nil {
		return err
	}
	pos, br, err := parseTarget(args[1:])
	if err != nil {
		return err
	}
	return sc.curGame.MakeMove(humanSeat, t, pos, br)
}

func (sc *ShellController) hint() error {
	return sc.withGame(func(e *game.Engine) error {
		mv := e.SuggestMove(humanSeat)
		if mv == nil {
			sc.showMessage("no playable tile; draw or pass")
			return nil
		}
		sc.showMessage(fmt.Sprintf("try: play %s %s %s", mv.Tile, mv.Position, mv.Branch))
		return nil
	})
}

func (sc *ShellController) saveGame(path string) error {
	return sc.withGame(func(e *game.Engine) error {
		data, err := e.SaveState()
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		sc.showMessage("saved to " + path)
		return nil
	})
}

func (sc *ShellController) loadGame(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	e, err := game.LoadState(data)
	if err != nil {
		return err
	}
	sc.attach(e)
	sc.showMessage(renderState(e.GetState()))
	e.Resume()
	return nil
}

func (sc *ShellController) profile(name string) error {
	if sc.store == nil {
		return errors.New("profile db is not configured")
	}
	p, err := sc.store.Profile(name)
	if err != nil {
		return err
	}
	sc.showMessage(fmt.Sprintf(
		"%s: %d games, %d wins (%.0f%%), best score %d, %d perfect, %s at the table",
		p.Player, p.Games, p.Wins, p.WinRate()*100, p.BestScore, p.PerfectGames,
		p.TotalPlayed.Round(1e9)))
	return nil
}

func (sc *ShellController) showModes() {
	for _, info := range variant.List() {
		sc.showMessage(fmt.Sprintf("%-12s %s (%d-%d players, to %d)",
			info.ID, info.Name, info.MinPlayers, info.MaxPlayers, info.MaxScore))
	}
}

// parseTile accepts "6|4", "6-4" or "64".
func parseTile(s string) (tile.Tile, error) {
	s = strings.ReplaceAll(s, "|", " ")
	s = strings.ReplaceAll(s, "-", " ")
	if !strings.Contains(s, " ") && len(s) == 2 {
		s = s[:1] + " " + s[1:]
	}
	var l, r int
	if _, err := fmt.Sscanf(s, "%d %d", &l, &r); err != nil {
		return tile.Tile{}, fmt.Errorf("cannot read tile %q, use a form like 6|4", s)
	}
	return tile.Tile{Left: l, Right: r}, nil
}

func parseTarget(args []string) (board.Position, board.Branch, error) {
	pos := board.PositionRight
	br := board.BranchMain
	if len(args) > 0 {
		switch args[0] {
		case "left":
			pos = board.PositionLeft
		case "right":
			pos = board.PositionRight
		case "spinner":
			pos = board.PositionSpinner
		default:
			return pos, br, fmt.Errorf("unknown end %q", args[0])
		}
	}
	if len(args) > 1 {
		switch b := board.Branch(args[1]); b {
		case board.BranchMain, board.BranchLeft, board.BranchRight, board.BranchTop, board.BranchBottom:
			br = b
		default:
			return pos, br, fmt.Errorf("unknown branch %q", args[1])
		}
		if br != board.BranchMain {
			pos = board.PositionRight
		}
	}
	return pos, br, nil
}

const helpText = `Commands:
  new [variant] [players]   start a game (see modes)
  modes                     list game variants
  play <tile> [end] [branch]  place a tile, e.g. play 6|4 left
  draw                      draw from the boneyard
  pass                      pass the turn
  hint                      suggest a move
  s, state                  show the table
  save <file> / load <file> save or restore the game
  pause / resume / restart  control the match
  profile <name>            lifetime stats
  exit                      leave the table`
