package game

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
	"github.com/pmarrero/malecon/variant"
)

const saveVersion = 1

// The saved* types are the wire format and nothing else; engine types
// never carry json tags.

type savedTile struct {
	Left  int `json:"left"`
	Right int `json:"right"`
}

type savedPlacement struct {
	Tile        savedTile    `json:"tile"`
	X           int          `json:"x"`
	Y           int          `json:"y"`
	Orientation string       `json:"orientation"`
	Branch      board.Branch `json:"branch"`
	Held        bool         `json:"held,omitempty"`
}

type savedBoard struct {
	Tiles   []savedPlacement `json:"tiles"`
	Spinner *savedTile       `json:"spinner"`
}

type savedPlayer struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Hand   []savedTile `json:"hand"`
	Score  int         `json:"score"`
	IsAI   bool        `json:"isAI"`
	Avatar string      `json:"avatar"`
}

type savedConfig struct {
	Variant          string `json:"variant"`
	MaxScore         int    `json:"maxScore"`
	ThinkDelayMs     int64  `json:"thinkDelayMs"`
	MaxDrawsPerRound int    `json:"maxDrawsPerRound"`
	Seed             uint64 `json:"seed"`
	Synchronous      bool   `json:"synchronous"`
}

type savedGame struct {
	Version       int           `json:"version"`
	GameID        string        `json:"gameId"`
	Variant       string        `json:"variant"`
	Board         savedBoard    `json:"board"`
	Players       []savedPlayer `json:"players"`
	CurrentPlayer int           `json:"currentPlayerIndex"`
	Deck          []savedTile   `json:"deck"`
	Round         int           `json:"round"`
	Config        savedConfig   `json:"config"`
}

func toSaved(t tile.Tile) savedTile {
	return savedTile{Left: t.Left, Right: t.Right}
}

func (s savedTile) tile() tile.Tile {
	return tile.Tile{Left: s.Left, Right: s.Right}
}

// SaveState serializes the full match state to JSON. Saving mid-foot in
// chicken foot loses the foot counter; save between placements of
// ordinary turns.
func (e *Engine) SaveState() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.round == 0 {
		return nil, fmt.Errorf("nothing to save before the first deal")
	}

	sg := savedGame{
		Version:       saveVersion,
		GameID:        e.uid,
		Variant:       e.info.ID,
		CurrentPlayer: e.current,
		Round:         e.round,
		Config: savedConfig{
			Variant:          e.cfg.Variant,
			MaxScore:         e.maxScore,
			ThinkDelayMs:     e.cfg.ThinkDelay.Milliseconds(),
			MaxDrawsPerRound: e.cfg.MaxDrawsPerRound,
			Seed:             e.seed,
			Synchronous:      e.cfg.Synchronous,
		},
	}
	for _, pl := range e.board.Tiles() {
		sg.Board.Tiles = append(sg.Board.Tiles, savedPlacement{
			Tile:        toSaved(pl.Tile),
			X:           pl.X,
			Y:           pl.Y,
			Orientation: string(pl.Orientation),
			Branch:      pl.Branch,
			Held:        pl.Held,
		})
	}
	if sp, ok := e.board.Spinner(); ok {
		st := toSaved(sp)
		sg.Board.Spinner = &st
	}
	for _, p := range e.players {
		sp := savedPlayer{
			ID: p.id, Name: p.name, Score: p.score,
			IsAI: p.isAI, Avatar: p.avatar,
			Hand: []savedTile{},
		}
		for _, t := range p.hand {
			sp.Hand = append(sp.Hand, toSaved(t))
		}
		sg.Players = append(sg.Players, sp)
	}
	sg.Deck = []savedTile{}
	for _, t := range e.boneyard.Tiles() {
		sg.Deck = append(sg.Deck, toSaved(t))
	}
	return json.MarshalIndent(sg, "", "  ")
}

// LoadState rebuilds an engine from a SaveState payload. Any
// inconsistency yields ErrMalformedSave and no engine; a load never
// produces partial state.
func LoadState(data []byte) (*Engine, error) {
	var sg savedGame
	if err := json.Unmarshal(data, &sg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	if sg.Version != saveVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedSave, sg.Version)
	}
	mode, err := variant.New(sg.Variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	info := mode.Info()
	if n := len(sg.Players); n < info.MinPlayers || n > info.MaxPlayers {
		return nil, fmt.Errorf("%w: %d players for variant %s", ErrMalformedSave, n, info.ID)
	}
	if sg.CurrentPlayer < 0 || sg.CurrentPlayer >= len(sg.Players) {
		return nil, fmt.Errorf("%w: current player %d out of range", ErrMalformedSave, sg.CurrentPlayer)
	}
	if sg.Round < 1 {
		return nil, fmt.Errorf("%w: round %d", ErrMalformedSave, sg.Round)
	}
	if err := checkCensus(sg, info.MaxPips); err != nil {
		return nil, err
	}

	b, err := replayBoard(sg.Board, info.Branching)
	if err != nil {
		return nil, err
	}

	seed := sg.Config.Seed
	if seed == 0 {
		seed = tile.RandomSeed()
	}
	deck := make([]tile.Tile, 0, len(sg.Deck))
	for _, st := range sg.Deck {
		deck = append(deck, st.tile())
	}

	cfg := Config{
		Variant:          sg.Variant,
		MaxScore:         sg.Config.MaxScore,
		ThinkDelay:       time.Duration(sg.Config.ThinkDelayMs) * time.Millisecond,
		MaxDrawsPerRound: sg.Config.MaxDrawsPerRound,
		Seed:             sg.Config.Seed,
		Synchronous:      sg.Config.Synchronous,
	}
	for _, sp := range sg.Players {
		cfg.Players = append(cfg.Players, PlayerConfig{Name: sp.Name, AI: sp.IsAI})
	}

	e, err := NewEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	if sg.GameID != "" {
		e.uid = sg.GameID
	}
	e.board = b
	e.boneyard = tile.FromTiles(deck, info.MaxPips, seed)
	e.seed = seed
	e.round = sg.Round
	e.current = sg.CurrentPlayer
	e.started = time.Now()
	e.mode.StartRound(sg.Round)
	for i, sp := range sg.Players {
		p := e.players[i]
		p.avatar = sp.Avatar
		p.score = sp.Score
		for _, st := range sp.Hand {
			p.AddTile(st.tile())
		}
		p.SortHand()
	}
	return e, nil
}

// checkCensus verifies pip bounds, uniqueness and set conservation
// across deck, hands and board.
func checkCensus(sg savedGame, maxPips int) error {
	seen := make(map[tile.Tile]bool)
	note := func(st savedTile) error {
		t := st.tile()
		if t.Left < 0 || t.Left > maxPips || t.Right < 0 || t.Right > maxPips {
			return fmt.Errorf("%w: tile %s out of range", ErrMalformedSave, t)
		}
		if t.Left > t.Right {
			t = t.Flipped()
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate tile %s", ErrMalformedSave, t)
		}
		seen[t] = true
		return nil
	}
	for _, st := range sg.Deck {
		if err := note(st); err != nil {
			return err
		}
	}
	for _, sp := range sg.Players {
		for _, st := range sp.Hand {
			if err := note(st); err != nil {
				return err
			}
		}
	}
	for _, pl := range sg.Board.Tiles {
		if err := note(pl.Tile); err != nil {
			return err
		}
	}
	if got, want := len(seen), tile.SetSize(maxPips); got != want {
		return fmt.Errorf("%w: %d tiles accounted for, set has %d", ErrMalformedSave, got, want)
	}
	return nil
}

// replayBoard rebuilds the board by replaying the placement log. The
// board code re-derives open ends and layout, so a save that does not
// correspond to a legal sequence is rejected here.
func replayBoard(sb savedBoard, branching bool) (*board.Board, error) {
	b := board.New(branching)
	var spinner *tile.Tile
	if sb.Spinner != nil {
		sp := sb.Spinner.tile()
		spinner = &sp
	}
	for i, pl := range sb.Tiles {
		t := pl.Tile.tile()
		pos, br := replayTarget(b, pl, t, spinner)
		ok := false
		if pl.Held {
			ok = b.PlaceHolding(t, pos, br)
		} else {
			ok = b.PlaceTile(t, pos, br)
		}
		if !ok {
			return nil, fmt.Errorf("%w: board tile %d (%s) does not replay", ErrMalformedSave, i, t)
		}
	}
	return b, nil
}

func replayTarget(b *board.Board, pl savedPlacement, t tile.Tile, spinner *tile.Tile) (board.Position, board.Branch) {
	if _, has := b.Spinner(); !has && spinner != nil && t.Equals(*spinner) {
		return board.PositionSpinner, board.BranchMain
	}
	if pl.Branch != board.BranchMain {
		return board.PositionRight, pl.Branch
	}
	if pl.X < 0 {
		return board.PositionLeft, board.BranchMain
	}
	return board.PositionRight, board.BranchMain
}
