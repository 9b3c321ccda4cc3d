package game

import (
	"testing"

	"github.com/matryer/is"

	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
	"github.com/pmarrero/malecon/variant"
)

func testConfig(variantID string, n int) Config {
	cfg := Config{Variant: variantID, Synchronous: true, Seed: 42}
	for i := 0; i < n; i++ {
		cfg.Players = append(cfg.Players, PlayerConfig{AI: true})
	}
	return cfg
}

func collectEvents(e *Engine) *[]Event {
	var events []Event
	e.Subscribe(func(ev Event) {
		events = append(events, ev)
	})
	return &events
}

func TestNewEngineValidatesPlayerCount(t *testing.T) {
	is := is.New(t)
	_, err := NewEngine(testConfig("block", 1))
	is.True(err != nil)
	_, err = NewEngine(testConfig("block", 5))
	is.True(err != nil)
	_, err = NewEngine(testConfig("partner", 3))
	is.True(err != nil)
	_, err = NewEngine(testConfig("nonsense", 2))
	is.True(err != nil)
}

func TestStartDealsAndConservesTiles(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("block", 2))
	is.NoErr(err)
	e.StartGame()

	snap := e.GetState()
	is.Equal(snap.Round, 1)
	is.Equal(len(snap.Players[0].Hand), 7)
	is.Equal(len(snap.Players[1].Hand), 7)
	is.Equal(snap.BoneyardCount, 14)
	is.Equal(e.TileCensus(), tile.SetSize(6))
}

func TestFirstPlayerHoldsHighestDouble(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("block", 4))
	is.NoErr(err)
	e.StartGame()

	snap := e.GetState()
	bestVal, holder := -1, -1
	for _, p := range snap.Players {
		for _, h := range p.Hand {
			if h.IsDouble() && h.Value() > bestVal {
				bestVal = h.Value()
				holder = p.Index
			}
		}
	}
	if holder >= 0 {
		is.Equal(snap.CurrentPlayer, holder)
	}
}

func TestOutOfTurnRejected(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("block", 2))
	is.NoErr(err)
	events := collectEvents(e)
	e.StartGame()

	other := (e.current + 1) % 2
	badTile := e.players[other].hand[0]
	err = e.MakeMove(other, badTile, board.PositionRight, board.BranchMain)
	is.Equal(err, ErrOutOfTurn)

	sawError := false
	for _, ev := range *events {
		if ee, ok := ev.(ErrorEvent); ok && ee.Player == other {
			sawError = true
		}
	}
	is.True(sawError)
}

func TestPassWithPlayableTileRejected(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("block", 2))
	is.NoErr(err)
	e.StartGame()

	// On an empty board every tile is playable.
	is.Equal(e.Pass(e.current), ErrHasValidMove)
}

func TestMoveWithForeignTileRejected(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("block", 2))
	is.NoErr(err)
	e.StartGame()

	cur := e.current
	foreign := e.players[(cur+1)%2].hand[0]
	err = e.MakeMove(cur, foreign, board.PositionRight, board.BranchMain)
	is.Equal(err, ErrTileNotOwned)
	is.Equal(e.players[cur].HandSize(), 7)
	is.True(e.board.IsEmpty())
}

func TestValidMoveAlwaysApplies(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("allfives", 2))
	is.NoErr(err)
	e.StartGame()

	for i := 0; i < 20 && !e.gameOver; i++ {
		p := e.players[e.current]
		moves := e.mode.ValidMoves(p, e.board, e)
		if len(moves) == 0 {
			break
		}
		mv := moves[0]
		is.NoErr(e.MakeMove(e.current, mv.Tile, mv.Position, mv.Branch))
	}
	is.Equal(e.TileCensus(), tile.SetSize(6))
}

func TestBlockedRoundLowestPipsWins(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(Config{
		Variant: "block",
		Players: []PlayerConfig{{Name: "A"}, {Name: "B"}},
		Seed:    7, Synchronous: true,
	})
	is.NoErr(err)
	events := collectEvents(e)

	e.round = 1
	e.board.PlaceTile(tile.Tile{Left: 6, Right: 6}, board.PositionRight, board.BranchMain)
	e.players[0].hand = []tile.Tile{{Left: 5, Right: 4}, {Left: 3, Right: 2}} // 14 pips
	e.players[1].hand = []tile.Tile{{Left: 4, Right: 3}, {Left: 2, Right: 0}} // 9 pips
	e.current = 0

	is.NoErr(e.Pass(0))

	var roundEnd *RoundEndEvent
	sawBlocked := false
	for _, ev := range *events {
		switch v := ev.(type) {
		case BlockedEvent:
			sawBlocked = true
		case RoundEndEvent:
			roundEnd = &v
		}
	}
	is.True(sawBlocked)
	is.True(roundEnd != nil)
	is.Equal(roundEnd.Winner, 1)
	is.Equal(roundEnd.Score, 14)
	is.Equal(e.players[1].score, 14)
}

func TestBlockedRoundTieIsWashed(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(Config{
		Variant: "block",
		Players: []PlayerConfig{{Name: "A"}, {Name: "B"}},
		Seed:    7, Synchronous: true,
	})
	is.NoErr(err)
	events := collectEvents(e)

	e.round = 1
	e.board.PlaceTile(tile.Tile{Left: 6, Right: 6}, board.PositionRight, board.BranchMain)
	e.players[0].hand = []tile.Tile{{Left: 5, Right: 4}}                      // 9 pips
	e.players[1].hand = []tile.Tile{{Left: 4, Right: 3}, {Left: 2, Right: 0}} // 9 pips
	e.current = 0

	is.NoErr(e.Pass(0))

	var roundEnd *RoundEndEvent
	for _, ev := range *events {
		if v, ok := ev.(RoundEndEvent); ok {
			roundEnd = &v
		}
	}
	is.True(roundEnd != nil)
	is.Equal(roundEnd.Winner, -1)
	is.Equal(roundEnd.Score, 0)
	is.Equal(e.players[0].score, 0)
	is.Equal(e.players[1].score, 0)
}

func TestAutoPlayFinishesEveryVariant(t *testing.T) {
	for _, id := range variant.IDs() {
		id := id
		t.Run(id, func(t *testing.T) {
			is := is.New(t)
			info, err := variant.GetInfo(id)
			is.NoErr(err)
			n := info.MinPlayers
			if info.Teams {
				n = 4
			}
			cfg := testConfig(id, n)
			cfg.MaxScore = 30
			cfg.MaxDrawsPerRound = 20
			e, err := NewEngine(cfg)
			is.NoErr(err)

			winner, err := e.AutoPlay()
			is.NoErr(err)
			is.True(winner >= 0 && winner < n)
			is.True(e.gameOver)
			is.True(e.scoreFor(winner) >= 30)
			is.Equal(e.TileCensus(), tile.SetSize(info.MaxPips))
		})
	}
}

func TestGameEndEmitsSummaries(t *testing.T) {
	is := is.New(t)
	cfg := testConfig("block", 2)
	cfg.MaxScore = 20
	e, err := NewEngine(cfg)
	is.NoErr(err)

	var got []Summary
	e.AddSink(summarySinkFunc(func(s Summary) error {
		got = append(got, s)
		return nil
	}))

	winner, err := e.AutoPlay()
	is.NoErr(err)
	is.True(winner >= 0)
	is.Equal(len(got), 2)

	wins := 0
	for _, s := range got {
		is.Equal(s.GameID, e.uid)
		is.Equal(s.Mode, "block")
		if s.Won {
			wins++
			is.True(s.Score >= 20)
		}
	}
	is.Equal(wins, 1)
}

type summarySinkFunc func(Summary) error

func (f summarySinkFunc) RecordSummary(s Summary) error { return f(s) }

func TestPauseBlocksActions(t *testing.T) {
	is := is.New(t)
	cfg := Config{
		Variant: "block",
		Players: []PlayerConfig{{Name: "A"}, {Name: "B"}},
		Seed:    42, Synchronous: true,
	}
	e, err := NewEngine(cfg)
	is.NoErr(err)
	events := collectEvents(e)
	e.StartGame()

	e.Pause()
	cur := e.current
	own := e.players[cur].hand[0]
	is.Equal(e.MakeMove(cur, own, board.PositionRight, board.BranchMain), ErrPaused)

	e.Resume()
	is.NoErr(e.MakeMove(cur, own, board.PositionRight, board.BranchMain))

	sawPause, sawResume := false, false
	for _, ev := range *events {
		switch ev.(type) {
		case PauseEvent:
			sawPause = true
		case ResumeEvent:
			sawResume = true
		}
	}
	is.True(sawPause)
	is.True(sawResume)
}

func TestRestartResetsMatch(t *testing.T) {
	is := is.New(t)
	cfg := testConfig("sixlove", 4)
	cfg.MaxScore = 20
	e, err := NewEngine(cfg)
	is.NoErr(err)

	_, err = e.AutoPlay()
	is.NoErr(err)
	is.True(e.gameOver)

	is.NoErr(e.Restart())
	snap := e.GetState()
	is.Equal(snap.Round, 1)
	is.Equal(snap.GameOver, false)
	is.Equal(snap.Winner, -1)
	for _, p := range snap.Players {
		is.Equal(p.Score, 0)
		is.Equal(len(p.Hand), 7)
	}
	is.Equal(len(e.History()), 0)
}

func TestHistoryRecordsMoves(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("block", 2))
	is.NoErr(err)
	e.StartGame()

	cur := e.current
	mv := e.mode.ValidMoves(e.players[cur], e.board, e)[0]
	is.NoErr(e.MakeMove(cur, mv.Tile, mv.Position, mv.Branch))

	hist := e.History()
	is.Equal(len(hist), 1)
	is.Equal(hist[0].Player, cur)
	is.True(hist[0].Tile.Equals(mv.Tile))
}
