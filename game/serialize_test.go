package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/pmarrero/malecon/tile"
)

func TestSaveBeforeDealFails(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("block", 2))
	is.NoErr(err)
	_, err = e.SaveState()
	is.True(err != nil)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("allfives", 2))
	is.NoErr(err)
	e.StartGame()
	for i := 0; i < 5 && !e.gameOver; i++ {
		is.NoErr(e.PlayAITurn())
	}

	data, err := e.SaveState()
	is.NoErr(err)

	loaded, err := LoadState(data)
	is.NoErr(err)

	before := e.GetState()
	after := loaded.GetState()
	is.Equal(after.Variant, before.Variant)
	is.Equal(after.Round, before.Round)
	is.Equal(after.CurrentPlayer, before.CurrentPlayer)
	is.Equal(after.BoneyardCount, before.BoneyardCount)
	is.Equal(after.Board.EndValues(), before.Board.EndValues())
	is.Equal(loaded.TileCensus(), tile.SetSize(6))

	for i := range before.Players {
		is.Equal(after.Players[i].Score, before.Players[i].Score)
		is.Equal(len(after.Players[i].Hand), len(before.Players[i].Hand))
		for _, h := range before.Players[i].Hand {
			found := false
			for _, g := range after.Players[i].Hand {
				if g.Equals(h) {
					found = true
				}
			}
			is.True(found)
		}
	}

	// The loaded game must be playable to completion.
	winner, err := loaded.AutoPlay()
	is.NoErr(err)
	is.True(winner >= 0)
}

func TestLoadRoundTripWithSpinner(t *testing.T) {
	is := is.New(t)
	e, err := NewEngine(testConfig("cross", 4))
	is.NoErr(err)
	e.StartGame()
	for i := 0; i < 12 && !e.gameOver; i++ {
		is.NoErr(e.PlayAITurn())
	}

	data, err := e.SaveState()
	is.NoErr(err)
	loaded, err := LoadState(data)
	is.NoErr(err)

	is.Equal(loaded.GetState().Board.EndValues(), e.GetState().Board.EndValues())
	sp1, ok1 := e.board.Spinner()
	sp2, ok2 := loaded.board.Spinner()
	is.Equal(ok1, ok2)
	if ok1 {
		is.True(sp1.Equals(sp2))
	}
}

func savedFixture(t *testing.T) savedGame {
	t.Helper()
	is := is.New(t)
	e, err := NewEngine(testConfig("block", 2))
	is.NoErr(err)
	e.StartGame()
	is.NoErr(e.PlayAITurn())
	is.NoErr(e.PlayAITurn())
	data, err := e.SaveState()
	is.NoErr(err)
	var sg savedGame
	is.NoErr(json.Unmarshal(data, &sg))
	return sg
}

func loadSaved(t *testing.T, sg savedGame) error {
	t.Helper()
	data, err := json.Marshal(sg)
	if err != nil {
		t.Fatal(err)
	}
	_, err = LoadState(data)
	return err
}

func TestLoadRejectsGarbage(t *testing.T) {
	is := is.New(t)
	_, err := LoadState([]byte(`{"version": `))
	is.True(errors.Is(err, ErrMalformedSave))
}

func TestLoadRejectsUnknownVariant(t *testing.T) {
	is := is.New(t)
	sg := savedFixture(t)
	sg.Variant = "mahjong"
	is.True(errors.Is(loadSaved(t, sg), ErrMalformedSave))
}

func TestLoadRejectsDuplicateTile(t *testing.T) {
	is := is.New(t)
	sg := savedFixture(t)
	sg.Deck[0] = sg.Deck[1]
	is.True(errors.Is(loadSaved(t, sg), ErrMalformedSave))
}

func TestLoadRejectsMissingTiles(t *testing.T) {
	is := is.New(t)
	sg := savedFixture(t)
	sg.Deck = sg.Deck[1:]
	is.True(errors.Is(loadSaved(t, sg), ErrMalformedSave))
}

func TestLoadRejectsOutOfRangePips(t *testing.T) {
	is := is.New(t)
	sg := savedFixture(t)
	sg.Deck[0] = savedTile{Left: 9, Right: 9}
	is.True(errors.Is(loadSaved(t, sg), ErrMalformedSave))
}

func TestLoadRejectsBadCurrentPlayer(t *testing.T) {
	is := is.New(t)
	sg := savedFixture(t)
	sg.CurrentPlayer = 7
	is.True(errors.Is(loadSaved(t, sg), ErrMalformedSave))
}

func TestLoadRejectsImpossibleBoard(t *testing.T) {
	is := is.New(t)
	sg := savedFixture(t)
	if len(sg.Board.Tiles) < 2 {
		t.Skip("fixture board too small")
	}
	// Swap a deck tile into the second board slot so the chain no longer
	// connects. Counts stay balanced, only geometry breaks.
	first := sg.Board.Tiles[0].Tile.tile()
	swapped := false
	for i, st := range sg.Deck {
		cand := st.tile()
		if !cand.HasValue(first.Left) && !cand.HasValue(first.Right) {
			sg.Deck[i] = sg.Board.Tiles[1].Tile
			sg.Board.Tiles[1] = savedPlacement{Tile: st, X: 1}
			swapped = true
			break
		}
	}
	if !swapped {
		t.Skip("no disconnected tile available in deck")
	}
	is.True(errors.Is(loadSaved(t, sg), ErrMalformedSave))
}
