package game

import (
	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
)

// PlayerSnapshot is the per-seat slice of a state snapshot.
type PlayerSnapshot struct {
	Index     int
	Name      string
	Avatar    string
	IsAI      bool
	Team      int
	Hand      []tile.Tile
	Score     int
	RoundsWon int
}

// Snapshot is a point-in-time copy of the match for display. It shares
// nothing with the engine's live state.
type Snapshot struct {
	GameID        string
	Variant       string
	Round         int
	CurrentPlayer int
	Paused        bool
	GameOver      bool
	Winner        int
	BoneyardCount int
	Board         *board.Board
	Players       []PlayerSnapshot
}

// GetState returns a consistent snapshot of the whole match.
func (e *Engine) GetState() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	snap := Snapshot{
		GameID:        e.uid,
		Variant:       e.info.ID,
		Round:         e.round,
		CurrentPlayer: e.current,
		Paused:        e.paused,
		GameOver:      e.gameOver,
		Winner:        e.winner,
		BoneyardCount: e.boneyard.TilesRemaining(),
		Board:         e.board.Clone(),
	}
	for _, p := range e.players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			Index:     p.id,
			Name:      p.name,
			Avatar:    p.avatar,
			IsAI:      p.isAI,
			Team:      p.team,
			Hand:      p.Hand(),
			Score:     p.score,
			RoundsWon: p.roundsWon,
		})
	}
	return snap
}

// TileCensus counts every tile across hands, board and boneyard. The
// total must always equal the variant's full set size.
func (e *Engine) TileCensus() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	total := e.boneyard.TilesRemaining() + e.board.TileCount()
	for _, p := range e.players {
		total += p.HandSize()
	}
	return total
}
