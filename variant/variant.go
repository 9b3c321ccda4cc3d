// Package variant defines the rule-set contract shared by the nine
// dominoes variants and a registry for constructing them by id. A Mode
// is the rule authority for one variant: move legality, per-move
// scoring, and round scoring. Modes are queried by the game engine and
// never mutate game state outside the engine's controlled call sites.
package variant

import (
	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
)

// PlayerView is the read-only view of a player a mode is allowed to see.
type PlayerView interface {
	Index() int
	Hand() []tile.Tile
	TotalPips() int
	Score() int
	Team() int
}

// StateView is the read-only view of the game state passed to modes.
type StateView interface {
	NumPlayers() int
	PlayerAt(i int) PlayerView
	CurrentIndex() int
	RoundNumber() int
	BoneyardCount() int
}

// Move is a candidate placement: a tile and the end it targets.
type Move struct {
	Tile     tile.Tile
	Position board.Position
	Branch   board.Branch
}

// Info is the static metadata the factory exposes per variant.
type Info struct {
	ID             string
	Name           string
	MinPlayers     int
	MaxPlayers     int
	MaxScore       int
	MaxPips        int
	TilesPerPlayer int
	Drawable       bool
	Teams          bool
	Branching      bool
}

// Mode is the polymorphic rule contract. All query methods are total:
// illegality is an empty slice or false, never an error. One Mode value
// lives for a whole match, so variants with cross-round state (Six-Love
// streaks, Chicken Foot sub-state) keep it on the mode itself.
type Mode interface {
	Info() Info

	// StartRound resets any per-round sub-state.
	StartRound(round int)

	// ValidMoves enumerates every legal placement for the player.
	ValidMoves(p PlayerView, b *board.Board, s StateView) []Move

	// ValidateMove re-checks legality independently of ValidMoves; the
	// engine uses it as the authoritative gate before mutation.
	ValidateMove(t tile.Tile, pos board.Position, br board.Branch, b *board.Board, s StateView) bool

	// ApplyMove mutates the board for a validated move and advances any
	// mode sub-state. Returns false (no mutation) if the board rejects
	// the placement.
	ApplyMove(t tile.Tile, pos board.Position, br board.Branch, b *board.Board) bool

	// ScoreMove is the per-move award, computed after ApplyMove.
	ScoreMove(t tile.Tile, b *board.Board, s StateView) int

	// ScoreRound is the award credited to the round winner.
	ScoreRound(winner int, s StateView) int

	// RoundEnded records the round outcome on the mode. The return is
	// true only when a six-love streak completes.
	RoundEnded(winner int, s StateView) bool

	// MustDraw reports whether the player is required to draw before
	// passing is permitted.
	MustDraw(p PlayerView, b *board.Board, s StateView) bool

	// BestMove is the heuristic used for baseline AI play.
	BestMove(moves []Move, b *board.Board, s StateView) *Move
}
