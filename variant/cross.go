package variant

import (
	"github.com/pmarrero/malecon/board"
)

// Cross opens the four-branch topology: the first double played as a
// spinner spawns chains in all four directions. Scoring follows Block.
type crossMode struct {
	base
}

func newCross() Mode {
	return &crossMode{base{info: Info{
		ID:             "cross",
		Name:           "Cross",
		MinPlayers:     2,
		MaxPlayers:     4,
		MaxScore:       100,
		MaxPips:        6,
		TilesPerPlayer: 7,
		Branching:      true,
	}}}
}

func (m *crossMode) ValidMoves(p PlayerView, b *board.Board, s StateView) []Move {
	if b.IsEmpty() {
		moves := openingMoves(p.Hand())
		return append(moves, spinnerMoves(p.Hand(), b)...)
	}
	return append(endMoves(p.Hand(), b), spinnerMoves(p.Hand(), b)...)
}
