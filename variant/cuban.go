package variant

import (
	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
)

// Cuban is partner play on a double-nine set, ten tiles per hand. The
// first round must open with the double-nine; if it was not dealt (the
// double-nine set leaves fifteen tiles undealt) any tile may open.
type cubanMode struct {
	base
}

func newCuban() Mode {
	return &cubanMode{base{info: Info{
		ID:             "cuban",
		Name:           "Cuban",
		MinPlayers:     4,
		MaxPlayers:     4,
		MaxScore:       150,
		MaxPips:        9,
		TilesPerPlayer: 10,
		Teams:          true,
	}}}
}

func (m *cubanMode) openerRequired(s StateView) bool {
	if s.RoundNumber() != 1 {
		return false
	}
	top := tile.HighestDouble(m.info.MaxPips)
	for i := 0; i < s.NumPlayers(); i++ {
		for _, t := range s.PlayerAt(i).Hand() {
			if t.Equals(top) {
				return true
			}
		}
	}
	return false
}

func (m *cubanMode) ValidMoves(p PlayerView, b *board.Board, s StateView) []Move {
	if b.IsEmpty() && m.openerRequired(s) {
		top := tile.HighestDouble(m.info.MaxPips)
		for _, t := range p.Hand() {
			if t.Equals(top) {
				return []Move{{Tile: t, Position: board.PositionRight, Branch: board.BranchMain}}
			}
		}
		return nil
	}
	return m.base.ValidMoves(p, b, s)
}

func (m *cubanMode) ValidateMove(t tile.Tile, pos board.Position, br board.Branch, b *board.Board, s StateView) bool {
	if b.IsEmpty() && m.openerRequired(s) && !t.Equals(tile.HighestDouble(m.info.MaxPips)) {
		return false
	}
	return m.base.ValidateMove(t, pos, br, b, s)
}

func (m *cubanMode) ScoreRound(winner int, s StateView) int {
	return opposingTeamPips(winner, s)
}
