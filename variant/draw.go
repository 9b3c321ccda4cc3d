package variant

import (
	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
)

// Draw adds the boneyard to Block: a player with no legal move must
// draw until they can play or it empties; only then may they pass. Per
// move it pays the same running multiple-of-five total as All Fives.
// The engine tracks per-player draw counts against the configured cap.
type drawMode struct {
	base
}

func newDraw() Mode {
	return &drawMode{base{info: Info{
		ID:             "draw",
		Name:           "Draw",
		MinPlayers:     2,
		MaxPlayers:     4,
		MaxScore:       100,
		MaxPips:        6,
		TilesPerPlayer: 7,
		Drawable:       true,
	}}}
}

func (m *drawMode) ScoreMove(t tile.Tile, b *board.Board, s StateView) int {
	return fivesTotal(b)
}
