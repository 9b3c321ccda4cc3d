package variant

import (
	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
)

// All Fives awards the running end total whenever it is a nonzero
// multiple of five. A double end counts both its pips.
type allFivesMode struct {
	base
}

func newAllFives() Mode {
	return &allFivesMode{base{info: Info{
		ID:             "allfives",
		Name:           "All Fives",
		MinPlayers:     2,
		MaxPlayers:     4,
		MaxScore:       100,
		MaxPips:        6,
		TilesPerPlayer: 7,
	}}}
}

func (m *allFivesMode) ScoreMove(t tile.Tile, b *board.Board, s StateView) int {
	return fivesTotal(b)
}

func fivesTotal(b *board.Board) int {
	sum := 0
	if b.TileCount() == 1 {
		// Both ends are the same physical tile; count it once.
		sum = b.Tiles()[0].Tile.Value()
		if sum > 0 && sum%5 == 0 {
			return sum
		}
		return 0
	}
	for _, e := range b.Ends() {
		if e.IsDouble {
			sum += e.Value * 2
		} else {
			sum += e.Value
		}
	}
	if sum > 0 && sum%5 == 0 {
		return sum
	}
	return 0
}
