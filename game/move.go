package game

import (
	"time"

	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
)

// Move is an append-only history entry. It is never mutated after
// creation; the log exists for replay and debugging, not time travel.
type Move struct {
	Player    int
	Tile      tile.Tile
	Position  board.Position
	Branch    board.Branch
	Score     int
	Timestamp time.Time
}
