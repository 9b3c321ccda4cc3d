package game

import (
	"github.com/pmarrero/malecon/board"
	"github.com/pmarrero/malecon/tile"
)

// Event is the only sanctioned way collaborators observe state changes.
// Handlers run synchronously on the engine's goroutine and must not
// call back into mutating engine methods.
type Event interface {
	gameEvent()
}

type GameStartEvent struct {
	GameID  string
	Variant string
}

type MoveEvent struct {
	Player   int
	Tile     tile.Tile
	Position board.Position
	Branch   board.Branch
	Score    int
}

type ScoreEvent struct {
	Player int
	Score  int
}

type PassEvent struct {
	Player int
}

type DrawEvent struct {
	Player int
	Tile   tile.Tile
}

type DeckEmptyEvent struct{}

type BlockedEvent struct{}

type TurnEvent struct {
	Player int
}

type RoundStartEvent struct {
	Round int
}

type RoundEndEvent struct {
	// Winner is -1 for a washed (tied blocked) round.
	Winner int
	Score  int
	Round  int
}

type GameEndEvent struct {
	Winner int
}

// SixLoveEvent fires exactly once when a team completes six consecutive
// round wins.
type SixLoveEvent struct {
	Team int
}

type PauseEvent struct{}

type ResumeEvent struct{}

type RestartEvent struct{}

type ErrorEvent struct {
	Player  int
	Message string
}

func (GameStartEvent) gameEvent()  {}
func (MoveEvent) gameEvent()       {}
func (ScoreEvent) gameEvent()      {}
func (PassEvent) gameEvent()       {}
func (DrawEvent) gameEvent()       {}
func (DeckEmptyEvent) gameEvent()  {}
func (BlockedEvent) gameEvent()    {}
func (TurnEvent) gameEvent()       {}
func (RoundStartEvent) gameEvent() {}
func (RoundEndEvent) gameEvent()   {}
func (GameEndEvent) gameEvent()    {}
func (SixLoveEvent) gameEvent()    {}
func (PauseEvent) gameEvent()      {}
func (ResumeEvent) gameEvent()     {}
func (RestartEvent) gameEvent()    {}
func (ErrorEvent) gameEvent()      {}
