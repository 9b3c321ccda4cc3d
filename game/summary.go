package game

import "time"

// Summary is the per-player digest handed to profile consumers at game
// end. The engine knows nothing about how it is persisted.
type Summary struct {
	GameID      string
	Player      string
	Mode        string
	Won         bool
	Score       int
	TilesPlayed int
	GameTime    time.Duration
	PerfectGame bool
}

// SummarySink receives summaries when a game finishes.
type SummarySink interface {
	RecordSummary(Summary) error
}
