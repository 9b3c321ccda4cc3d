package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarrero/malecon/game"
)

var _ game.SummarySink = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndProfile(t *testing.T) {
	s := openTestStore(t)

	sums := []game.Summary{
		{GameID: "g1", Player: "Maria", Mode: "block", Won: true, Score: 105, TilesPlayed: 21, GameTime: 2 * time.Minute},
		{GameID: "g2", Player: "Maria", Mode: "allfives", Won: false, Score: 40, TilesPlayed: 15, GameTime: time.Minute},
		{GameID: "g3", Player: "Maria", Mode: "block", Won: true, Score: 101, TilesPlayed: 18, GameTime: time.Minute, PerfectGame: true},
		{GameID: "g3", Player: "Pedro", Mode: "block", Won: false, Score: 0, TilesPlayed: 12, GameTime: time.Minute},
	}
	for _, sum := range sums {
		require.NoError(t, s.RecordSummary(sum))
	}

	p, err := s.Profile("Maria")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Games)
	assert.Equal(t, 2, p.Wins)
	assert.Equal(t, 1, p.PerfectGames)
	assert.Equal(t, 246, p.TotalScore)
	assert.Equal(t, 105, p.BestScore)
	assert.Equal(t, 4*time.Minute, p.TotalPlayed)
	assert.InDelta(t, 0.667, p.WinRate(), 0.001)
}

func TestProfileUnknownPlayerIsZero(t *testing.T) {
	s := openTestStore(t)
	p, err := s.Profile("nobody")
	require.NoError(t, err)
	assert.Zero(t, p.Games)
	assert.Zero(t, p.WinRate())
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	s := openTestStore(t)
	for _, id := range []string{"g1", "g2", "g3"} {
		require.NoError(t, s.RecordSummary(game.Summary{GameID: id, Player: "X", Mode: "block"}))
	}
	recent, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "g3", recent[0].GameID)
	assert.Equal(t, "g2", recent[1].GameID)
}
