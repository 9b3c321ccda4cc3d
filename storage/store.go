// Package storage persists game summaries and serves player profile
// aggregates from a local SQLite database.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pmarrero/malecon/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS summaries (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id      TEXT NOT NULL,
	player       TEXT NOT NULL,
	mode         TEXT NOT NULL,
	won          INTEGER NOT NULL,
	score        INTEGER NOT NULL,
	tiles_played INTEGER NOT NULL,
	game_time_ms INTEGER NOT NULL,
	perfect      INTEGER NOT NULL,
	created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_summaries_player ON summaries(player);
`

// Store wraps the profile database. It satisfies game.SummarySink so an
// engine can write straight into it.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	// One connection; the driver does not support concurrent writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// RecordSummary inserts one per-player game digest.
func (s *Store) RecordSummary(sum game.Summary) error {
	_, err := s.db.Exec(`
		INSERT INTO summaries
			(game_id, player, mode, won, score, tiles_played, game_time_ms, perfect)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.GameID, sum.Player, sum.Mode, boolInt(sum.Won), sum.Score,
		sum.TilesPlayed, sum.GameTime.Milliseconds(), boolInt(sum.PerfectGame),
	)
	return err
}

// Profile is the lifetime aggregate for one player name.
type Profile struct {
	Player       string
	Games        int
	Wins         int
	PerfectGames int
	TotalScore   int
	BestScore    int
	TotalPlayed  time.Duration
}

func (p Profile) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games)
}

// Profile aggregates every recorded game for player. An unknown player
// yields a zero profile, not an error.
func (s *Store) Profile(player string) (Profile, error) {
	row := s.db.QueryRow(`
		SELECT COUNT(*),
		       COALESCE(SUM(won), 0),
		       COALESCE(SUM(perfect), 0),
		       COALESCE(SUM(score), 0),
		       COALESCE(MAX(score), 0),
		       COALESCE(SUM(game_time_ms), 0)
		FROM summaries WHERE player = ?`, player)

	p := Profile{Player: player}
	var ms int64
	if err := row.Scan(&p.Games, &p.Wins, &p.PerfectGames, &p.TotalScore, &p.BestScore, &ms); err != nil {
		return Profile{}, err
	}
	p.TotalPlayed = time.Duration(ms) * time.Millisecond
	return p, nil
}

// Recent returns the latest recorded summaries, newest first.
func (s *Store) Recent(limit int) ([]game.Summary, error) {
	rows, err := s.db.Query(`
		SELECT game_id, player, mode, won, score, tiles_played, game_time_ms, perfect
		FROM summaries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []game.Summary
	for rows.Next() {
		var sum game.Summary
		var won, perfect int
		var ms int64
		if err := rows.Scan(&sum.GameID, &sum.Player, &sum.Mode, &won,
			&sum.Score, &sum.TilesPlayed, &ms, &perfect); err != nil {
			return nil, err
		}
		sum.Won = won != 0
		sum.PerfectGame = perfect != 0
		sum.GameTime = time.Duration(ms) * time.Millisecond
		out = append(out, sum)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
