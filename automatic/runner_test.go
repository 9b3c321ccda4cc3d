package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestRunPlaysBatchToCompletion(t *testing.T) {
	is := is.New(t)
	logPath := filepath.Join(t.TempDir(), "games.csv")

	stats, err := Run(context.Background(), Options{
		Variant:    "block",
		NumPlayers: 2,
		NumGames:   3,
		Threads:    2,
		MaxScore:   20,
		Seed:       99,
		LogFile:    logPath,
	})
	is.NoErr(err)
	is.Equal(stats.Games, 3)

	wins := 0
	for _, w := range stats.WinsBySeat {
		wins += w
	}
	is.Equal(wins, 3)
	is.True(stats.AverageRounds() >= 1)

	data, err := os.ReadFile(logPath)
	is.NoErr(err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	is.Equal(len(lines), 4) // header plus one row per game
	is.True(strings.HasPrefix(lines[0], "gameID,"))
}

func TestRunWithPersonalities(t *testing.T) {
	is := is.New(t)
	stats, err := Run(context.Background(), Options{
		Variant:       "allfives",
		NumPlayers:    2,
		NumGames:      2,
		MaxScore:      20,
		Seed:          7,
		Personalities: []string{"rookie", "veterano"},
	})
	is.NoErr(err)
	is.Equal(stats.Games, 2)
}

func TestRunRejectsEmptyBatch(t *testing.T) {
	is := is.New(t)
	_, err := Run(context.Background(), Options{Variant: "block", NumPlayers: 2})
	is.True(err != nil)
}

func TestRunRejectsUnknownPersonality(t *testing.T) {
	is := is.New(t)
	_, err := Run(context.Background(), Options{
		Variant:       "block",
		NumPlayers:    2,
		NumGames:      1,
		MaxScore:      10,
		Personalities: []string{"psychic"},
	})
	is.True(err != nil)
}
