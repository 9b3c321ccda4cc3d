// Package automatic plays unattended computer-vs-computer matches for
// variant balancing and AI evaluation. Games run synchronously inside a
// worker pool; one CSV line per finished game goes to the optional log
// file.
package automatic

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/pmarrero/malecon/ai"
	"github.com/pmarrero/malecon/game"
)

var (
	GamesCounter *expvar.Int
	IsPlaying    *expvar.Int
)

func init() {
	GamesCounter = expvar.NewInt("autoGamesCounter")
	IsPlaying = expvar.NewInt("autoIsPlaying")
}

// seedStride separates per-game shuffle seeds derived from the base
// seed. Any odd constant works; this one is a large prime.
const seedStride = 0x9e3779b97f4a7c15

// Options configures one batch run.
type Options struct {
	Variant    string
	NumPlayers int
	NumGames   int
	Threads    int

	// MaxScore overrides the variant target when nonzero; short targets
	// keep batch runs fast.
	MaxScore int

	// Seed makes the whole batch reproducible. Zero seeds randomly.
	Seed uint64

	// Personalities names AI presets, assigned to seats in order and
	// cycled. Empty means the variant's baseline heuristic for all.
	Personalities []string

	// LogFile receives one CSV row per game when set.
	LogFile string
}

// Result is the digest of one finished game.
type Result struct {
	GameID  string
	Winner  int
	Rounds  int
	Scores  []int
	SixLove bool
}

// Stats aggregates a whole batch.
type Stats struct {
	Games       int
	WinsBySeat  map[int]int
	SixLoves    int
	TotalRounds int
}

// AverageRounds is the mean number of rounds per completed game.
func (s Stats) AverageRounds() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalRounds) / float64(s.Games)
}

// Run plays opts.NumGames matches and aggregates results. It is an
// error to start a second batch while one is running.
func Run(ctx context.Context, opts Options) (Stats, error) {
	if IsPlaying.Value() > 0 {
		return Stats{}, errors.New("a batch is already being played, wait for it to complete")
	}
	if opts.NumGames <= 0 {
		return Stats{}, errors.New("batch needs at least one game")
	}
	threads := opts.Threads
	if threads <= 0 {
		threads = 1
	}
	IsPlaying.Add(1)
	defer IsPlaying.Add(-1)

	var logfile *os.File
	logChan := make(chan string, 100)
	logDone := make(chan struct{})
	if opts.LogFile != "" {
		var err error
		logfile, err = os.Create(opts.LogFile)
		if err != nil {
			return Stats{}, err
		}
		go func() {
			defer close(logDone)
			logfile.WriteString("gameID,variant,winner,rounds,scores\n")
			for msg := range logChan {
				logfile.WriteString(msg)
			}
			logfile.Close()
		}()
	} else {
		close(logDone)
	}

	log.Debug().Str("variant", opts.Variant).Int("games", opts.NumGames).
		Int("threads", threads).Msg("starting batch")

	jobs := make(chan int)
	results := make(chan Result, threads)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < threads; w++ {
		g.Go(func() error {
			for idx := range jobs {
				res, err := playOne(opts, idx)
				if err != nil {
					return err
				}
				GamesCounter.Add(1)
				results <- res
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < opts.NumGames; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				log.Info().Msg("batch interrupted, draining")
				return ctx.Err()
			}
		}
		return nil
	})

	stats := Stats{WinsBySeat: make(map[int]int)}
	var collect sync.WaitGroup
	collect.Add(1)
	go func() {
		defer collect.Done()
		for res := range results {
			stats.Games++
			stats.WinsBySeat[res.Winner]++
			stats.TotalRounds += res.Rounds
			if res.SixLove {
				stats.SixLoves++
			}
			if opts.LogFile != "" {
				scores := ""
				for i, s := range res.Scores {
					if i > 0 {
						scores += " "
					}
					scores += fmt.Sprint(s)
				}
				logChan <- fmt.Sprintf("%s,%s,%d,%d,%s\n",
					res.GameID, opts.Variant, res.Winner, res.Rounds, scores)
			}
		}
	}()

	err := g.Wait()
	close(results)
	collect.Wait()
	close(logChan)
	<-logDone

	if err != nil {
		return stats, err
	}
	log.Info().Int("games", stats.Games).Float64("avgRounds", stats.AverageRounds()).
		Msg("batch finished")
	return stats, nil
}

// playOne runs a single synchronous match for job index idx.
func playOne(opts Options, idx int) (Result, error) {
	cfg := game.Config{
		Variant:     opts.Variant,
		MaxScore:    opts.MaxScore,
		Synchronous: true,
	}
	if opts.Seed != 0 {
		cfg.Seed = opts.Seed + uint64(idx)*seedStride
	}
	for i := 0; i < opts.NumPlayers; i++ {
		cfg.Players = append(cfg.Players, game.PlayerConfig{
			Name: fmt.Sprintf("Bot %d", i+1),
			AI:   true,
		})
	}
	e, err := game.NewEngine(cfg)
	if err != nil {
		return Result{}, err
	}
	if err := attachSelectors(e, opts, cfg.Seed); err != nil {
		return Result{}, err
	}

	rounds := 0
	sixLove := false
	e.Subscribe(func(ev game.Event) {
		switch ev.(type) {
		case game.RoundStartEvent:
			rounds++
		case game.SixLoveEvent:
			sixLove = true
		}
	})

	winner, err := e.AutoPlay()
	if err != nil {
		return Result{}, err
	}
	snap := e.GetState()
	scores := make([]int, len(snap.Players))
	for i, p := range snap.Players {
		scores[i] = p.Score
	}
	return Result{
		GameID:  e.GameID(),
		Winner:  winner,
		Rounds:  rounds,
		Scores:  scores,
		SixLove: sixLove,
	}, nil
}

func attachSelectors(e *game.Engine, opts Options, seed uint64) error {
	if len(opts.Personalities) == 0 {
		return nil
	}
	for i := 0; i < opts.NumPlayers; i++ {
		name := opts.Personalities[i%len(opts.Personalities)]
		p, err := ai.Preset(name)
		if err != nil {
			return err
		}
		e.SetSelector(i, ai.NewSelector(p, seed+uint64(i)+1))
	}
	return nil
}
