package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pmarrero/malecon/automatic"
	"github.com/pmarrero/malecon/config"
	"github.com/pmarrero/malecon/shell"
)

var (
	configPath  = flag.String("config", "", "path to a config file")
	profilePath = flag.String("profilepath", "", "path for CPU profile")

	autoVariant = flag.String("autoplay", "", "play a variant unattended instead of opening the shell")
	autoGames   = flag.Int("games", 100, "number of autoplay games")
	autoPlayers = flag.Int("players", 2, "number of autoplay seats")
	autoSeed    = flag.Uint64("seed", 0, "autoplay shuffle seed, 0 for random")
	autoLog     = flag.String("gamelog", "", "CSV file for per-game autoplay results")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *profilePath != "" {
		f, err := os.Create(*profilePath)
		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *autoVariant != "" {
		runAutoplay(cfg)
		return
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	sc := shell.NewShellController(cfg)
	go sc.Loop(sig)

	<-sig
	log.Info().Msg("got quit signal...")
}

func runAutoplay(cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	stats, err := automatic.Run(ctx, automatic.Options{
		Variant:       *autoVariant,
		NumPlayers:    *autoPlayers,
		NumGames:      *autoGames,
		Threads:       cfg.AutoplayThreads,
		MaxScore:      cfg.MaxScore,
		Seed:          *autoSeed,
		Personalities: []string{cfg.Personality},
		LogFile:       *autoLog,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	fmt.Printf("%d games, %.1f rounds on average, %d six-loves\n",
		stats.Games, stats.AverageRounds(), stats.SixLoves)
	for seat, wins := range stats.WinsBySeat {
		fmt.Printf("  seat %d: %d wins\n", seat, wins)
	}
}
