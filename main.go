package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"ego/experiments"
	"ego/game"
	"ego/meta"
	"ego/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "YAML run configuration")
	mode := flag.String("mode", "analyze", "One of analyze, playout, compare, selfplay, throughput")
	setup := flag.String("setup", "", "Moves to set up the position, e.g. \"b E5 w D4\"")
	games := flag.Int("games", 10, "Number of self-play games")
	playoutLog := flag.String("playout-log", "", "File to append sampled playouts to as YAML")
	logEvery := flag.Int("log-every", 1000, "Log every n-th playout to -playout-log")
	flag.Parse()

	cfg := meta.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = meta.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = log.Logger.WithContext(ctx)

	err = run(ctx, cfg, *mode, *setup, *games, *playoutLog, *logEvery)
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func run(ctx context.Context, cfg meta.Config, mode, setup string, games int, playoutLog string, logEvery int) error {
	switch mode {
	case "compare":
		dir, err := experiments.RunPolicyComparison(ctx, cfg)
		if err == nil {
			log.Info().Msgf("results in %s", dir)
		}
		return err
	case "selfplay":
		dir, err := experiments.RunSelfPlay(ctx, cfg, games)
		if err == nil {
			log.Info().Msgf("results in %s", dir)
		}
		return err
	case "throughput":
		dir, err := experiments.RunThroughput(ctx, cfg)
		if err == nil {
			log.Info().Msgf("results in %s", dir)
		}
		return err
	}

	b, err := setupBoard(cfg, setup)
	if err != nil {
		return err
	}
	kind, err := searcher.ParsePolicyKind(cfg.Policy)
	if err != nil {
		return err
	}
	fmt.Println(b)

	switch mode {
	case "playout":
		seed := cfg.Seed
		if seed == 0 {
			seed = searcher.RandomSeed()
		}
		playoutCfg := searcher.PlayoutConfig{Mercy: cfg.Mercy, MercyThreshold: cfg.MercyThreshold}
		fmt.Print(searcher.ShowPlayout(b, kind, searcher.NewSource(seed), playoutCfg, cfg.AafFraction, cfg.LocalProbability))
		return nil
	case "analyze":
		return analyze(ctx, cfg, b, kind, playoutLog, logEvery)
	}
	return fmt.Errorf("unknown mode %q", mode)
}

func analyze(ctx context.Context, cfg meta.Config, b *game.Board, kind searcher.PolicyKind, playoutLog string, logEvery int) error {
	options := experiments.TrainerOptions(cfg)
	if playoutLog != "" {
		f, err := os.OpenFile(playoutLog, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open playout log: %w", err)
		}
		defer f.Close()
		options = append(options, searcher.WithPlayoutLog(f, logEvery))
	}

	stats, metric, err := searcher.NewTrainer(options...).Train(ctx, b, kind)
	if err != nil {
		return err
	}
	log.Info().Msgf("%d playouts in %s (%.0f/s), mean length %.1f, mean score %.2f",
		metric.Playouts, metric.Duration, metric.PlayoutsPerSecond(), metric.MeanLength(), stats.Unconditional().Mean())

	act := b.ActPlayer()
	fmt.Printf("move values for %s\n", act)
	fmt.Print(searcher.FormatGrid(searcher.MoveValues(b, stats, act, cfg.InfluenceScale)))
	fmt.Println("ownership")
	fmt.Print(searcher.FormatOwnership(searcher.Ownership(b, stats, 1)))
	return nil
}

// setupBoard plays "b E5 w D4 ..." style move lists on a fresh board.
func setupBoard(cfg meta.Config, setup string) (*game.Board, error) {
	b := game.NewBoard(cfg.BoardSize, cfg.Komi)
	fields := strings.Fields(setup)
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("setup needs player and vertex pairs: %q", setup)
	}
	for i := 0; i < len(fields); i += 2 {
		p, err := game.ParsePlayer(fields[i])
		if err != nil {
			return nil, err
		}
		v, err := game.ParseVertex(fields[i+1], b.Size())
		if err != nil {
			return nil, err
		}
		err = b.Play(p, v)
		if err != nil {
			return nil, fmt.Errorf("setup move %d: %w", i/2+1, err)
		}
	}
	return b, nil
}
