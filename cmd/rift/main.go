package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Yuan-Chun-Chih/my-card-game/internal/catalog"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/config"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/watchers"
	"github.com/Yuan-Chun-Chih/my-card-game/internal/game/zones"
)

var (
	configPath = flag.String("config", "", "path to configuration file")
	demo       = flag.Bool("demo", false, "play a bot-versus-bot match and print the result")
	replayPath = flag.String("replay", "", "verify a saved replay file")
	seed       = flag.Uint64("seed", 0, "match seed, overrides engine.seed")
	maxActions = flag.Int("max-actions", 5000, "action limit for -demo")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting rift",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	cat, err := loadCatalog(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal("failed to load card catalog", zap.Error(err))
	}
	logger.Info("card catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("cards", cat.Len()),
	)

	switch {
	case *replayPath != "":
		if err := verifyReplay(logger, cat, *replayPath); err != nil {
			logger.Fatal("replay verification failed", zap.Error(err))
		}
	case *demo:
		if err := runDemo(logger, cat, cfg); err != nil {
			logger.Fatal("demo match failed", zap.Error(err))
		}
	default:
		fmt.Fprintln(os.Stderr, "nothing to do: pass -demo or -replay <file>")
		flag.Usage()
		os.Exit(2)
	}
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return catalog.LoadFile(cfg.Catalog.Path)
	case config.SourcePostgres:
		poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("parse database url: %w", err)
		}
		poolCfg.MaxConns = cfg.Database.MaxConns
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		stats := pool.Stat()
		logger.Info("database connection pool initialized",
			zap.Int32("total_conns", stats.TotalConns()),
			zap.Int32("max_conns", stats.MaxConns()),
		)
		return catalog.LoadFromPostgres(ctx, pool)
	default:
		return catalog.Builtin(), nil
	}
}

func engineOptions(cfg config.EngineConfig) game.Options {
	return game.Options{
		StartingLife:            cfg.StartingLife,
		StartingHand:            cfg.StartingHand,
		TerritoryRevealTurns:    cfg.TerritoryRevealTurns,
		SecondPlayerEnergyBonus: cfg.SecondPlayerEnergyBonus,
	}
}

func runDemo(logger *zap.Logger, cat *catalog.Catalog, cfg *config.Config) error {
	var recorder *game.ReplayRecorder
	if cfg.Replay.Enabled {
		recorder = game.NewReplayRecorder(logger, cfg.Replay.Directory)
	}
	engine := game.NewEngine(logger, cat, engineOptions(cfg.Engine), recorder)

	matchSeed := cfg.Engine.Seed
	if *seed != 0 {
		matchSeed = *seed
	}
	if matchSeed == 0 {
		matchSeed = uint64(time.Now().UnixNano())
	}

	id, _, err := engine.StartMatch(game.StarterSetup(), matchSeed)
	if err != nil {
		return err
	}
	registry := watchers.NewStandardRegistry()
	if _, err := engine.Subscribe(id, registry.Listener()); err != nil {
		return err
	}

	st, err := engine.Autoplay(id, *maxActions)
	if err != nil {
		return err
	}
	if !st.Over() {
		logger.Warn("demo match hit the action limit", zap.Int("max_actions", *maxActions))
	}

	fmt.Printf("match %s (seed %d) after %d actions, round %d, era %d\n",
		id, matchSeed, st.Seq, st.Turn.Round(), st.Turn.Era())
	if st.Over() {
		fmt.Printf("winner: %s (%s)\n", st.Result.Winner, st.Result.Reason)
	}
	for _, playerID := range zones.PlayerIDs {
		p := st.Player(playerID)
		fmt.Printf("  %s: life %d, deck %d, hand %d", playerID, p.LifeCount(), len(p.Deck), len(p.Hand))
		for _, key := range registry.Keys() {
			fmt.Printf(", %s %d", key, registry.Watcher(key).Count(playerID))
		}
		fmt.Println()
	}
	fmt.Printf("checksum: %s\n", game.Checksum(st))

	return engine.EndMatch(id)
}

func verifyReplay(logger *zap.Logger, cat *catalog.Catalog, path string) error {
	j, err := game.LoadJournal(path)
	if err != nil {
		return err
	}
	final, err := game.Verify(logger, cat, j)
	if err != nil {
		return err
	}
	fmt.Printf("replay %s verified: %d actions, checksum %s\n", j.MatchID, j.Len(), game.Checksum(final))
	if final.Over() {
		fmt.Printf("winner: %s (%s)\n", final.Result.Winner, final.Result.Reason)
	}
	return nil
}
