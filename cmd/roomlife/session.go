package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Earnest-Williams/roomlife/config"
	"github.com/Earnest-Williams/roomlife/internal/content"
	"github.com/Earnest-Williams/roomlife/internal/engine"
	"github.com/Earnest-Williams/roomlife/internal/state"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.LoadConfig(path)
}

func setupLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	logger, _ := cfg.Build()
	return logger
}

// startSession loads content, builds a session over the configured save
// path, and starts or resumes a game.
func startSession(cfg config.Config, logger *zap.Logger) (*engine.Session, error) {
	actions, items, spaces, err := content.Load(cfg.Content.Dir)
	if err != nil {
		return nil, err
	}

	storage := state.NewStorage(cfg.Game.SavePath)
	session := engine.NewSession(actions, items, spaces, storage, logger)

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if err := session.Start(seed); err != nil {
		return nil, err
	}
	return session, nil
}
