package main

import (
	"fmt"
	"net/http"
	"os"

	"git.sr.ht/~mpalumbo/notevault/internal/api"
	"git.sr.ht/~mpalumbo/notevault/internal/config"
	"git.sr.ht/~mpalumbo/notevault/internal/database"
	"git.sr.ht/~mpalumbo/notevault/internal/service"
	"git.sr.ht/~mpalumbo/notevault/internal/tokens"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	codec := tokens.NewCodec(cfg.JWTSecret, cfg.AccessTTL)
	svc := service.New(db, db, db, codec, cfg.RefreshTTL, cfg.BcryptCost, logger)
	router := api.New(svc, logger).Router()

	addr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info().Str("addr", addr).Msg("notevault listening")

	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
