// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"

	"github.com/trailbook/trailbook/internal/config"
	"github.com/trailbook/trailbook/internal/credentials"
	handler "github.com/trailbook/trailbook/internal/handler/http"
	"github.com/trailbook/trailbook/internal/hooks"
	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/server"
	"github.com/trailbook/trailbook/internal/service"
	"github.com/trailbook/trailbook/internal/store"
	"github.com/trailbook/trailbook/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env file is fine; real environments set variables directly
	_ = godotenv.Load()

	log := logger.NewLogger("trailbook-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("server", cfg.Server).Any("workers", cfg.Workers).Msg("received configs")

	memStore := store.NewMemStore()
	defer memStore.Close()

	registry := hooks.Defaults()
	creds := credentials.NewManager(cfg.App.BcryptCost, cfg.App.ResetTokenTTL)

	services := service.NewServices(memStore, registry, creds, service.AuthConfig{
		TokenIssuer:   cfg.App.TokenIssuer,
		TokenSignKey:  cfg.App.TokenSignKey,
		TokenDuration: cfg.App.TokenDuration,
	})

	handlers := handler.NewHandler(services, log)

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	background := workers.NewWorkers(
		workers.NewTokenSweeper(memStore, cfg.Workers.SweepInterval, log),
	)
	background.Run(workerCtx)

	srv.RunServer()

	stopWorkers()
	background.Wait()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
