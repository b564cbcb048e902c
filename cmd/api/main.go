/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package main

import (
    "context"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/tiohsa/redmain-dashboard/internal/adapters/gemini"
    "github.com/tiohsa/redmain-dashboard/internal/adapters/openai"
    "github.com/tiohsa/redmain-dashboard/internal/config"
    httpx "github.com/tiohsa/redmain-dashboard/internal/http"
    "github.com/tiohsa/redmain-dashboard/internal/jobs"
    "github.com/tiohsa/redmain-dashboard/internal/llm"
    "github.com/tiohsa/redmain-dashboard/internal/logger"
    "github.com/tiohsa/redmain-dashboard/internal/repo"
    "github.com/tiohsa/redmain-dashboard/internal/services"
)

func main() {
    cfg := config.Load()
    log := logger.New(cfg)
    ctx, cancel := context.WithCancel(context.Background())
    defer cancel()

    // DB
    db := repo.MustOpen(ctx, cfg, log)
    defer db.Close()
    repository := repo.NewRepository(db, log)

    // LLM providers
    providers := map[string]llm.Provider{
        "openai": openai.NewClient(cfg, log),
        "gemini": gemini.NewClient(cfg, log),
    }

    // Services
    svc := services.New(cfg, log, repository, providers)

    // HTTP server (Gin)
    router := httpx.NewRouter(cfg, log, svc)

    // Cron
    cr := jobs.NewCron(cfg, log, svc, repository)
    cr.Start()
    defer cr.Stop()

    // graceful shutdown
    errCh := make(chan error, 1)
    go func() { errCh <- router.Run(cfg.HTTPAddr) }()

    sigCh := make(chan os.Signal, 1)
    signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

    select {
    case <-sigCh:
        log.Info().Msg("shutting down...")
    case err := <-errCh:
        if err != nil { log.Error().Err(err).Msg("http server error") }
    }

    time.Sleep(500 * time.Millisecond)
}
