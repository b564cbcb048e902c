/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "github.com/gin-gonic/gin"
    "github.com/google/uuid"
    "github.com/rs/zerolog"
    "github.com/tiohsa/redmain-dashboard/internal/config"
)

func NewRouter(cfg config.Config, log zerolog.Logger, svc service) *gin.Engine {
    if cfg.AppEnv != "dev" { gin.SetMode(gin.ReleaseMode) }
    r := gin.New()
    r.Use(gin.Recovery())
    r.Use(func(c *gin.Context) {
        reqID := uuid.NewString()
        c.Set("request_id", reqID)
        c.Writer.Header().Set("X-Request-ID", reqID)
        c.Next()
        log.Info().Str("id", reqID).Str("m", c.Request.Method).Str("p", c.FullPath()).Int("s", c.Writer.Status()).Msg("http")
    })

    h := NewHandlers(cfg, log, svc)

    r.GET("/healthz", h.Healthz)
    r.GET("/projects/:project_id/dashboard", h.DashboardData)
    r.POST("/projects/:project_id/ai-analysis", h.AIAnalysis)

    return r
}
