/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "context"
    "errors"
    "io"
    "net/http"
    "strconv"

    "github.com/gin-gonic/gin"
    "github.com/rs/zerolog"
    "github.com/tiohsa/redmain-dashboard/internal/config"
    "github.com/tiohsa/redmain-dashboard/internal/llm"
    "github.com/tiohsa/redmain-dashboard/internal/metrics"
    "github.com/tiohsa/redmain-dashboard/internal/repo"
    "github.com/tiohsa/redmain-dashboard/internal/services"
)

type service interface {
    DashboardData(ctx context.Context, projectID int64, p services.Params) (metrics.Summary, error)
    Analyze(ctx context.Context, projectID int64, p services.Params, provider, prompt string, preview bool) (llm.Result, error)
}

type Handlers struct {
    cfg config.Config
    log zerolog.Logger
    svc service
}

func NewHandlers(cfg config.Config, log zerolog.Logger, svc service) *Handlers {
    return &Handlers{cfg: cfg, log: log, svc: svc}
}

func (h *Handlers) Healthz(c *gin.Context) {
    c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handlers) DashboardData(c *gin.Context) {
    projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
        return
    }
    p, err := parseParams(c)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    sum, err := h.svc.DashboardData(c.Request.Context(), projectID, p)
    if err != nil {
        if errors.Is(err, repo.ErrProjectNotFound) {
            c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
            return
        }
        h.log.Error().Err(err).Int64("project", projectID).Msg("dashboard data failed")
        c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
        return
    }
    c.JSON(http.StatusOK, sum)
}

func (h *Handlers) AIAnalysis(c *gin.Context) {
    projectID, err := strconv.ParseInt(c.Param("project_id"), 10, 64)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project_id"})
        return
    }
    p, err := parseParams(c)
    if err != nil {
        c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
        return
    }
    var body struct {
        Provider string `json:"provider"`
        Prompt   string `json:"prompt"`
        Mode     string `json:"mode"`
    }
    // an absent body is fine, a syntactically broken one is a caller bug
    if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
        c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
        return
    }
    res, err := h.svc.Analyze(c.Request.Context(), projectID, p, body.Provider, body.Prompt, body.Mode == "preview")
    if err != nil {
        if errors.Is(err, repo.ErrProjectNotFound) {
            c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
            return
        }
        h.log.Error().Err(err).Int64("project", projectID).Msg("ai analysis failed")
        c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
        return
    }
    c.JSON(http.StatusOK, res)
}
