/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package services

import (
    "context"
    "strings"
    "time"

    "github.com/rs/zerolog"
    "github.com/tiohsa/redmain-dashboard/internal/config"
    "github.com/tiohsa/redmain-dashboard/internal/domain"
    "github.com/tiohsa/redmain-dashboard/internal/llm"
    "github.com/tiohsa/redmain-dashboard/internal/metrics"
)

// Store is the issue-tracking data source. One call returns the whole
// consistent snapshot for a project tree.
type Store interface {
    FetchSnapshot(ctx context.Context, projectID int64, f domain.Filter) (domain.Snapshot, error)
}

type Service struct {
    cfg       config.Config
    log       zerolog.Logger
    store     Store
    providers map[string]llm.Provider
}

func New(cfg config.Config, log zerolog.Logger, store Store, providers map[string]llm.Provider) *Service {
    return &Service{cfg: cfg, log: log, store: store, providers: providers}
}

// Params carries the optional request inputs. Zero time values fall back to
// the trailing 30 days through today.
type Params struct {
    Filter domain.Filter
    Start  time.Time
    End    time.Time
    Today  time.Time
}

func (p Params) resolve() (start, end, today time.Time) {
    today = p.Today
    if today.IsZero() { today = time.Now().UTC() }
    start = p.Start
    if start.IsZero() { start = today.AddDate(0, 0, -30) }
    end = p.End
    if end.IsZero() { end = today }
    return start, end, today
}

// DashboardData fetches one snapshot and derives the full summary payload
// from it. No I/O happens after the fetch, so the output is internally
// consistent even if the store mutates concurrently.
func (s *Service) DashboardData(ctx context.Context, projectID int64, p Params) (metrics.Summary, error) {
    start, end, today := p.resolve()
    snap, err := s.store.FetchSnapshot(ctx, projectID, p.Filter)
    if err != nil { return metrics.Summary{}, err }
    eng := metrics.New(snap, p.Filter, start, end, today)
    sum := eng.Summary()
    s.log.Debug().Int64("project", projectID).Int("issues", len(sum.Issues)).Msg("dashboard computed")
    return sum, nil
}

// Analyze builds the AI prompt from the summary and, unless preview is set,
// runs it through the selected provider. Provider failures degrade to a
// generic failure payload instead of an error so the dashboard stays up.
func (s *Service) Analyze(ctx context.Context, projectID int64, p Params, providerName, promptOverride string, preview bool) (llm.Result, error) {
    sum, err := s.DashboardData(ctx, projectID, p)
    if err != nil { return llm.Result{}, err }

    projectName := ""
    if len(sum.AvailableProjects) > 0 { projectName = sum.AvailableProjects[0].Name }
    prompt := strings.TrimSpace(promptOverride)
    if prompt == "" { prompt = llm.BuildPrompt(projectName, sum) }
    if preview { return llm.Result{Prompt: prompt}, nil }

    name := strings.TrimSpace(providerName)
    if name == "" { name = s.cfg.DefaultProvider }
    prov := s.providers[name]
    if prov == nil {
        s.log.Error().Str("provider", name).Msg("unknown llm provider")
        return llm.Result{Analysis: sum.Labels["ai_analysis_failed"], Error: true}, nil
    }
    analysis, err := prov.Analyze(ctx, prompt)
    if err != nil {
        s.log.Error().Err(err).Str("provider", name).Msg("llm analyze failed")
        return llm.Result{Analysis: sum.Labels["ai_analysis_failed"], Prompt: prompt, Error: true}, nil
    }
    return llm.Result{Analysis: analysis, Prompt: prompt}, nil
}

// LogSnapshot recomputes the headline KPIs for a project and logs them. Used
// by the cron heartbeat; nothing is persisted.
func (s *Service) LogSnapshot(ctx context.Context, projectID int64) error {
    sum, err := s.DashboardData(ctx, projectID, Params{})
    if err != nil { return err }
    k := sum.KPIs
    s.log.Info().
        Int64("project", projectID).
        Float64("completion_rate", k.CompletionRate).
        Int("delayed", k.DelayedCount).
        Int("wip", k.WIPCount).
        Int("throughput_7d", k.Throughput).
        Float64("avg_lead_time", k.AvgLeadTime).
        Str("assignee_concentration", k.AssigneeConcentration).
        Msg("kpi snapshot")
    return nil
}
