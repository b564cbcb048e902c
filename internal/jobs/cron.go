package jobs

import (
    "context"
    "time"

    "github.com/robfig/cron/v3"
    "github.com/rs/zerolog"
    "github.com/tiohsa/redmain-dashboard/internal/config"
    "github.com/tiohsa/redmain-dashboard/internal/repo"
)

type service interface {
    LogSnapshot(ctx context.Context, projectID int64) error
}

// Cron periodically recomputes the headline KPIs for the configured projects
// and logs them. Read-only; the advisory lock keeps replicas from doing the
// same work at the same time.
type Cron struct {
    cfg  config.Config
    log  zerolog.Logger
    svc  service
    repo *repo.Repository
    c    *cron.Cron
}

func NewCron(cfg config.Config, log zerolog.Logger, svc service, r *repo.Repository) *Cron {
    loc, _ := time.LoadLocation(cfg.TZ)
    c := cron.New(cron.WithLocation(loc), cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)))
    cr := &Cron{cfg: cfg, log: log, svc: svc, repo: r, c: c}
    if cfg.SnapshotCron != "" && len(cfg.SnapshotProjectIDs) > 0 {
        _, _ = c.AddFunc(cfg.SnapshotCron, cr.snapshot)
    }
    return cr
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { cr.c.Stop() }

func (cr *Cron) snapshot() {
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute); defer cancel()
    const lockKey int64 = 727272
    ok, err := cr.repo.TryAdvisoryLock(ctx, lockKey)
    if err != nil { cr.log.Error().Err(err).Msg("cron: lock error"); return }
    if !ok { cr.log.Info().Msg("cron: already running elsewhere"); return }
    defer func() { _ = cr.repo.AdvisoryUnlock(context.Background(), lockKey) }()
    for _, id := range cr.cfg.SnapshotProjectIDs {
        if err := cr.svc.LogSnapshot(ctx, id); err != nil {
            cr.log.Error().Err(err).Int64("project", id).Msg("cron: snapshot failed")
        }
    }
}
