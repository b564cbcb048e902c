package repo

import (
    "context"
    "errors"
    "time"

    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/rs/zerolog"
    "github.com/tiohsa/redmain-dashboard/internal/config"
    "github.com/tiohsa/redmain-dashboard/internal/domain"
)

type DB struct {
    Pool *pgxpool.Pool
    log  zerolog.Logger
}

func MustOpen(ctx context.Context, cfg config.Config, log zerolog.Logger) *DB {
    pool, err := pgxpool.New(ctx, cfg.DBDSN)
    if err != nil { log.Fatal().Err(err).Msg("db connect failed") }
    ctx2, cancel := context.WithTimeout(ctx, 10*time.Second); defer cancel()
    if err := pool.Ping(ctx2); err != nil { log.Fatal().Err(err).Msg("db ping failed") }
    return &DB{Pool: pool, log: log}
}

func (d *DB) Close() { d.Pool.Close() }

type Repository struct {
    db  *DB
    log zerolog.Logger
}

func NewRepository(d *DB, log zerolog.Logger) *Repository { return &Repository{db: d, log: log} }

func (r *Repository) TryAdvisoryLock(ctx context.Context, key int64) (bool, error) {
    var ok bool
    err := r.db.Pool.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", key).Scan(&ok)
    return ok, err
}

func (r *Repository) AdvisoryUnlock(ctx context.Context, key int64) error {
    var ok bool
    err := r.db.Pool.QueryRow(ctx, "SELECT pg_advisory_unlock($1)", key).Scan(&ok)
    if !ok && err == nil { return errors.New("advisory unlock returned false") }
    return err
}

// ProjectTree returns the project and all of its descendants, parent first.
func (r *Repository) ProjectTree(ctx context.Context, rootID int64) ([]domain.ProjectRef, error) {
    const q = `
        WITH RECURSIVE tree AS (
            SELECT id, name, lft FROM projects WHERE id = $1
            UNION ALL
            SELECT p.id, p.name, p.lft FROM projects p JOIN tree t ON p.parent_id = t.id
        )
        SELECT id, name FROM tree ORDER BY lft`
    rows, err := r.db.Pool.Query(ctx, q, rootID)
    if err != nil { return nil, err }
    defer rows.Close()
    var out []domain.ProjectRef
    for rows.Next() {
        var p domain.ProjectRef
        if err := rows.Scan(&p.ID, &p.Name); err != nil { return nil, err }
        out = append(out, p)
    }
    return out, rows.Err()
}

// ListIssues loads every issue under the given projects in one query, with
// tracker/priority/assignee/project names joined in and spent hours summed
// from time entries. Server-side filters mirror the in-memory filter stage so
// the snapshot stays small.
func (r *Repository) ListIssues(ctx context.Context, projectIDs []int64, f domain.Filter) ([]domain.Issue, error) {
    const q = `
        SELECT i.id, i.project_id, p.name, i.subject, i.status_id,
               i.tracker_id, COALESCE(t.name, ''),
               i.priority_id, COALESCE(e.name, ''), COALESCE(e.position, 0),
               i.assigned_to_id,
               COALESCE(NULLIF(TRIM(CONCAT(u.firstname, ' ', u.lastname)), ''), u.login, ''),
               i.fixed_version_id,
               i.created_on, i.updated_on, i.closed_on, i.due_date, i.estimated_hours,
               COALESCE((SELECT SUM(te.hours) FROM time_entries te WHERE te.issue_id = i.id), 0)
        FROM issues i
        JOIN projects p ON p.id = i.project_id
        LEFT JOIN trackers t ON t.id = i.tracker_id
        LEFT JOIN enumerations e ON e.id = i.priority_id AND e.type = 'IssuePriority'
        LEFT JOIN users u ON u.id = i.assigned_to_id
        WHERE i.project_id = ANY($1)
          AND ($2::bigint IS NULL OR i.fixed_version_id = $2)
          AND ($3::bigint IS NULL OR i.tracker_id = $3)
          AND ($4::bigint IS NULL OR i.assigned_to_id = $4)
        ORDER BY i.id`
    rows, err := r.db.Pool.Query(ctx, q, projectIDs, f.VersionID, f.TrackerID, f.AssigneeID)
    if err != nil { return nil, err }
    defer rows.Close()
    var out []domain.Issue
    for rows.Next() {
        var iss domain.Issue
        var dueDate *time.Time
        if err := rows.Scan(&iss.ID, &iss.ProjectID, &iss.ProjectName, &iss.Subject, &iss.StatusID,
            &iss.TrackerID, &iss.TrackerName,
            &iss.PriorityID, &iss.PriorityName, &iss.PriorityPosition,
            &iss.AssigneeID, &iss.AssigneeName, &iss.VersionID,
            &iss.CreatedOn, &iss.UpdatedOn, &iss.ClosedOn, &dueDate, &iss.EstimatedHours,
            &iss.SpentHours); err != nil { return nil, err }
        iss.DueDate = dueDate
        out = append(out, iss)
    }
    return out, rows.Err()
}

func (r *Repository) ListStatuses(ctx context.Context) ([]domain.Status, error) {
    rows, err := r.db.Pool.Query(ctx, `SELECT s.id, s.name, s.is_closed FROM issue_statuses s ORDER BY s.position, s.id`)
    if err != nil { return nil, err }
    defer rows.Close()
    var out []domain.Status
    for rows.Next() {
        var st domain.Status
        if err := rows.Scan(&st.ID, &st.Name, &st.IsClosed); err != nil { return nil, err }
        out = append(out, st)
    }
    return out, rows.Err()
}

// ListStatusJournals loads the status-change audit records for a set of
// issues in one query, ordered ascending by (created_on, id) so same-second
// changes replay deterministically.
func (r *Repository) ListStatusJournals(ctx context.Context, issueIDs []int64) (map[int64][]domain.Journal, error) {
    out := map[int64][]domain.Journal{}
    if len(issueIDs) == 0 { return out, nil }
    const q = `
        SELECT j.id, j.journalized_id, j.created_on,
               COALESCE(NULLIF(d.old_value, '')::bigint, 0),
               COALESCE(NULLIF(d.value, '')::bigint, 0)
        FROM journals j
        JOIN journal_details d ON d.journal_id = j.id
        WHERE j.journalized_type = 'Issue'
          AND j.journalized_id = ANY($1)
          AND d.prop_key = 'status_id'
        ORDER BY j.created_on, j.id`
    rows, err := r.db.Pool.Query(ctx, q, issueIDs)
    if err != nil { return nil, err }
    defer rows.Close()
    for rows.Next() {
        var j domain.Journal
        if err := rows.Scan(&j.ID, &j.IssueID, &j.CreatedOn, &j.OldStatusID, &j.NewStatusID); err != nil { return nil, err }
        out[j.IssueID] = append(out[j.IssueID], j)
    }
    return out, rows.Err()
}

// ListOpenVersions returns the open versions owned anywhere in the project
// tree, with a completion percentage derived from their issues. The
// percentage is resolved here, once, so the engine sees a plain number with a
// 0 default.
func (r *Repository) ListOpenVersions(ctx context.Context, projectIDs []int64) ([]domain.Version, error) {
    const q = `
        SELECT v.id, v.name, v.status, v.effective_date,
               COALESCE(ROUND(100.0 * COUNT(i.id) FILTER (WHERE s.is_closed) / NULLIF(COUNT(i.id), 0), 1), 0),
               COALESCE(SUM(i.estimated_hours), 0),
               COALESCE(SUM((SELECT SUM(te.hours) FROM time_entries te WHERE te.issue_id = i.id)), 0)
        FROM versions v
        LEFT JOIN issues i ON i.fixed_version_id = v.id
        LEFT JOIN issue_statuses s ON s.id = i.status_id
        WHERE v.project_id = ANY($1) AND v.status = 'open'
        GROUP BY v.id, v.name, v.status, v.effective_date
        ORDER BY v.effective_date NULLS LAST, v.id`
    rows, err := r.db.Pool.Query(ctx, q, projectIDs)
    if err != nil { return nil, err }
    defer rows.Close()
    var out []domain.Version
    for rows.Next() {
        var v domain.Version
        if err := rows.Scan(&v.ID, &v.Name, &v.Status, &v.DueDate, &v.CompletedPercent, &v.EstimatedHours, &v.SpentHours); err != nil { return nil, err }
        out = append(out, v)
    }
    return out, rows.Err()
}

// FetchSnapshot performs the fixed set of bulk queries for one request and
// returns the consistent in-memory snapshot the engine computes from. Nothing
// is re-queried after this point.
func (r *Repository) FetchSnapshot(ctx context.Context, projectID int64, f domain.Filter) (domain.Snapshot, error) {
    var snap domain.Snapshot
    projects, err := r.ProjectTree(ctx, projectID)
    if err != nil { return snap, err }
    if len(projects) == 0 { return snap, ErrProjectNotFound }
    snap.Projects = projects

    ids := make([]int64, 0, len(projects))
    for _, p := range projects { ids = append(ids, p.ID) }
    if snap.Issues, err = r.ListIssues(ctx, ids, f); err != nil { return snap, err }
    if snap.Statuses, err = r.ListStatuses(ctx); err != nil { return snap, err }

    issueIDs := make([]int64, 0, len(snap.Issues))
    for _, iss := range snap.Issues { issueIDs = append(issueIDs, iss.ID) }
    if snap.Journals, err = r.ListStatusJournals(ctx, issueIDs); err != nil { return snap, err }
    if snap.Versions, err = r.ListOpenVersions(ctx, ids); err != nil { return snap, err }
    return snap, nil
}

var ErrProjectNotFound = errors.New("project not found")
