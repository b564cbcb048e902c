/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package metrics

import (
    "math"
    "sort"
    "time"

    "github.com/tiohsa/redmain-dashboard/internal/domain"
)

// Engine computes every dashboard aggregate from one consistent snapshot.
// It holds no mutable state after construction and reads no ambient clock:
// "today" and the date range are injected, so identical inputs always yield
// identical output.
type Engine struct {
    issues   []domain.Issue
    journals map[int64][]domain.Journal
    statuses []domain.Status
    versions []domain.Version
    projects []domain.ProjectRef
    closed   map[int64]bool
    names    map[int64]string
    today    time.Time
    start    time.Time
    end      time.Time
}

// New filters the snapshot and prepares lookup tables. start/end bound the
// time-series builders; today anchors the scalar KPIs. All three are
// normalized to day granularity.
func New(snap domain.Snapshot, f domain.Filter, start, end, today time.Time) *Engine {
    e := &Engine{
        issues:   Apply(snap.Issues, f),
        journals: map[int64][]domain.Journal{},
        statuses: snap.Statuses,
        versions: snap.Versions,
        projects: snap.Projects,
        closed:   map[int64]bool{},
        names:    map[int64]string{},
        today:    dayOf(today),
        start:    dayOf(start),
        end:      dayOf(end),
    }
    for _, st := range snap.Statuses {
        e.closed[st.ID] = st.IsClosed
        e.names[st.ID] = st.Name
    }
    // Transitions sorted ascending by (timestamp, journal id); the id is the
    // deterministic tie-break when several changes share a timestamp.
    for _, iss := range e.issues {
        js := append([]domain.Journal(nil), snap.Journals[iss.ID]...)
        sort.Slice(js, func(i, j int) bool {
            if js[i].CreatedOn.Equal(js[j].CreatedOn) { return js[i].ID < js[j].ID }
            return js[i].CreatedOn.Before(js[j].CreatedOn)
        })
        e.journals[iss.ID] = js
    }
    return e
}

// Summary assembles every aggregate into the single payload consumed by the
// rendering layer.
type Summary struct {
    KPIs                 KPISummary           `json:"kpis"`
    Burndown             Burndown             `json:"burndown"`
    StatusDistribution   StatusDistribution   `json:"status_distribution"`
    Workload             Workload             `json:"workload"`
    DelayAnalysis        DelayAnalysis        `json:"delay_analysis"`
    TrackerDistribution  Distribution         `json:"tracker_distribution"`
    VersionProgress      VersionProgress      `json:"version_progress"`
    Velocity             Velocity             `json:"velocity"`
    PriorityDistribution PriorityDistribution `json:"priority_distribution"`
    CumulativeFlow       CumulativeFlow       `json:"cumulative_flow"`
    CycleTime            CycleTime            `json:"cycle_time"`
    Issues               []IssueRow           `json:"issues"`
    AvailableProjects    []ProjectOption      `json:"available_projects"`
    Labels               map[string]string    `json:"labels"`
}

type IssueRow struct {
    ID             int64   `json:"id"`
    ProjectName    string  `json:"project_name"`
    Subject        string  `json:"subject"`
    Status         string  `json:"status"`
    AssignedTo     string  `json:"assigned_to"`
    DueDate        *string `json:"due_date"`
    DelayDays      int     `json:"delay_days"`
    StagnationDays int     `json:"stagnation_days"`
}

type ProjectOption struct {
    ID   int64  `json:"id"`
    Name string `json:"name"`
}

func (e *Engine) Summary() Summary {
    return Summary{
        KPIs:                 e.KPISummary(),
        Burndown:             e.Burndown(),
        StatusDistribution:   e.StatusDistribution(),
        Workload:             e.Workload(),
        DelayAnalysis:        e.DelayAnalysis(),
        TrackerDistribution:  e.TrackerDistribution(),
        VersionProgress:      e.VersionProgress(),
        Velocity:             e.Velocity(),
        PriorityDistribution: e.PriorityDistribution(),
        CumulativeFlow:       e.CumulativeFlow(),
        CycleTime:            e.CycleTime(),
        Issues:               e.IssueList(),
        AvailableProjects:    e.AvailableProjects(),
        Labels:               Labels(),
    }
}

// IssueList exposes the filtered issues as flat rows for the dashboard table
// and the AI prompt.
func (e *Engine) IssueList() []IssueRow {
    rows := make([]IssueRow, 0, len(e.issues))
    for _, iss := range e.issues {
        delay := 0
        if iss.DueDate != nil && dayOf(*iss.DueDate).Before(e.today) {
            delay = daysBetween(dayOf(*iss.DueDate), e.today)
        }
        var due *string
        if iss.DueDate != nil { s := fmtDate(*iss.DueDate); due = &s }
        rows = append(rows, IssueRow{
            ID:             iss.ID,
            ProjectName:    iss.ProjectName,
            Subject:        iss.Subject,
            Status:         e.statusName(iss.StatusID),
            AssignedTo:     iss.AssigneeName,
            DueDate:        due,
            DelayDays:      delay,
            StagnationDays: daysBetween(dayOf(iss.UpdatedOn), e.today),
        })
    }
    return rows
}

func (e *Engine) AvailableProjects() []ProjectOption {
    out := make([]ProjectOption, 0, len(e.projects))
    for _, p := range e.projects { out = append(out, ProjectOption{ID: p.ID, Name: p.Name}) }
    return out
}

func (e *Engine) isClosed(iss domain.Issue) bool { return e.closed[iss.StatusID] }

func (e *Engine) statusName(id int64) string {
    if n, ok := e.names[id]; ok { return n }
    return statusUnknown
}

const statusUnknown = "Unknown"

// dayOf truncates a timestamp to its UTC calendar day.
func dayOf(t time.Time) time.Time {
    t = t.UTC()
    return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int { return int(to.Sub(from).Hours() / 24) }

// rangeLen is the number of days in the inclusive start..end range. An
// inverted range has zero days, so every daily series degrades to empty
// instead of failing.
func (e *Engine) rangeLen() int {
    n := daysBetween(e.start, e.end) + 1
    if n < 0 { return 0 }
    return n
}

func fmtDate(t time.Time) string { return dayOf(t).Format("2006-01-02") }

func round1(v float64) float64 { return math.Round(v*10) / 10 }
