package metrics

import (
    "bytes"
    "encoding/json"
    "testing"
    "time"

    "github.com/tiohsa/redmain-dashboard/internal/domain"
)

func TestSummary_IdenticalInputsYieldIdenticalBytes(t *testing.T) {
    snap := replaySnapshot()
    first, err := json.Marshal(New(snap, domain.Filter{}, day(0), day(10), day(10)).Summary())
    if err != nil { t.Fatalf("marshal: %v", err) }
    second, err := json.Marshal(New(snap, domain.Filter{}, day(0), day(10), day(10)).Summary())
    if err != nil { t.Fatalf("marshal: %v", err) }
    if !bytes.Equal(first, second) { t.Fatalf("summary output is not deterministic") }
}

func TestSummary_InvertedRangeYieldsEmptySeries(t *testing.T) {
    // end before start can reach the engine when only a future start date is
    // given and the end falls back to today
    sum := newTestEngine(threeIssueSnapshot(), 20, 10, 10).Summary()

    if len(sum.Burndown.Series) != 0 { t.Fatalf("burndown series = %d points, want 0", len(sum.Burndown.Series)) }
    if len(sum.Burndown.Ideal) != 0 { t.Fatalf("ideal = %d points, want 0", len(sum.Burndown.Ideal)) }
    if len(sum.DelayAnalysis.Trend) != 0 { t.Fatalf("trend = %d points, want 0", len(sum.DelayAnalysis.Trend)) }
    if len(sum.StatusDistribution.Dates) != 0 { t.Fatalf("dates = %d, want 0", len(sum.StatusDistribution.Dates)) }
    for _, s := range sum.StatusDistribution.Series {
        if len(s.Data) != 0 { t.Fatalf("status %s data = %d points, want 0", s.Name, len(s.Data)) }
    }
    if len(sum.CumulativeFlow.Series) != 0 { t.Fatalf("flow = %d points, want 0", len(sum.CumulativeFlow.Series)) }

    // the today-anchored aggregates are unaffected by the range
    if sum.KPIs.WIPCount != 2 { t.Fatalf("wip = %d, want 2", sum.KPIs.WIPCount) }
    if len(sum.Velocity.Series) != 13 { t.Fatalf("velocity = %d weeks, want 13", len(sum.Velocity.Series)) }
}

func TestIssueList_RowsCarryDelayAndStagnation(t *testing.T) {
    rows := newTestEngine(threeIssueSnapshot(), 0, 10, 10).IssueList()
    if len(rows) != 3 { t.Fatalf("rows = %d, want 3", len(rows)) }

    b := rows[1]
    if b.Subject != "B" || b.Status != "InProgress" || b.AssignedTo != "Alice" {
        t.Fatalf("row B = %+v", b)
    }
    if b.DueDate == nil || *b.DueDate != "2025-03-11" { t.Fatalf("row B due = %v", b.DueDate) }
    if b.DelayDays != 2 { t.Fatalf("row B delay = %d, want 2", b.DelayDays) }
    if b.StagnationDays != 10 { t.Fatalf("row B stagnation = %d, want 10", b.StagnationDays) }

    c := rows[2]
    if c.DueDate != nil || c.DelayDays != 0 { t.Fatalf("row C = %+v", c) }
    if c.StagnationDays != 7 { t.Fatalf("row C stagnation = %d, want 7", c.StagnationDays) }
}

func TestAvailableProjects(t *testing.T) {
    opts := newTestEngine(threeIssueSnapshot(), 0, 10, 10).AvailableProjects()
    if len(opts) != 1 || opts[0].ID != 1 || opts[0].Name != "Root" {
        t.Fatalf("options = %+v", opts)
    }
}

func TestDayOf_TruncatesToUTCDay(t *testing.T) {
    got := dayOf(base.Add(23*time.Hour + 59*time.Minute))
    if !got.Equal(base) { t.Fatalf("dayOf = %v, want %v", got, base) }
}

func TestRound1(t *testing.T) {
    if round1(33.333) != 33.3 { t.Fatalf("round1(33.333) = %v", round1(33.333)) }
    if round1(2.25) != 2.3 { t.Fatalf("round1(2.25) = %v", round1(2.25)) }
    if round1(0) != 0 { t.Fatalf("round1(0) = %v", round1(0)) }
}
