package metrics

import (
    "testing"
    "time"

    "github.com/tiohsa/redmain-dashboard/internal/domain"
)

func TestStatusAsOf_NoJournalsKeepsCurrentStatus(t *testing.T) {
    if got := statusAsOf(2, nil, day(5)); got != 2 {
        t.Fatalf("statusAsOf = %d, want 2", got)
    }
}

func TestStatusAsOf_TransitionTakesEffectOnItsDay(t *testing.T) {
    js := []domain.Journal{
        {ID: 1, IssueID: 1, CreatedOn: day(2), OldStatusID: 1, NewStatusID: 2},
        {ID: 2, IssueID: 1, CreatedOn: day(6), OldStatusID: 2, NewStatusID: 3},
    }
    cases := []struct {
        d    int
        want int64
    }{
        {0, 1}, {1, 1},
        {2, 2}, {5, 2},
        {6, 3}, {10, 3},
    }
    for _, c := range cases {
        if got := statusAsOf(3, js, day(c.d)); got != c.want {
            t.Fatalf("statusAsOf(day %d) = %d, want %d", c.d, got, c.want)
        }
    }
}

func TestStatusAsOf_SameTimestampOrderedByID(t *testing.T) {
    ts := day(4)
    js := []domain.Journal{
        {ID: 10, IssueID: 1, CreatedOn: ts, OldStatusID: 1, NewStatusID: 2},
        {ID: 11, IssueID: 1, CreatedOn: ts, OldStatusID: 2, NewStatusID: 3},
    }
    if got := statusAsOf(3, js, day(3)); got != 1 {
        t.Fatalf("before the pair = %d, want 1", got)
    }
    if got := statusAsOf(3, js, day(4)); got != 3 {
        t.Fatalf("on the pair's day = %d, want 3", got)
    }
}

func replaySnapshot() domain.Snapshot {
    snap := threeIssueSnapshot()
    // A went New -> InProgress on day 2 and InProgress -> Done on day 5
    snap.Journals = map[int64][]domain.Journal{
        1: {
            {ID: 1, IssueID: 1, CreatedOn: day(2), OldStatusID: 1, NewStatusID: 2},
            {ID: 2, IssueID: 1, CreatedOn: day(5), OldStatusID: 2, NewStatusID: 3},
        },
    }
    return snap
}

func TestStatusDistribution_ReplaysHistory(t *testing.T) {
    sd := newTestEngine(replaySnapshot(), 0, 10, 10).StatusDistribution()

    if len(sd.Dates) != 11 { t.Fatalf("dates length = %d, want 11", len(sd.Dates)) }
    byName := map[string][]int{}
    for _, s := range sd.Series { byName[s.Name] = s.Data }

    // A: New days 0-1, InProgress days 2-4, Done from day 5.
    // B: InProgress throughout. C: New from day 3.
    wantNew := []int{1, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1}
    wantInProgress := []int{1, 1, 2, 2, 2, 1, 1, 1, 1, 1, 1}
    wantDone := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1}
    for i := range sd.Dates {
        if byName["New"][i] != wantNew[i] {
            t.Fatalf("New[%d] = %d, want %d", i, byName["New"][i], wantNew[i])
        }
        if byName["InProgress"][i] != wantInProgress[i] {
            t.Fatalf("InProgress[%d] = %d, want %d", i, byName["InProgress"][i], wantInProgress[i])
        }
        if byName["Done"][i] != wantDone[i] {
            t.Fatalf("Done[%d] = %d, want %d", i, byName["Done"][i], wantDone[i])
        }
    }
}

func TestStatusDistribution_DailySumsMatchIssueCount(t *testing.T) {
    // range starts after every creation date, so each day accounts for all 3
    sd := newTestEngine(replaySnapshot(), 3, 10, 10).StatusDistribution()
    for i := range sd.Dates {
        sum := 0
        for _, s := range sd.Series { sum += s.Data[i] }
        if sum != 3 { t.Fatalf("day %s sum = %d, want 3", sd.Dates[i], sum) }
    }
}

func TestStatusDistribution_ExcludesissuesBeforeCreation(t *testing.T) {
    sd := newTestEngine(threeIssueSnapshot(), 0, 10, 10).StatusDistribution()
    byName := map[string][]int{}
    for _, s := range sd.Series { byName[s.Name] = s.Data }
    // C (New) is created on day 3 and must not appear earlier
    if byName["New"][2] != 0 { t.Fatalf("New[2] = %d, want 0", byName["New"][2]) }
    if byName["New"][3] != 1 { t.Fatalf("New[3] = %d, want 1", byName["New"][3]) }
}

func TestCumulativeFlow_MatchesReplayByName(t *testing.T) {
    cf := newTestEngine(replaySnapshot(), 0, 10, 10).CumulativeFlow()
    if len(cf.Series) != 11 { t.Fatalf("series length = %d, want 11", len(cf.Series)) }
    if got := cf.Series[0].Statuses; got["New"] != 1 || got["InProgress"] != 1 || got["Done"] != 0 {
        t.Fatalf("day 0 = %v", got)
    }
    if got := cf.Series[10].Statuses; got["New"] != 1 || got["InProgress"] != 1 || got["Done"] != 1 {
        t.Fatalf("day 10 = %v", got)
    }
    wantNames := []string{"New", "InProgress", "Done"}
    for i, n := range cf.StatusNames {
        if n != wantNames[i] { t.Fatalf("status names = %v", cf.StatusNames) }
    }
}

func TestCumulativeFlow_UnmappedStatusFallsBackToUnknown(t *testing.T) {
    snap := domain.Snapshot{
        Statuses: testStatuses,
        Issues: []domain.Issue{
            {ID: 1, StatusID: 99, CreatedOn: day(0), UpdatedOn: day(0)},
        },
        Journals: map[int64][]domain.Journal{},
    }
    cf := newTestEngine(snap, 0, 2, 10).CumulativeFlow()
    if cf.Series[0].Statuses["Unknown"] != 1 {
        t.Fatalf("day 0 = %v, want Unknown: 1", cf.Series[0].Statuses)
    }
}

func TestCycleTime_PerStatusSojourn(t *testing.T) {
    created := day(0)
    closed := created.Add(6 * 24 * time.Hour)
    snap := domain.Snapshot{
        Statuses: testStatuses,
        Issues: []domain.Issue{
            {ID: 1, StatusID: 3, CreatedOn: created, UpdatedOn: closed, ClosedOn: tp(closed)},
        },
        Journals: map[int64][]domain.Journal{
            1: {
                {ID: 1, IssueID: 1, CreatedOn: created.Add(60 * time.Hour), OldStatusID: 1, NewStatusID: 2},
                {ID: 2, IssueID: 1, CreatedOn: created.Add(120 * time.Hour), OldStatusID: 2, NewStatusID: 3},
            },
        },
    }
    ct := newTestEngine(snap, 0, 10, 10).CycleTime()

    if len(ct.Statuses) != 3 { t.Fatalf("statuses length = %d, want 3", len(ct.Statuses)) }
    // 2.5 fractional days in InProgress, then 1.0 from the last transition to
    // closed_on; New has no recorded sample and reports 0
    want := []CycleStatus{
        {Name: "InProgress", AvgDays: 2.5, Count: 1},
        {Name: "Done", AvgDays: 1.0, Count: 1},
        {Name: "New", AvgDays: 0, Count: 0},
    }
    for i, w := range want {
        if ct.Statuses[i] != w { t.Fatalf("statuses[%d] = %+v, want %+v", i, ct.Statuses[i], w) }
    }
}

func TestCycleTime_IgnoresOpenIssuesAndJournallessClosures(t *testing.T) {
    snap := replaySnapshot()
    ct := newTestEngine(snap, 0, 10, 10).CycleTime()
    byName := map[string]CycleStatus{}
    for _, s := range ct.Statuses { byName[s.Name] = s }
    // only A is closed: InProgress day 2 -> day 5, Done day 5 -> closed day 5
    if byName["InProgress"].Count != 1 || byName["InProgress"].AvgDays != 3.0 {
        t.Fatalf("InProgress = %+v", byName["InProgress"])
    }
    if byName["Done"].Count != 1 || byName["Done"].AvgDays != 0.0 {
        t.Fatalf("Done = %+v", byName["Done"])
    }
}
