package metrics

import (
    "time"

    "github.com/tiohsa/redmain-dashboard/internal/domain"
)

// Shared fixture helpers. day(0) is an arbitrary fixed Monday so velocity
// weeks line up predictably.
var base = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return base.AddDate(0, 0, n) }

func tp(t time.Time) *time.Time { return &t }

func ip(n int64) *int64 { return &n }

func fp(f float64) *float64 { return &f }

var testStatuses = []domain.Status{
    {ID: 1, Name: "New"},
    {ID: 2, Name: "InProgress"},
    {ID: 3, Name: "Done", IsClosed: true},
}

// threeIssueSnapshot is the canonical scenario: A created day 0 closed day 5,
// B created day 0 still open (InProgress, due day 8, assignee 1), C created
// day 3 still open (New, unassigned).
func threeIssueSnapshot() domain.Snapshot {
    return domain.Snapshot{
        Issues: []domain.Issue{
            {ID: 1, ProjectID: 1, Subject: "A", StatusID: 3, TrackerID: 1, TrackerName: "Bug",
                PriorityName: "Normal", PriorityPosition: 2,
                CreatedOn: day(0), UpdatedOn: day(5), ClosedOn: tp(day(5))},
            {ID: 2, ProjectID: 1, Subject: "B", StatusID: 2, TrackerID: 1, TrackerName: "Bug",
                PriorityName: "High", PriorityPosition: 3, AssigneeID: ip(1), AssigneeName: "Alice",
                CreatedOn: day(0), UpdatedOn: day(0), DueDate: tp(day(8))},
            {ID: 3, ProjectID: 1, Subject: "C", StatusID: 1, TrackerID: 2, TrackerName: "Feature",
                PriorityName: "Normal", PriorityPosition: 2,
                CreatedOn: day(3), UpdatedOn: day(3)},
        },
        Journals: map[int64][]domain.Journal{},
        Statuses: testStatuses,
        Projects: []domain.ProjectRef{{ID: 1, Name: "Root"}},
    }
}

func newTestEngine(snap domain.Snapshot, start, end, today int) *Engine {
    return New(snap, domain.Filter{}, day(start), day(end), day(today))
}
