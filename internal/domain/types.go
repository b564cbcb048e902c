package domain

import "time"

// Issue is a read-only record fetched from the tracker store. Optional
// attributes (assignee, due date, estimate) stay nil when unset.
type Issue struct {
    ID               int64
    ProjectID        int64
    ProjectName      string
    Subject          string
    StatusID         int64
    TrackerID        int64
    TrackerName      string
    PriorityID       int64
    PriorityName     string
    PriorityPosition int
    AssigneeID       *int64
    AssigneeName     string
    VersionID        *int64
    CreatedOn        time.Time
    UpdatedOn        time.Time
    ClosedOn         *time.Time
    DueDate          *time.Time
    EstimatedHours   *float64
    SpentHours       float64
}

type Status struct {
    ID       int64
    Name     string
    IsClosed bool
}

// Journal is one status transition from the issue's audit log.
type Journal struct {
    ID          int64
    IssueID     int64
    CreatedOn   time.Time
    OldStatusID int64
    NewStatusID int64
}

type Version struct {
    ID               int64
    Name             string
    Status           string
    DueDate          *time.Time
    CompletedPercent float64
    EstimatedHours   float64
    SpentHours       float64
}

type ProjectRef struct {
    ID   int64
    Name string
}

// Filter narrows the base issue set. A nil/empty field means no constraint.
type Filter struct {
    ProjectIDs []int64
    VersionID  *int64
    TrackerID  *int64
    AssigneeID *int64
}

// Snapshot is everything the metrics engine needs, fetched once per request.
type Snapshot struct {
    Issues   []Issue
    Journals map[int64][]Journal
    Statuses []Status
    Versions []Version
    Projects []ProjectRef
}
