package metrics

import (
    "testing"

    "github.com/tiohsa/redmain-dashboard/internal/domain"
)

func filterIssues() []domain.Issue {
    return []domain.Issue{
        {ID: 1, ProjectID: 1, TrackerID: 1, AssigneeID: ip(1), VersionID: ip(10)},
        {ID: 2, ProjectID: 1, TrackerID: 2, AssigneeID: ip(2)},
        {ID: 3, ProjectID: 2, TrackerID: 1},
    }
}

func ids(issues []domain.Issue) []int64 {
    out := make([]int64, 0, len(issues))
    for _, iss := range issues { out = append(out, iss.ID) }
    return out
}

func TestApply_EmptyFilterKeepsEverything(t *testing.T) {
    got := Apply(filterIssues(), domain.Filter{})
    if len(got) != 3 { t.Fatalf("len = %d, want 3", len(got)) }
}

func TestApply_ProjectSubset(t *testing.T) {
    got := ids(Apply(filterIssues(), domain.Filter{ProjectIDs: []int64{2}}))
    if len(got) != 1 || got[0] != 3 { t.Fatalf("ids = %v, want [3]", got) }
}

func TestApply_ConditionsCombineWithAND(t *testing.T) {
    f := domain.Filter{ProjectIDs: []int64{1, 2}, TrackerID: ip(1), AssigneeID: ip(1)}
    got := ids(Apply(filterIssues(), f))
    if len(got) != 1 || got[0] != 1 { t.Fatalf("ids = %v, want [1]", got) }
}

func TestApply_VersionFilterSkipsIssuesWithoutVersion(t *testing.T) {
    got := ids(Apply(filterIssues(), domain.Filter{VersionID: ip(10)}))
    if len(got) != 1 || got[0] != 1 { t.Fatalf("ids = %v, want [1]", got) }
}

func TestApply_UnknownIDYieldsEmptyNotError(t *testing.T) {
    got := Apply(filterIssues(), domain.Filter{TrackerID: ip(99)})
    if len(got) != 0 { t.Fatalf("len = %d, want 0", len(got)) }
}

func TestApply_DoesNotMutateInput(t *testing.T) {
    in := filterIssues()
    Apply(in, domain.Filter{ProjectIDs: []int64{1}})
    if len(in) != 3 || in[0].ID != 1 || in[2].ID != 3 {
        t.Fatalf("input mutated: %v", ids(in))
    }
}
