/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package metrics

import "github.com/tiohsa/redmain-dashboard/internal/domain"

// Apply intersects the base issue set with the filter. Conditions combine
// with AND; an absent field imposes no constraint. The input slice is never
// mutated. Unknown ids just produce an empty result.
func Apply(issues []domain.Issue, f domain.Filter) []domain.Issue {
    out := make([]domain.Issue, 0, len(issues))
    var projects map[int64]bool
    if len(f.ProjectIDs) > 0 {
        projects = map[int64]bool{}
        for _, id := range f.ProjectIDs { projects[id] = true }
    }
    for _, iss := range issues {
        if projects != nil && !projects[iss.ProjectID] { continue }
        if f.VersionID != nil && (iss.VersionID == nil || *iss.VersionID != *f.VersionID) { continue }
        if f.TrackerID != nil && iss.TrackerID != *f.TrackerID { continue }
        if f.AssigneeID != nil && (iss.AssigneeID == nil || *iss.AssigneeID != *f.AssigneeID) { continue }
        out = append(out, iss)
    }
    return out
}
