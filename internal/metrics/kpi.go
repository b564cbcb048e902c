/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package metrics

import (
    "gonum.org/v1/gonum/stat"
)

type KPISummary struct {
    CompletionRate        float64 `json:"completion_rate"`
    DelayedCount          int     `json:"delayed_count"`
    AvgLeadTime           float64 `json:"avg_lead_time"`
    WIPCount              int     `json:"wip_count"`
    Throughput            int     `json:"throughput"`
    DueDateRate           float64 `json:"due_date_rate"`
    UnsetDueDateCount     int     `json:"unset_due_date_count"`
    BottleneckRate        float64 `json:"bottleneck_rate"`
    StagnantCount         int     `json:"stagnant_count"`
    AssigneeConcentration string  `json:"assignee_concentration"`
    TopAssigneeCount      int     `json:"top_assignee_count"`
}

// KPISummary reduces the filtered set to the scalar dashboard KPIs as of the
// injected "today". Every rate is guarded against an empty denominator.
func (e *Engine) KPISummary() KPISummary {
    var k KPISummary
    total := len(e.issues)
    weekAgo := e.today.AddDate(0, 0, -7)

    closedCount := 0
    var leadDays []float64
    openCount := 0
    dueSet := 0
    assignees := map[int64]int{}
    for _, iss := range e.issues {
        if e.isClosed(iss) {
            closedCount++
            if iss.ClosedOn != nil {
                k.Throughput += boolToInt(!iss.ClosedOn.Before(weekAgo))
                leadDays = append(leadDays, float64(daysBetween(dayOf(iss.CreatedOn), dayOf(*iss.ClosedOn))))
            }
            continue
        }
        openCount++
        key := int64(0)
        if iss.AssigneeID != nil { key = *iss.AssigneeID }
        assignees[key]++
        if iss.DueDate != nil {
            dueSet++
            if dayOf(*iss.DueDate).Before(e.today) { k.DelayedCount++ }
        }
        if iss.UpdatedOn.Before(weekAgo) { k.StagnantCount++ }
    }

    if total > 0 { k.CompletionRate = round1(float64(closedCount) / float64(total) * 100) }
    if len(leadDays) > 0 { k.AvgLeadTime = round1(stat.Mean(leadDays, nil)) }
    k.WIPCount = openCount
    if openCount > 0 {
        k.DueDateRate = round1(float64(dueSet) / float64(openCount) * 100)
        k.BottleneckRate = round1(float64(k.StagnantCount) / float64(openCount) * 100)
    }
    k.UnsetDueDateCount = openCount - dueSet

    maxAssignee := 0
    for _, n := range assignees {
        if n > maxAssignee { maxAssignee = n }
    }
    k.TopAssigneeCount = maxAssignee
    // One person holding over half the open work, or more than 5 items,
    // counts as concentrated. Tiny sets (<=2 open) are always Normal.
    k.AssigneeConcentration = "Normal"
    if openCount > 2 && (float64(maxAssignee)/float64(openCount) > 0.5 || maxAssignee > 5) {
        k.AssigneeConcentration = "High"
    }
    return k
}

func boolToInt(b bool) int { if b { return 1 }; return 0 }
