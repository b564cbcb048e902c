/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package metrics

import (
    "sort"
    "time"
)

type SeriesPoint struct {
    Date  string `json:"date"`
    Count int    `json:"count"`
}

type IdealPoint struct {
    Date  string  `json:"date"`
    Count float64 `json:"count"`
}

type Burndown struct {
    Series []SeriesPoint `json:"series"`
    Ideal  []IdealPoint  `json:"ideal"`
}

// Burndown counts, for each day in range, the issues already created and not
// yet closed. Closing day itself still counts as open through the end of the
// previous day (closed_on > d).
func (e *Engine) Burndown() Burndown {
    series := make([]SeriesPoint, 0, e.rangeLen())
    for d := e.start; !d.After(e.end); d = d.AddDate(0, 0, 1) {
        n := 0
        for _, iss := range e.issues {
            if !dayOf(iss.CreatedOn).After(d) && (iss.ClosedOn == nil || dayOf(*iss.ClosedOn).After(d)) { n++ }
        }
        series = append(series, SeriesPoint{Date: fmtDate(d), Count: n})
    }
    return Burndown{Series: series, Ideal: e.idealLine(series)}
}

// idealLine interpolates from the first day's open count down to zero across
// the range. Empty when there is nothing to draw or the span is a single day.
func (e *Engine) idealLine(series []SeriesPoint) []IdealPoint {
    if len(series) == 0 { return []IdealPoint{} }
    startValue := float64(series[0].Count)
    totalDays := daysBetween(e.start, e.end)
    if totalDays <= 0 { return []IdealPoint{} }
    out := make([]IdealPoint, 0, totalDays+1)
    for d := e.start; !d.After(e.end); d = d.AddDate(0, 0, 1) {
        passed := daysBetween(e.start, d)
        v := startValue - startValue*(float64(passed)/float64(totalDays))
        if v < 0 { v = 0 }
        out = append(out, IdealPoint{Date: fmtDate(d), Count: round1(v)})
    }
    return out
}

type HistogramBucket struct {
    Label string `json:"label"`
    Count int    `json:"count"`
}

// histogramBuckets distributes day counts over the fixed 0-3 / 4-7 / 8-14 /
// 15+ buckets used by both the delay-age and stagnation-age charts.
func histogramBuckets(days []int) []HistogramBucket {
    buckets := []HistogramBucket{{Label: "0-3"}, {Label: "4-7"}, {Label: "8-14"}, {Label: "15+"}}
    for _, d := range days {
        switch {
        case d <= 3:
            buckets[0].Count++
        case d <= 7:
            buckets[1].Count++
        case d <= 14:
            buckets[2].Count++
        default:
            buckets[3].Count++
        }
    }
    return buckets
}

type DelayAnalysis struct {
    Trend               []SeriesPoint     `json:"trend"`
    DelayHistogram      []HistogramBucket `json:"delay_histogram"`
    StagnationHistogram []HistogramBucket `json:"stagnation_histogram"`
}

// DelayAnalysis builds the late-issue trend over the range plus the delay-age
// and stagnation-age histograms for currently open issues. An issue due
// exactly on a day is not yet late on that day.
func (e *Engine) DelayAnalysis() DelayAnalysis {
    trend := make([]SeriesPoint, 0, e.rangeLen())
    for d := e.start; !d.After(e.end); d = d.AddDate(0, 0, 1) {
        n := 0
        for _, iss := range e.issues {
            if iss.DueDate == nil { continue }
            if !dayOf(iss.CreatedOn).After(d) && (iss.ClosedOn == nil || dayOf(*iss.ClosedOn).After(d)) && dayOf(*iss.DueDate).Before(d) { n++ }
        }
        trend = append(trend, SeriesPoint{Date: fmtDate(d), Count: n})
    }

    var delayDays, stagnationDays []int
    for _, iss := range e.issues {
        if e.isClosed(iss) { continue }
        if iss.DueDate != nil && dayOf(*iss.DueDate).Before(e.today) {
            delayDays = append(delayDays, daysBetween(dayOf(*iss.DueDate), e.today))
        }
        stagnationDays = append(stagnationDays, daysBetween(dayOf(iss.UpdatedOn), e.today))
    }
    return DelayAnalysis{
        Trend:               trend,
        DelayHistogram:      histogramBuckets(delayDays),
        StagnationHistogram: histogramBuckets(stagnationDays),
    }
}

type VelocityPoint struct {
    Week   string  `json:"week"`
    Count  int     `json:"count"`
    Points float64 `json:"points"`
}

type Velocity struct {
    Series []VelocityPoint `json:"series"`
}

// Velocity buckets closures into the trailing 12 full weeks plus the current
// one. Weeks begin on Monday.
func (e *Engine) Velocity() Velocity {
    currentWeek := weekStart(e.today)
    first := currentWeek.AddDate(0, 0, -12*7)

    type bucket struct {
        count int
        hours float64
    }
    byWeek := map[time.Time]*bucket{}
    for _, iss := range e.issues {
        if !e.isClosed(iss) || iss.ClosedOn == nil { continue }
        w := weekStart(dayOf(*iss.ClosedOn))
        if w.Before(first) { continue }
        b := byWeek[w]
        if b == nil { b = &bucket{}; byWeek[w] = b }
        b.count++
        if iss.EstimatedHours != nil { b.hours += *iss.EstimatedHours }
    }

    series := make([]VelocityPoint, 0, 13)
    for w := first; !w.After(currentWeek); w = w.AddDate(0, 0, 7) {
        p := VelocityPoint{Week: fmtDate(w)}
        if b, ok := byWeek[w]; ok {
            p.Count = b.count
            p.Points = round1(b.hours)
        }
        series = append(series, p)
    }
    return Velocity{Series: series}
}

// weekStart returns the Monday of t's week at day granularity.
func weekStart(t time.Time) time.Time {
    weekday := int(t.Weekday())
    if weekday == 0 { weekday = 7 }
    return dayOf(t).AddDate(0, 0, -(weekday - 1))
}

type WorkloadEntry struct {
    Name           string  `json:"name"`
    Count          int     `json:"count"`
    EstimatedHours float64 `json:"estimated_hours"`
    SpentHours     float64 `json:"spent_hours"`
}

type Workload struct {
    Series []WorkloadEntry `json:"series"`
}

// Workload groups open issues per assignee, busiest first.
func (e *Engine) Workload() Workload {
    byAssignee := map[string]*WorkloadEntry{}
    for _, iss := range e.issues {
        if e.isClosed(iss) { continue }
        name := iss.AssigneeName
        if iss.AssigneeID == nil || name == "" { name = labelUnassigned }
        w := byAssignee[name]
        if w == nil { w = &WorkloadEntry{Name: name}; byAssignee[name] = w }
        w.Count++
        if iss.EstimatedHours != nil { w.EstimatedHours += *iss.EstimatedHours }
        w.SpentHours += iss.SpentHours
    }
    series := make([]WorkloadEntry, 0, len(byAssignee))
    for _, w := range byAssignee {
        w.EstimatedHours = round1(w.EstimatedHours)
        w.SpentHours = round1(w.SpentHours)
        series = append(series, *w)
    }
    sort.Slice(series, func(i, j int) bool {
        if series[i].Count == series[j].Count { return series[i].Name < series[j].Name }
        return series[i].Count > series[j].Count
    })
    return Workload{Series: series}
}

type NameValue struct {
    Name  string `json:"name"`
    Value int    `json:"value"`
}

type Distribution struct {
    Series []NameValue `json:"series"`
}

func (e *Engine) TrackerDistribution() Distribution {
    counts := map[string]int{}
    for _, iss := range e.issues { counts[iss.TrackerName]++ }
    series := make([]NameValue, 0, len(counts))
    for name, n := range counts { series = append(series, NameValue{Name: name, Value: n}) }
    sort.Slice(series, func(i, j int) bool {
        if series[i].Value == series[j].Value { return series[i].Name < series[j].Name }
        return series[i].Value > series[j].Value
    })
    return Distribution{Series: series}
}

type PriorityEntry struct {
    Name     string `json:"name"`
    Value    int    `json:"value"`
    Position int    `json:"position"`
}

type PriorityDistribution struct {
    Series []PriorityEntry `json:"series"`
}

// PriorityDistribution is sorted by the administrative enumeration position,
// not alphabetically and not by count.
func (e *Engine) PriorityDistribution() PriorityDistribution {
    type key struct {
        name     string
        position int
    }
    counts := map[key]int{}
    for _, iss := range e.issues { counts[key{iss.PriorityName, iss.PriorityPosition}]++ }
    series := make([]PriorityEntry, 0, len(counts))
    for k, n := range counts { series = append(series, PriorityEntry{Name: k.name, Value: n, Position: k.position}) }
    sort.Slice(series, func(i, j int) bool {
        if series[i].Position == series[j].Position { return series[i].Name < series[j].Name }
        return series[i].Position < series[j].Position
    })
    return PriorityDistribution{Series: series}
}

type VersionEntry struct {
    ID             int64   `json:"id"`
    Name           string  `json:"name"`
    Status         string  `json:"status"`
    DueDate        *string `json:"due_date"`
    CompletedRate  float64 `json:"completed_rate"`
    EstimatedHours float64 `json:"estimated_hours"`
    SpentHours     float64 `json:"spent_hours"`
}

type VersionProgress struct {
    Versions []VersionEntry `json:"versions"`
}

// VersionProgress lists the open shared versions by due date, versions
// without one last.
func (e *Engine) VersionProgress() VersionProgress {
    type sortable struct {
        entry VersionEntry
        due   time.Time
    }
    farFuture := e.today.AddDate(10, 0, 0)
    items := make([]sortable, 0, len(e.versions))
    for _, v := range e.versions {
        entry := VersionEntry{
            ID:             v.ID,
            Name:           v.Name,
            Status:         v.Status,
            CompletedRate:  v.CompletedPercent,
            EstimatedHours: v.EstimatedHours,
            SpentHours:     v.SpentHours,
        }
        due := farFuture
        if v.DueDate != nil {
            s := fmtDate(*v.DueDate)
            entry.DueDate = &s
            due = dayOf(*v.DueDate)
        }
        items = append(items, sortable{entry: entry, due: due})
    }
    sort.Slice(items, func(i, j int) bool {
        if items[i].due.Equal(items[j].due) { return items[i].entry.Name < items[j].entry.Name }
        return items[i].due.Before(items[j].due)
    })
    versions := make([]VersionEntry, 0, len(items))
    for _, it := range items { versions = append(versions, it.entry) }
    return VersionProgress{Versions: versions}
}
