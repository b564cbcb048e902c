/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package metrics

import (
    "sort"
    "time"

    "github.com/tiohsa/redmain-dashboard/internal/domain"
    "gonum.org/v1/gonum/stat"
)

// Status is not stored historically; only the current value plus the journal
// of (old, new) transitions survives. statusAsOf reconstructs the value at
// the end of day d: the first transition strictly after d still carries the
// state that was live on d in its old value, and with no later transition the
// current status has been in force since before d. Issues without journal
// entries therefore keep their current status for their whole visible
// history. js must be sorted ascending by (timestamp, id).
func statusAsOf(current int64, js []domain.Journal, d time.Time) int64 {
    i := sort.Search(len(js), func(i int) bool { return dayOf(js[i].CreatedOn).After(d) })
    if i < len(js) { return js[i].OldStatusID }
    return current
}

type StatusSeries struct {
    Name string `json:"name"`
    Data []int  `json:"data"`
}

type StatusDistribution struct {
    Dates  []string       `json:"dates"`
    Series []StatusSeries `json:"series"`
}

// StatusDistribution replays per-status counts for every day in range, one
// series per known status. Issues created after a given day are not counted
// on that day, matching CumulativeFlow.
func (e *Engine) StatusDistribution() StatusDistribution {
    days := e.rangeLen()
    dates := make([]string, 0, days)
    perStatus := map[int64][]int{}
    for _, st := range e.statuses { perStatus[st.ID] = make([]int, 0, days) }

    for d := e.start; !d.After(e.end); d = d.AddDate(0, 0, 1) {
        dates = append(dates, fmtDate(d))
        counts := map[int64]int{}
        for _, iss := range e.issues {
            if dayOf(iss.CreatedOn).After(d) { continue }
            counts[statusAsOf(iss.StatusID, e.journals[iss.ID], d)]++
        }
        for id := range perStatus { perStatus[id] = append(perStatus[id], counts[id]) }
    }

    series := make([]StatusSeries, 0, len(e.statuses))
    for _, st := range e.statuses {
        series = append(series, StatusSeries{Name: st.Name, Data: perStatus[st.ID]})
    }
    return StatusDistribution{Dates: dates, Series: series}
}

type FlowPoint struct {
    Date     string         `json:"date"`
    Statuses map[string]int `json:"statuses"`
}

type CumulativeFlow struct {
    Series      []FlowPoint `json:"series"`
    StatusNames []string    `json:"status_names"`
}

// CumulativeFlow is the same replay keyed by status name, shaped for a
// stacked chart. A status id with no known mapping lands in "Unknown".
func (e *Engine) CumulativeFlow() CumulativeFlow {
    series := make([]FlowPoint, 0, e.rangeLen())
    for d := e.start; !d.After(e.end); d = d.AddDate(0, 0, 1) {
        counts := map[string]int{}
        for _, iss := range e.issues {
            if dayOf(iss.CreatedOn).After(d) { continue }
            counts[e.statusName(statusAsOf(iss.StatusID, e.journals[iss.ID], d))]++
        }
        series = append(series, FlowPoint{Date: fmtDate(d), Statuses: counts})
    }
    names := make([]string, 0, len(e.statuses))
    for _, st := range e.statuses { names = append(names, st.Name) }
    return CumulativeFlow{Series: series, StatusNames: names}
}

type CycleStatus struct {
    Name    string  `json:"name"`
    AvgDays float64 `json:"avg_days"`
    Count   int     `json:"count"`
}

type CycleTime struct {
    Statuses []CycleStatus `json:"statuses"`
}

// CycleTime measures how long closed issues sat in each status. Each
// transition closes an interval attributed to the status being left; the
// stretch from the last transition to closed_on is attributed to the final
// status. Durations are fractional days from full timestamps, not truncated
// to day boundaries.
func (e *Engine) CycleTime() CycleTime {
    durations := map[string][]float64{}
    for _, st := range e.statuses { durations[st.Name] = nil }
    for _, iss := range e.issues {
        if !e.isClosed(iss) { continue }
        prevTime := iss.CreatedOn
        var prevStatus int64
        known := false
        for _, j := range e.journals[iss.ID] {
            if known {
                name := e.statusName(prevStatus)
                durations[name] = append(durations[name], round1(j.CreatedOn.Sub(prevTime).Hours()/24))
            }
            prevStatus = j.NewStatusID
            prevTime = j.CreatedOn
            known = true
        }
        if known && iss.ClosedOn != nil {
            name := e.statusName(prevStatus)
            durations[name] = append(durations[name], round1(iss.ClosedOn.Sub(prevTime).Hours()/24))
        }
    }

    statuses := make([]CycleStatus, 0, len(durations))
    for name, ds := range durations {
        avg := 0.0
        if len(ds) > 0 { avg = round1(stat.Mean(ds, nil)) }
        statuses = append(statuses, CycleStatus{Name: name, AvgDays: avg, Count: len(ds)})
    }
    sort.Slice(statuses, func(i, j int) bool {
        if statuses[i].AvgDays == statuses[j].AvgDays { return statuses[i].Name < statuses[j].Name }
        return statuses[i].AvgDays > statuses[j].AvgDays
    })
    return CycleTime{Statuses: statuses}
}
