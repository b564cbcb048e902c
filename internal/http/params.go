/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package http

import (
    "fmt"
    "strconv"
    "strings"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/tiohsa/redmain-dashboard/internal/services"
)

// parseParams reads the optional filter query parameters. Absent values mean
// "no constraint"; an explicitly malformed date is a caller bug and becomes a
// request error rather than silently defaulting.
func parseParams(c *gin.Context) (services.Params, error) {
    var p services.Params
    var err error
    if p.Start, err = parseDate(c.Query("start_date")); err != nil { return p, err }
    if p.End, err = parseDate(c.Query("end_date")); err != nil { return p, err }
    if !p.Start.IsZero() && !p.End.IsZero() && p.End.Before(p.Start) {
        return p, fmt.Errorf("end_date before start_date")
    }
    // without an end_date the range ends today, so a future start inverts it
    if !p.Start.IsZero() && p.End.IsZero() && p.Start.After(time.Now().UTC()) {
        return p, fmt.Errorf("start_date in the future requires end_date")
    }
    if ids := strings.TrimSpace(c.Query("target_project_ids")); ids != "" {
        for _, part := range strings.Split(ids, ",") {
            part = strings.TrimSpace(part)
            if part == "" { continue }
            n, err := strconv.ParseInt(part, 10, 64)
            if err != nil { return p, fmt.Errorf("invalid target_project_ids: %q", part) }
            p.Filter.ProjectIDs = append(p.Filter.ProjectIDs, n)
        }
    }
    if p.Filter.VersionID, err = parseID(c.Query("version_id"), "version_id"); err != nil { return p, err }
    if p.Filter.TrackerID, err = parseID(c.Query("tracker_id"), "tracker_id"); err != nil { return p, err }
    if p.Filter.AssigneeID, err = parseID(c.Query("assigned_to_id"), "assigned_to_id"); err != nil { return p, err }
    return p, nil
}

func parseDate(v string) (time.Time, error) {
    v = strings.TrimSpace(v)
    if v == "" { return time.Time{}, nil }
    t, err := time.Parse("2006-01-02", v)
    if err != nil { return time.Time{}, fmt.Errorf("invalid date %q", v) }
    return t.UTC(), nil
}

func parseID(v, name string) (*int64, error) {
    v = strings.TrimSpace(v)
    if v == "" { return nil, nil }
    n, err := strconv.ParseInt(v, 10, 64)
    if err != nil { return nil, fmt.Errorf("invalid %s: %q", name, v) }
    return &n, nil
}
