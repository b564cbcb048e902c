/* Copyright (c) 2025 Hamed Shams <https://hamedshams.com>
 * SPDX-License-Identifier: BSD-3-Clause */
package llm

import (
    "context"
    "fmt"
    "strings"

    "github.com/tiohsa/redmain-dashboard/internal/metrics"
)

// Provider turns a prompt into generated text. Implementations live in
// internal/adapters.
type Provider interface {
    Analyze(ctx context.Context, prompt string) (string, error)
}

type Result struct {
    Analysis string `json:"analysis"`
    Prompt   string `json:"prompt"`
    Error    bool   `json:"error,omitempty"`
}

// BuildPrompt renders the analysis prompt from the computed summary: KPIs,
// the tail of the burndown, and the most delayed issues. The model is asked
// for a short management report, not a restatement of the numbers.
func BuildPrompt(projectName string, sum metrics.Summary) string {
    k := sum.KPIs
    b := &strings.Builder{}
    fmt.Fprintf(b, "## Role\n\nYou are a senior project manager reviewing an issue-tracking dashboard.\n\n")
    fmt.Fprintf(b, "## Task\n\nAnalyze the project data below and produce a concise status report: overall health, bottlenecks, risks if nothing changes, and concrete next actions. State facts with numbers; mark each risk Critical or Warning.\n\n")
    fmt.Fprintf(b, "## Project\n\n%s\n\n", projectName)
    fmt.Fprintf(b, "## KPI\n\n")
    fmt.Fprintf(b, "- Completion rate: %.1f%%\n", k.CompletionRate)
    fmt.Fprintf(b, "- Delayed tickets: %d\n", k.DelayedCount)
    fmt.Fprintf(b, "- Avg lead time: %.1f days\n", k.AvgLeadTime)
    fmt.Fprintf(b, "- WIP: %d\n", k.WIPCount)
    fmt.Fprintf(b, "- Throughput (7d): %d\n", k.Throughput)
    fmt.Fprintf(b, "- Due date set rate: %.1f%% (unset: %d)\n", k.DueDateRate, k.UnsetDueDateCount)
    fmt.Fprintf(b, "- Bottleneck rate: %.1f%% (stagnant: %d)\n", k.BottleneckRate, k.StagnantCount)
    fmt.Fprintf(b, "- Assignee concentration: %s (top assignee holds %d)\n\n", k.AssigneeConcentration, k.TopAssigneeCount)

    fmt.Fprintf(b, "## Burndown (last 5 days)\n\n")
    series := sum.Burndown.Series
    if len(series) > 5 { series = series[len(series)-5:] }
    for _, p := range series { fmt.Fprintf(b, "- %s: %d remaining\n", p.Date, p.Count) }
    fmt.Fprintf(b, "\n## Key issues (top 10)\n\n")
    issues := sum.Issues
    if len(issues) > 10 { issues = issues[:10] }
    for _, row := range issues {
        fmt.Fprintf(b, "- #%d [%s] %s (delay: %dd, stagnant: %dd)\n", row.ID, row.Status, row.Subject, row.DelayDays, row.StagnationDays)
    }
    fmt.Fprintf(b, "\n## Output\n\nPlain text report only, no preamble.\n")
    return b.String()
}
