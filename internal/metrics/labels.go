package metrics

const labelUnassigned = "Unassigned"

// Labels is the display-string dictionary shipped with every payload. The
// rendering layer treats it as opaque text.
func Labels() map[string]string {
    return map[string]string{
        "kpi":                            "KPI Summary",
        "burndown":                       "Burndown Chart",
        "velocity":                       "Velocity",
        "status_dist":                    "Status Distribution",
        "tracker_dist":                   "Tracker Distribution",
        "workload":                       "Workload",
        "delay":                          "Delay Analysis",
        "version_progress":               "Version Progress",
        "completion_rate":                "Completion Rate",
        "delayed_tickets":                "Delayed Tickets",
        "avg_lead_time":                  "Avg Lead Time",
        "wip_count":                      "WIP Count",
        "days":                           "days",
        "ideal_line":                     "Ideal Line",
        "priority_dist":                  "Priority Distribution",
        "cumulative_flow":                "Cumulative Flow",
        "cycle_time":                     "Cycle Time",
        "label_throughput":               "Throughput (7d)",
        "label_due_date_rate":            "Due Date Set Rate",
        "label_bottleneck_rate":          "Bottleneck Rate",
        "label_assignee_concentration":   "Assignee Concentration",
        "label_issue_list":               "Issue List",
        "label_unassigned":               labelUnassigned,
        "ai_analyze":                     "AI Analysis",
        "ai_analysis_failed":             "AI analysis failed",
        "ai_provider":                    "AI Provider",
        "prompt":                         "Prompt",
        "generate":                       "Generate",
        "generating":                     "Generating...",
        "analyzing":                      "Analyzing...",
        "close":                          "Close",
        "display_settings":               "Display Settings",
        "panel_display":                  "Panels",
        "select_all":                     "Select All",
        "clear":                          "Clear",
        "loading":                        "Loading dashboard...",
        "error":                          "Failed to load data",
        "remaining_issues":               "Remaining Issues",
        "text_items_per_week":            "items/week",
        "text_unset":                     "unset",
        "text_stagnant_ratio":            "stagnant",
        "text_concentration_high":        "High",
        "tooltip_completion_rate":        "Closed issues as a share of all issues in scope",
        "tooltip_delayed_tickets":        "Open issues whose due date has passed",
        "tooltip_avg_lead_time":          "Mean days from creation to closing for closed issues",
        "tooltip_wip_count":              "Issues currently open",
        "tooltip_burndown_chart":         "Open issues per day with the ideal descent",
        "tooltip_velocity":               "Issues closed per week over the trailing 12 weeks",
        "tooltip_version_progress":       "Open versions with completion and effort",
        "tooltip_delay_analysis":         "Late issues over time plus age histograms",
        "tooltip_tracker_dist":           "Issues per tracker",
        "tooltip_status_dist":            "Issues per status replayed for each day",
        "tooltip_workload":               "Open issues per assignee",
        "tooltip_priority_dist":          "Issues per priority in administrative order",
        "tooltip_cumulative_flow":        "Stacked per-status counts per day",
        "tooltip_cycle_time":             "Mean days spent in each status before moving on",
        "tooltip_throughput":             "Issues closed in the trailing 7 days",
        "tooltip_due_date_rate":          "Open issues that have a due date set",
        "tooltip_bottleneck_rate":        "Open issues without an update in 7 days",
        "tooltip_assignee_concentration": "Share of open work held by the busiest assignee",
        "tooltip_issue_list":             "Issues in the current scope with delay and stagnation ages",
        "download_html":                  "Download HTML",
    }
}
