package model

import (
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
)

// TeamMember is one deduplicated member of a milestone event's deal team
type TeamMember struct {
	ID       types.StaffID `json:"id"`
	Name     string        `json:"name"`
	Position string        `json:"position"`
}

// MilestoneEvent is a single in-window filing or listing on a project,
// enriched with project metadata and the deal team. Derived per request,
// never persisted.
type MilestoneEvent struct {
	ProjectID       types.ProjectID     `json:"projectId"`
	ProjectName     string              `json:"projectName"`
	Category        string              `json:"category"`
	Status          types.ProjectStatus `json:"status"`
	Priority        string              `json:"priority"`
	Side            string              `json:"side"`
	Type            types.MilestoneType `json:"type"`
	Date            types.Date          `json:"date"`
	LeadContactName string              `json:"leadContactName,omitempty"`
	TeamMembers     []TeamMember        `json:"teamMembers"`
}

// Period is one contiguous date bucket of the analysis window, inclusive
// on both ends
type Period struct {
	Key   string     `json:"key"`
	Start types.Date `json:"start"`
	End   types.Date `json:"end"`
}

// NewPeriod creates a Period with its canonical key. The key is derived
// from the boundaries so equal ranges always share a key, and ISO date
// ordering makes keys sortable as plain strings.
func NewPeriod(start, end types.Date) Period {
	return Period{
		Key:   start.String() + "_" + end.String(),
		Start: start,
		End:   end,
	}
}

// Contains reports whether the date falls inside the period, inclusive
func (p Period) Contains(d types.Date) bool {
	return d.Between(p.Start, p.End)
}

// PeriodCount is one heatmap cell: milestone-event count for a period
type PeriodCount struct {
	PeriodKey string `json:"periodKey"`
	Count     int    `json:"count"`
}

// HeatmapRow is one active staff member's milestone load across all
// periods. Rows exist even when every count is zero.
type HeatmapRow struct {
	StaffID  types.StaffID `json:"staffId"`
	Name     string        `json:"name"`
	Position string        `json:"position"`
	Weeks    []PeriodCount `json:"weeks"`
}

// UnstaffedMilestone flags an ongoing project with an imminent milestone
// that lacks partner-level coverage in at least one tracked jurisdiction
type UnstaffedMilestone struct {
	ProjectID            types.ProjectID     `json:"projectId"`
	ProjectName          string              `json:"projectName"`
	Status               types.ProjectStatus `json:"status"`
	Priority             string              `json:"priority"`
	MilestoneDate        types.Date          `json:"milestoneDate"`
	NeedsUSPartner       bool                `json:"needsUSPartner"`
	NeedsHKPartner       bool                `json:"needsHKPartner"`
	MissingJurisdictions []string            `json:"missingJurisdictions"`
}

// ActionItems groups the anomalies the dashboard surfaces for follow-up
type ActionItems struct {
	UnstaffedMilestones []UnstaffedMilestone `json:"unstaffedMilestones"`
}

// BreakdownItem is one bucket of a simple group-by aggregate
type BreakdownItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ProjectCounts holds headline project totals by status
type ProjectCounts struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Slowdown  int `json:"slowdown"`
	Suspended int `json:"suspended"`
}

// StaffCounts holds headline staff totals
type StaffCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// DashboardStats is the full dashboard payload. Every field is always
// present; empty datasets produce empty (not nil) collections so the
// client never sees a missing field.
type DashboardStats struct {
	WindowDays  int        `json:"windowDays"`
	WindowStart types.Date `json:"windowStart"`
	WindowEnd   types.Date `json:"windowEnd"`

	Projects ProjectCounts `json:"projects"`
	Staff    StaffCounts   `json:"staff"`

	ByCategory     []BreakdownItem `json:"byCategory"`
	BySector       []BreakdownItem `json:"bySector"`
	BySide         []BreakdownItem `json:"bySide"`
	ByPosition     []BreakdownItem `json:"byPosition"`
	ByJurisdiction []BreakdownItem `json:"byJurisdiction"`

	DealRadar       []MilestoneEvent `json:"dealRadar"`
	Weeks           []string         `json:"weeks"`
	StaffingHeatmap []HeatmapRow     `json:"staffingHeatmap"`
	ActionItems     ActionItems      `json:"actionItems"`
}
