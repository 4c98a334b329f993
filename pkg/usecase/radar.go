package usecase

import (
	"sort"

	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
)

// BuildDealRadar turns every in-window filing and listing into a milestone
// event with project metadata, a resolved lead contact and a deduplicated
// deal team. Events sort ascending by date; the sort is stable so equal
// dates keep insertion order and repeated runs on the same input yield
// identical output.
func BuildDealRadar(coverage *model.CoverageConfig, projects []*model.Project, w Window) []model.MilestoneEvent {
	events := make([]model.MilestoneEvent, 0, len(projects))

	for _, p := range projects {
		milestones := p.MilestonesIn(w.Start, w.End)
		if len(milestones) == 0 {
			continue
		}

		lead := ResolveLeadContact(coverage, p.Assignments)
		team := dedupeTeam(p.Assignments)

		for _, m := range milestones {
			events = append(events, model.MilestoneEvent{
				ProjectID:       p.ID,
				ProjectName:     p.Name,
				Category:        p.Category,
				Status:          p.Status,
				Priority:        p.Priority,
				Side:            p.Side,
				Type:            m.Type,
				Date:            m.Date,
				LeadContactName: lead,
				TeamMembers:     team,
			})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})

	return events
}

// ResolveLeadContact applies the ranked lead preference: first
// partner-level assignee, else first assignee in assignment order, else
// nobody
func ResolveLeadContact(coverage *model.CoverageConfig, assignments []model.Assignment) string {
	for _, a := range assignments {
		if coverage.IsPartner(a.Position) {
			return a.StaffName
		}
	}
	if len(assignments) > 0 {
		return assignments[0].StaffName
	}
	return ""
}

// dedupeTeam collapses assignments to one team member per staff identity,
// keeping the first-seen name and position. Staff assigned under several
// jurisdictions appear once.
func dedupeTeam(assignments []model.Assignment) []model.TeamMember {
	team := make([]model.TeamMember, 0, len(assignments))
	seen := make(map[types.StaffID]bool, len(assignments))

	for _, a := range assignments {
		if seen[a.StaffID] {
			continue
		}
		seen[a.StaffID] = true
		team = append(team, model.TeamMember{
			ID:       a.StaffID,
			Name:     a.StaffName,
			Position: a.Position,
		})
	}

	return team
}
