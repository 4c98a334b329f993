package usecase

import (
	"sort"

	"github.com/lexops-lab/dealdesk/pkg/domain/model"
)

// BuildUnstaffedMilestones flags ongoing projects with an in-window
// milestone that lack partner-level coverage in at least one tracked
// jurisdiction. Entries sort ascending by milestone date with dateless
// projects last. Input projects are assumed window-filtered already.
func BuildUnstaffedMilestones(coverage *model.CoverageConfig, projects []*model.Project) []model.UnstaffedMilestone {
	var flagged []model.UnstaffedMilestone

	for _, p := range projects {
		if !p.Status.IsOngoing() {
			continue
		}

		missing := coverage.MissingJurisdictions(p.Assignments)
		if len(missing) == 0 {
			continue
		}

		flagged = append(flagged, model.UnstaffedMilestone{
			ProjectID:            p.ID,
			ProjectName:          p.Name,
			Status:               p.Status,
			Priority:             p.Priority,
			MilestoneDate:        p.NextMilestoneDate(),
			NeedsUSPartner:       contains(missing, model.JurisdictionUS),
			NeedsHKPartner:       contains(missing, model.JurisdictionHK),
			MissingJurisdictions: missing,
		})
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		di, dj := flagged[i].MilestoneDate, flagged[j].MilestoneDate
		if di.IsZero() {
			return false
		}
		if dj.IsZero() {
			return true
		}
		return di.Before(dj)
	})

	return flagged
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
