package model

import (
	"time"

	"github.com/lexops-lab/dealdesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Project represents a deal the practice is engaged on. Lifecycle is owned
// by the record CRUD layer; this service only reads.
type Project struct {
	ID              types.ProjectID
	Name            string
	Category        string // e.g. "IPO", "Bond", "M&A"
	Status          types.ProjectStatus
	Priority        string
	Side            string // issuer side / underwriter side
	Sector          string
	FilingDate      types.Date // zero when not scheduled
	ListingDate     types.Date // zero when not scheduled
	LastConfirmedAt *time.Time
	Assignments     []Assignment
}

// NewProject creates a new Project instance
func NewProject(id types.ProjectID, name string, status types.ProjectStatus) (*Project, error) {
	if id == "" {
		return nil, goerr.New("project ID is required")
	}
	if name == "" {
		return nil, goerr.New("project name is required")
	}
	if !status.IsValid() {
		return nil, goerr.New("invalid project status", goerr.V("status", status))
	}

	return &Project{
		ID:     id,
		Name:   name,
		Status: status,
	}, nil
}

// MilestonesIn returns the project's milestones whose dates fall within
// [start, end]. A project with both dates in range yields two milestones.
func (p *Project) MilestonesIn(start, end types.Date) []ProjectMilestone {
	var milestones []ProjectMilestone
	if !p.FilingDate.IsZero() && p.FilingDate.Between(start, end) {
		milestones = append(milestones, ProjectMilestone{Type: types.MilestoneTypeFiling, Date: p.FilingDate})
	}
	if !p.ListingDate.IsZero() && p.ListingDate.Between(start, end) {
		milestones = append(milestones, ProjectMilestone{Type: types.MilestoneTypeListing, Date: p.ListingDate})
	}
	return milestones
}

// NextMilestoneDate returns the filing date when set, otherwise the listing
// date, otherwise the zero date. Filing precedes listing in the deal
// lifecycle, so it is the nearer deadline whenever both exist.
func (p *Project) NextMilestoneDate() types.Date {
	if !p.FilingDate.IsZero() {
		return p.FilingDate
	}
	return p.ListingDate
}

// ProjectMilestone is a single dated milestone on a project
type ProjectMilestone struct {
	Type types.MilestoneType
	Date types.Date
}
