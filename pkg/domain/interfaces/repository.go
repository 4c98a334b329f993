package interfaces

import (
	"context"

	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
)

// ProjectDimension selects the grouping axis for project breakdowns
type ProjectDimension string

const (
	DimensionCategory ProjectDimension = "category"
	DimensionSector   ProjectDimension = "sector"
	DimensionSide     ProjectDimension = "side"
)

// Repository defines the read-side data access this service consumes.
// Implementations return fully joined records so the analytics core never
// issues follow-up queries per row.
type Repository interface {
	// ListProjectsInWindow returns projects whose filing or listing date
	// falls within [start, end], with assignments and staff joined
	ListProjectsInWindow(ctx context.Context, start, end types.Date) ([]*model.Project, error)

	// ListActiveStaff returns all staff with active status
	ListActiveStaff(ctx context.Context) ([]*model.Staff, error)

	// ListAssignmentsForOngoingProjects returns assignments whose project
	// status is Active or Slow-down
	ListAssignmentsForOngoingProjects(ctx context.Context) ([]model.Assignment, error)

	// CountProjectsByStatus returns project totals keyed by status
	CountProjectsByStatus(ctx context.Context) (map[types.ProjectStatus]int, error)

	// CountStaff returns total and active staff counts
	CountStaff(ctx context.Context) (total int, active int, err error)

	// GroupProjects returns project counts grouped by the given dimension
	GroupProjects(ctx context.Context, dim ProjectDimension) (map[string]int, error)

	// GroupStaffByPosition returns active staff counts grouped by position
	GroupStaffByPosition(ctx context.Context) (map[string]int, error)

	// Close closes the repository connection
	Close() error
}
