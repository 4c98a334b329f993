package types

// ProjectStatus represents the lifecycle status of a project
type ProjectStatus string

const (
	ProjectStatusActive     ProjectStatus = "Active"
	ProjectStatusSlowdown   ProjectStatus = "Slow-down"
	ProjectStatusSuspended  ProjectStatus = "Suspended"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusTerminated ProjectStatus = "Terminated"
)

// String returns the string representation of the status
func (s ProjectStatus) String() string {
	return string(s)
}

// IsValid checks if the status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusSlowdown, ProjectStatusSuspended,
		ProjectStatusCompleted, ProjectStatusTerminated:
		return true
	default:
		return false
	}
}

// IsOngoing reports whether the project still demands staffing.
// Only ongoing projects are considered for coverage-gap detection.
func (s ProjectStatus) IsOngoing() bool {
	return s == ProjectStatusActive || s == ProjectStatusSlowdown
}

// MilestoneType represents the kind of project milestone
type MilestoneType string

const (
	MilestoneTypeFiling  MilestoneType = "Filing"
	MilestoneTypeListing MilestoneType = "Listing"
)

// String returns the string representation of the milestone type
func (t MilestoneType) String() string {
	return string(t)
}

// IsValid checks if the milestone type is valid
func (t MilestoneType) IsValid() bool {
	return t == MilestoneTypeFiling || t == MilestoneTypeListing
}
