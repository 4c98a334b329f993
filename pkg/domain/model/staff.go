package model

import (
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Staff represents a member of the practice. Position is a free-text role
// label from the HR system ("Partner", "Associate", "Senior FLIC", ...);
// role categorization happens against the coverage policy, not here.
type Staff struct {
	ID         types.StaffID
	Name       string
	Position   string
	Active     bool
	Department string
}

// NewStaff creates a new Staff instance
func NewStaff(id types.StaffID, name, position string) (*Staff, error) {
	if id == "" {
		return nil, goerr.New("staff ID is required")
	}
	if name == "" {
		return nil, goerr.New("staff name is required")
	}

	return &Staff{
		ID:       id,
		Name:     name,
		Position: position,
		Active:   true,
	}, nil
}

// Assignment links one staff member to one project under a jurisdiction
// label. Staff name and position are snapshotted by the repository join so
// callers never re-query per assignment.
type Assignment struct {
	ID           types.AssignmentID
	ProjectID    types.ProjectID
	StaffID      types.StaffID
	Jurisdiction string // "US Law", "HK Law", or a non-legal label like "B&C"
	StaffName    string
	Position     string
}
