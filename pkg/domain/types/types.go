package types

import (
	"github.com/google/uuid"
)

// ProjectID represents a project identifier
type ProjectID string

// String returns the string representation
func (id ProjectID) String() string {
	return string(id)
}

// NewProjectID creates a new ProjectID
func NewProjectID() ProjectID {
	return ProjectID(uuid.New().String())
}

// StaffID represents a staff member identifier
type StaffID string

// String returns the string representation
func (id StaffID) String() string {
	return string(id)
}

// NewStaffID creates a new StaffID
func NewStaffID() StaffID {
	return StaffID(uuid.New().String())
}

// AssignmentID represents a project-staff assignment identifier
type AssignmentID string

// String returns the string representation
func (id AssignmentID) String() string {
	return string(id)
}

// NewAssignmentID creates a new AssignmentID
func NewAssignmentID() AssignmentID {
	return AssignmentID(uuid.New().String())
}
