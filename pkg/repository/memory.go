package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/lexops-lab/dealdesk/pkg/domain/interfaces"
	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Memory implements Repository with in-memory storage. The analytics core
// only reads; the Put methods exist for tests, fixtures and local
// development, where dealdesk runs without a database.
type Memory struct {
	mu          sync.RWMutex
	projects    map[types.ProjectID]*model.Project
	staff       map[types.StaffID]*model.Staff
	assignments []model.Assignment // slice keeps assignment order stable
}

// NewMemory creates a new memory repository
func NewMemory() *Memory {
	return &Memory{
		projects: make(map[types.ProjectID]*model.Project),
		staff:    make(map[types.StaffID]*model.Staff),
	}
}

// PutProject stores a project
func (m *Memory) PutProject(ctx context.Context, project *model.Project) error {
	if project == nil {
		return goerr.New("project is nil")
	}
	if project.ID == "" {
		return goerr.New("project ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	projectCopy := *project
	projectCopy.Assignments = nil // assignments are joined at read time
	m.projects[project.ID] = &projectCopy
	return nil
}

// PutStaff stores a staff member
func (m *Memory) PutStaff(ctx context.Context, staff *model.Staff) error {
	if staff == nil {
		return goerr.New("staff is nil")
	}
	if staff.ID == "" {
		return goerr.New("staff ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	staffCopy := *staff
	m.staff[staff.ID] = &staffCopy
	return nil
}

// PutAssignment stores an assignment. Duplicate staff on one project are
// allowed; deduplication is the analytics core's concern.
func (m *Memory) PutAssignment(ctx context.Context, assignment model.Assignment) error {
	if assignment.ProjectID == "" {
		return goerr.New("assignment project ID is empty")
	}
	if assignment.StaffID == "" {
		return goerr.New("assignment staff ID is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if assignment.ID == "" {
		assignment.ID = types.NewAssignmentID()
	}
	m.assignments = append(m.assignments, assignment)
	return nil
}

// ListProjectsInWindow returns projects with a filing or listing date in
// [start, end], assignments joined in insertion order with staff snapshots
func (m *Memory) ListProjectsInWindow(ctx context.Context, start, end types.Date) ([]*model.Project, error) {
	if start.IsZero() || end.IsZero() {
		return nil, goerr.New("window boundaries are required")
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var projects []*model.Project
	for _, p := range m.projects {
		inWindow := (!p.FilingDate.IsZero() && p.FilingDate.Between(start, end)) ||
			(!p.ListingDate.IsZero() && p.ListingDate.Between(start, end))
		if !inWindow {
			continue
		}

		projectCopy := *p
		projectCopy.Assignments = m.joinAssignments(p.ID)
		projects = append(projects, &projectCopy)
	}

	// Map iteration order is random; sort for deterministic reads
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ID < projects[j].ID
	})

	return projects, nil
}

// joinAssignments returns the project's assignments with staff name and
// position snapshotted. Caller must hold the read lock.
func (m *Memory) joinAssignments(projectID types.ProjectID) []model.Assignment {
	var joined []model.Assignment
	for _, a := range m.assignments {
		if a.ProjectID != projectID {
			continue
		}
		if s, ok := m.staff[a.StaffID]; ok {
			a.StaffName = s.Name
			a.Position = s.Position
		}
		joined = append(joined, a)
	}
	return joined
}

// ListActiveStaff returns active staff sorted by name
func (m *Memory) ListActiveStaff(ctx context.Context) ([]*model.Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var active []*model.Staff
	for _, s := range m.staff {
		if !s.Active {
			continue
		}
		staffCopy := *s
		active = append(active, &staffCopy)
	}

	sort.Slice(active, func(i, j int) bool {
		if active[i].Name != active[j].Name {
			return active[i].Name < active[j].Name
		}
		return active[i].ID < active[j].ID
	})

	return active, nil
}

// ListAssignmentsForOngoingProjects returns assignments on Active or
// Slow-down projects with staff snapshots joined
func (m *Memory) ListAssignmentsForOngoingProjects(ctx context.Context) ([]model.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []model.Assignment
	for _, a := range m.assignments {
		p, ok := m.projects[a.ProjectID]
		if !ok || !p.Status.IsOngoing() {
			continue
		}
		if s, ok := m.staff[a.StaffID]; ok {
			a.StaffName = s.Name
			a.Position = s.Position
		}
		result = append(result, a)
	}

	return result, nil
}

// CountProjectsByStatus returns project totals keyed by status
func (m *Memory) CountProjectsByStatus(ctx context.Context) (map[types.ProjectStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[types.ProjectStatus]int)
	for _, p := range m.projects {
		counts[p.Status]++
	}
	return counts, nil
}

// CountStaff returns total and active staff counts
func (m *Memory) CountStaff(ctx context.Context) (int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := len(m.staff)
	active := 0
	for _, s := range m.staff {
		if s.Active {
			active++
		}
	}
	return total, active, nil
}

// GroupProjects returns project counts grouped by the given dimension
func (m *Memory) GroupProjects(ctx context.Context, dim interfaces.ProjectDimension) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range m.projects {
		var key string
		switch dim {
		case interfaces.DimensionCategory:
			key = p.Category
		case interfaces.DimensionSector:
			key = p.Sector
		case interfaces.DimensionSide:
			key = p.Side
		default:
			return nil, goerr.New("unknown project dimension", goerr.V("dimension", dim))
		}
		if key == "" {
			key = "Unspecified"
		}
		counts[key]++
	}
	return counts, nil
}

// GroupStaffByPosition returns active staff counts grouped by position
func (m *Memory) GroupStaffByPosition(ctx context.Context) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int)
	for _, s := range m.staff {
		if !s.Active {
			continue
		}
		position := s.Position
		if position == "" {
			position = "Unspecified"
		}
		counts[position]++
	}
	return counts, nil
}

// Close is a no-op for the memory repository
func (m *Memory) Close() error {
	return nil
}
