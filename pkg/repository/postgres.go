package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lexops-lab/dealdesk/pkg/domain/interfaces"
	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Postgres implements Repository against the practice's system of record
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres repository from a connection string
func NewPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create postgres pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, goerr.Wrap(err, "failed to connect to postgres")
	}

	ctxlog.From(ctx).Info("Postgres repository initialized")

	return &Postgres{pool: pool}, nil
}

// ListProjectsInWindow returns projects with a filing or listing date in
// [start, end], with assignments and staff joined in one round trip each
func (p *Postgres) ListProjectsInWindow(ctx context.Context, start, end types.Date) ([]*model.Project, error) {
	if start.IsZero() || end.IsZero() {
		return nil, goerr.New("window boundaries are required")
	}

	const projectQuery = `
		SELECT id, name, category, status, priority, side, sector,
		       filing_date, listing_date, last_confirmed_at
		FROM projects
		WHERE (filing_date BETWEEN $1 AND $2)
		   OR (listing_date BETWEEN $1 AND $2)
		ORDER BY id
	`

	rows, err := p.pool.Query(ctx, projectQuery, start.Time(), end.Time())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query projects in window",
			goerr.V("start", start), goerr.V("end", end))
	}
	defer rows.Close()

	var projects []*model.Project
	index := make(map[types.ProjectID]*model.Project)
	for rows.Next() {
		var (
			prj                model.Project
			filing, listing    *time.Time
			category, priority *string
			side, sector       *string
		)
		if err := rows.Scan(&prj.ID, &prj.Name, &category, &prj.Status, &priority,
			&side, &sector, &filing, &listing, &prj.LastConfirmedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan project row")
		}
		prj.Category = deref(category)
		prj.Priority = deref(priority)
		prj.Side = deref(side)
		prj.Sector = deref(sector)
		if filing != nil {
			prj.FilingDate = types.DateOf(*filing)
		}
		if listing != nil {
			prj.ListingDate = types.DateOf(*listing)
		}

		projects = append(projects, &prj)
		index[prj.ID] = &prj
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read project rows")
	}

	if len(projects) == 0 {
		return nil, nil
	}

	const assignmentQuery = `
		SELECT a.id, a.project_id, a.staff_id, a.jurisdiction, s.name, s.position
		FROM assignments a
		JOIN staff s ON s.id = a.staff_id
		WHERE a.project_id = ANY($1)
		ORDER BY a.project_id, a.id
	`

	ids := make([]string, 0, len(projects))
	for _, prj := range projects {
		ids = append(ids, prj.ID.String())
	}

	assignRows, err := p.pool.Query(ctx, assignmentQuery, ids)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query assignments for window projects")
	}
	defer assignRows.Close()

	for assignRows.Next() {
		var a model.Assignment
		var jurisdiction *string
		if err := assignRows.Scan(&a.ID, &a.ProjectID, &a.StaffID, &jurisdiction,
			&a.StaffName, &a.Position); err != nil {
			return nil, goerr.Wrap(err, "failed to scan assignment row")
		}
		a.Jurisdiction = deref(jurisdiction)
		if prj, ok := index[a.ProjectID]; ok {
			prj.Assignments = append(prj.Assignments, a)
		}
	}
	if err := assignRows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read assignment rows")
	}

	return projects, nil
}

// ListActiveStaff returns active staff sorted by name
func (p *Postgres) ListActiveStaff(ctx context.Context) ([]*model.Staff, error) {
	const query = `
		SELECT id, name, position, active, department
		FROM staff
		WHERE active
		ORDER BY name, id
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query active staff")
	}
	defer rows.Close()

	var staff []*model.Staff
	for rows.Next() {
		var s model.Staff
		var position, department *string
		if err := rows.Scan(&s.ID, &s.Name, &position, &s.Active, &department); err != nil {
			return nil, goerr.Wrap(err, "failed to scan staff row")
		}
		s.Position = deref(position)
		s.Department = deref(department)
		staff = append(staff, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read staff rows")
	}

	return staff, nil
}

// ListAssignmentsForOngoingProjects returns assignments on Active or
// Slow-down projects with staff snapshots joined
func (p *Postgres) ListAssignmentsForOngoingProjects(ctx context.Context) ([]model.Assignment, error) {
	const query = `
		SELECT a.id, a.project_id, a.staff_id, a.jurisdiction, s.name, s.position
		FROM assignments a
		JOIN staff s ON s.id = a.staff_id
		JOIN projects p ON p.id = a.project_id
		WHERE p.status = ANY($1)
		ORDER BY a.project_id, a.id
	`

	statuses := []string{
		types.ProjectStatusActive.String(),
		types.ProjectStatusSlowdown.String(),
	}

	rows, err := p.pool.Query(ctx, query, statuses)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query ongoing assignments")
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		var jurisdiction *string
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.StaffID, &jurisdiction,
			&a.StaffName, &a.Position); err != nil {
			return nil, goerr.Wrap(err, "failed to scan assignment row")
		}
		a.Jurisdiction = deref(jurisdiction)
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read assignment rows")
	}

	return assignments, nil
}

// CountProjectsByStatus returns project totals keyed by status
func (p *Postgres) CountProjectsByStatus(ctx context.Context) (map[types.ProjectStatus]int, error) {
	const query = `SELECT status, COUNT(*) FROM projects GROUP BY status`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count projects by status")
	}
	defer rows.Close()

	counts := make(map[types.ProjectStatus]int)
	for rows.Next() {
		var status types.ProjectStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, goerr.Wrap(err, "failed to scan status count row")
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read status count rows")
	}

	return counts, nil
}

// CountStaff returns total and active staff counts
func (p *Postgres) CountStaff(ctx context.Context) (int, int, error) {
	const query = `SELECT COUNT(*), COUNT(*) FILTER (WHERE active) FROM staff`

	var total, active int
	if err := p.pool.QueryRow(ctx, query).Scan(&total, &active); err != nil {
		return 0, 0, goerr.Wrap(err, "failed to count staff")
	}
	return total, active, nil
}

// GroupProjects returns project counts grouped by the given dimension
func (p *Postgres) GroupProjects(ctx context.Context, dim interfaces.ProjectDimension) (map[string]int, error) {
	var column string
	switch dim {
	case interfaces.DimensionCategory:
		column = "category"
	case interfaces.DimensionSector:
		column = "sector"
	case interfaces.DimensionSide:
		column = "side"
	default:
		return nil, goerr.New("unknown project dimension", goerr.V("dimension", dim))
	}

	// column comes from the closed switch above, never from input
	query := `SELECT COALESCE(NULLIF(` + column + `, ''), 'Unspecified'), COUNT(*) FROM projects GROUP BY 1`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to group projects", goerr.V("dimension", dim))
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, goerr.Wrap(err, "failed to scan group row")
		}
		counts[key] = count
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read group rows")
	}

	return counts, nil
}

// GroupStaffByPosition returns active staff counts grouped by position
func (p *Postgres) GroupStaffByPosition(ctx context.Context) (map[string]int, error) {
	const query = `
		SELECT COALESCE(NULLIF(position, ''), 'Unspecified'), COUNT(*)
		FROM staff
		WHERE active
		GROUP BY 1
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to group staff by position")
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var position string
		var count int
		if err := rows.Scan(&position, &count); err != nil {
			return nil, goerr.Wrap(err, "failed to scan position row")
		}
		counts[position] = count
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read position rows")
	}

	return counts, nil
}

// Close releases the connection pool
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
