package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/lexops-lab/dealdesk/pkg/domain/interfaces"
	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	projectsCollection = "projects"
	staffCollection    = "staff"

	fieldFilingDate  = "filing_date"
	fieldListingDate = "listing_date"
)

// Firestore implements Repository with Firestore. Assignments are embedded
// in their project document with staff snapshots, so window reads need no
// join. Milestone dates are stored as "YYYY-MM-DD" strings; ISO ordering
// makes range queries plain string comparisons.
type Firestore struct {
	client *firestore.Client
}

// projectDoc is the Firestore document form of a project
type projectDoc struct {
	ID              string          `firestore:"id"`
	Name            string          `firestore:"name"`
	Category        string          `firestore:"category"`
	Status          string          `firestore:"status"`
	Priority        string          `firestore:"priority"`
	Side            string          `firestore:"side"`
	Sector          string          `firestore:"sector"`
	FilingDate      string          `firestore:"filing_date"`
	ListingDate     string          `firestore:"listing_date"`
	LastConfirmedAt *time.Time      `firestore:"last_confirmed_at"`
	Assignments     []assignmentDoc `firestore:"assignments"`
}

// assignmentDoc is an assignment embedded in a project document
type assignmentDoc struct {
	ID           string `firestore:"id"`
	StaffID      string `firestore:"staff_id"`
	Jurisdiction string `firestore:"jurisdiction"`
	StaffName    string `firestore:"staff_name"`
	Position     string `firestore:"position"`
}

// staffDoc is the Firestore document form of a staff member
type staffDoc struct {
	ID         string `firestore:"id"`
	Name       string `firestore:"name"`
	Position   string `firestore:"position"`
	Active     bool   `firestore:"active"`
	Department string `firestore:"department"`
}

// NewFirestore creates a new Firestore repository
func NewFirestore(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	logger := ctxlog.From(ctx)

	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client")
	}

	// Fail fast on bad credentials; an empty collection is fine
	_, err = client.Collection(projectsCollection).Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		if status.Code(err) == codes.PermissionDenied || status.Code(err) == codes.Unauthenticated {
			_ = client.Close()
			return nil, goerr.Wrap(err, "failed to connect to firestore project",
				goerr.V("firestore error code", status.Code(err).String()),
			)
		}
		logger.Debug("Firestore connection test returned error (may be empty collection)",
			"error", err,
			"errorCode", status.Code(err).String(),
		)
	}

	logger.Info("Firestore repository initialized successfully",
		"projectID", projectID,
		"databaseID", databaseID,
	)

	return &Firestore{client: client}, nil
}

// ListProjectsInWindow returns projects with a filing or listing date in
// [start, end]. Firestore cannot express the OR across two fields in one
// range query, so one query runs per milestone field and results merge by
// project ID.
func (f *Firestore) ListProjectsInWindow(ctx context.Context, start, end types.Date) ([]*model.Project, error) {
	if start.IsZero() || end.IsZero() {
		return nil, goerr.New("window boundaries are required")
	}

	merged := make(map[string]*model.Project)
	var ordered []*model.Project

	for _, field := range []string{fieldFilingDate, fieldListingDate} {
		iter := f.client.Collection(projectsCollection).
			Where(field, ">=", start.String()).
			Where(field, "<=", end.String()).
			OrderBy(field, firestore.Asc).
			Documents(ctx)

		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, goerr.Wrap(err, "failed to query projects in window",
					goerr.V("field", field))
			}

			var d projectDoc
			if err := doc.DataTo(&d); err != nil {
				return nil, goerr.Wrap(err, "failed to decode project document",
					goerr.V("doc", doc.Ref.ID))
			}

			if _, seen := merged[d.ID]; seen {
				continue
			}
			prj, err := d.toModel()
			if err != nil {
				return nil, goerr.Wrap(err, "invalid project document",
					goerr.V("doc", doc.Ref.ID))
			}
			merged[d.ID] = prj
			ordered = append(ordered, prj)
		}
	}

	return ordered, nil
}

func (d *projectDoc) toModel() (*model.Project, error) {
	prj := &model.Project{
		ID:              types.ProjectID(d.ID),
		Name:            d.Name,
		Category:        d.Category,
		Status:          types.ProjectStatus(d.Status),
		Priority:        d.Priority,
		Side:            d.Side,
		Sector:          d.Sector,
		LastConfirmedAt: d.LastConfirmedAt,
	}

	if d.FilingDate != "" {
		date, err := types.ParseDate(d.FilingDate)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid filing date")
		}
		prj.FilingDate = date
	}
	if d.ListingDate != "" {
		date, err := types.ParseDate(d.ListingDate)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid listing date")
		}
		prj.ListingDate = date
	}

	for _, a := range d.Assignments {
		prj.Assignments = append(prj.Assignments, model.Assignment{
			ID:           types.AssignmentID(a.ID),
			ProjectID:    prj.ID,
			StaffID:      types.StaffID(a.StaffID),
			Jurisdiction: a.Jurisdiction,
			StaffName:    a.StaffName,
			Position:     a.Position,
		})
	}

	return prj, nil
}

// ListActiveStaff returns active staff ordered by name
func (f *Firestore) ListActiveStaff(ctx context.Context) ([]*model.Staff, error) {
	iter := f.client.Collection(staffCollection).
		Where("active", "==", true).
		OrderBy("name", firestore.Asc).
		Documents(ctx)

	var staff []*model.Staff
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to query active staff")
		}

		var d staffDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode staff document",
				goerr.V("doc", doc.Ref.ID))
		}

		staff = append(staff, &model.Staff{
			ID:         types.StaffID(d.ID),
			Name:       d.Name,
			Position:   d.Position,
			Active:     d.Active,
			Department: d.Department,
		})
	}

	return staff, nil
}

// ListAssignmentsForOngoingProjects flattens embedded assignments from
// projects with ongoing status
func (f *Firestore) ListAssignmentsForOngoingProjects(ctx context.Context) ([]model.Assignment, error) {
	iter := f.client.Collection(projectsCollection).
		Where("status", "in", []string{
			types.ProjectStatusActive.String(),
			types.ProjectStatusSlowdown.String(),
		}).
		Documents(ctx)

	var assignments []model.Assignment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to query ongoing projects")
		}

		var d projectDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode project document",
				goerr.V("doc", doc.Ref.ID))
		}

		for _, a := range d.Assignments {
			assignments = append(assignments, model.Assignment{
				ID:           types.AssignmentID(a.ID),
				ProjectID:    types.ProjectID(d.ID),
				StaffID:      types.StaffID(a.StaffID),
				Jurisdiction: a.Jurisdiction,
				StaffName:    a.StaffName,
				Position:     a.Position,
			})
		}
	}

	return assignments, nil
}

// CountProjectsByStatus returns project totals keyed by status
func (f *Firestore) CountProjectsByStatus(ctx context.Context) (map[types.ProjectStatus]int, error) {
	counts := make(map[types.ProjectStatus]int)

	iter := f.client.Collection(projectsCollection).Select("status").Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects for status counts")
		}

		data := doc.Data()
		if s, ok := data["status"].(string); ok {
			counts[types.ProjectStatus(s)]++
		}
	}

	return counts, nil
}

// CountStaff returns total and active staff counts
func (f *Firestore) CountStaff(ctx context.Context) (int, int, error) {
	total, active := 0, 0

	iter := f.client.Collection(staffCollection).Select("active").Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, 0, goerr.Wrap(err, "failed to iterate staff for counts")
		}

		total++
		if a, ok := doc.Data()["active"].(bool); ok && a {
			active++
		}
	}

	return total, active, nil
}

// GroupProjects returns project counts grouped by the given dimension
func (f *Firestore) GroupProjects(ctx context.Context, dim interfaces.ProjectDimension) (map[string]int, error) {
	var field string
	switch dim {
	case interfaces.DimensionCategory:
		field = "category"
	case interfaces.DimensionSector:
		field = "sector"
	case interfaces.DimensionSide:
		field = "side"
	default:
		return nil, goerr.New("unknown project dimension", goerr.V("dimension", dim))
	}

	counts := make(map[string]int)

	iter := f.client.Collection(projectsCollection).Select(field).Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects for grouping",
				goerr.V("dimension", dim))
		}

		key, _ := doc.Data()[field].(string)
		if key == "" {
			key = "Unspecified"
		}
		counts[key]++
	}

	return counts, nil
}

// GroupStaffByPosition returns active staff counts grouped by position
func (f *Firestore) GroupStaffByPosition(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)

	iter := f.client.Collection(staffCollection).
		Where("active", "==", true).
		Select("position").
		Documents(ctx)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate staff for position grouping")
		}

		position, _ := doc.Data()["position"].(string)
		if position == "" {
			position = "Unspecified"
		}
		counts[position]++
	}

	return counts, nil
}

// Close closes the Firestore client
func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
