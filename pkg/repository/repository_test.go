package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/lexops-lab/dealdesk/pkg/domain/interfaces"
	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
	"github.com/lexops-lab/dealdesk/pkg/repository"
	"github.com/m-mizutani/gt"
)

func seedRepo(t *testing.T) *repository.Memory {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()

	staff := []*model.Staff{
		{ID: "staff-amy", Name: "Amy Chan", Position: "Partner", Active: true, Department: "Capital Markets"},
		{ID: "staff-ben", Name: "Ben Liu", Position: "Associate", Active: true, Department: "Capital Markets"},
		{ID: "staff-cleo", Name: "Cleo Wong", Position: "Senior FLIC", Active: false, Department: "Capital Markets"},
	}
	for _, s := range staff {
		gt.NoError(t, repo.PutStaff(ctx, s))
	}

	projects := []*model.Project{
		{
			ID:          "prj-aurora",
			Name:        "Project Aurora",
			Category:    "IPO",
			Status:      types.ProjectStatusActive,
			Side:        "Issuer",
			Sector:      "Biotech",
			FilingDate:  types.NewDate(2025, time.January, 10),
			ListingDate: types.NewDate(2025, time.March, 15),
		},
		{
			ID:         "prj-borealis",
			Name:       "Project Borealis",
			Category:   "Bond",
			Status:     types.ProjectStatusSlowdown,
			Side:       "Underwriter",
			FilingDate: types.NewDate(2025, time.February, 20),
		},
		{
			ID:     "prj-comet",
			Name:   "Project Comet",
			Status: types.ProjectStatusSuspended,
		},
	}
	for _, p := range projects {
		gt.NoError(t, repo.PutProject(ctx, p))
	}

	assignments := []model.Assignment{
		{ProjectID: "prj-aurora", StaffID: "staff-amy", Jurisdiction: model.JurisdictionUS},
		{ProjectID: "prj-aurora", StaffID: "staff-ben", Jurisdiction: model.JurisdictionHK},
		{ProjectID: "prj-comet", StaffID: "staff-ben", Jurisdiction: model.JurisdictionHK},
	}
	for _, a := range assignments {
		gt.NoError(t, repo.PutAssignment(ctx, a))
	}

	return repo
}

func TestMemoryListProjectsInWindow(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo(t)
	defer repo.Close()

	t.Run("matches either milestone date", func(t *testing.T) {
		projects, err := repo.ListProjectsInWindow(ctx,
			types.NewDate(2025, time.January, 1), types.NewDate(2025, time.February, 28))
		gt.NoError(t, err)
		gt.Equal(t, len(projects), 2)
		gt.Equal(t, projects[0].ID, types.ProjectID("prj-aurora"))
		gt.Equal(t, projects[1].ID, types.ProjectID("prj-borealis"))
	})

	t.Run("listing date alone brings a project into window", func(t *testing.T) {
		projects, err := repo.ListProjectsInWindow(ctx,
			types.NewDate(2025, time.March, 1), types.NewDate(2025, time.March, 31))
		gt.NoError(t, err)
		gt.Equal(t, len(projects), 1)
		gt.Equal(t, projects[0].ID, types.ProjectID("prj-aurora"))
	})

	t.Run("joins assignments with staff snapshots in insertion order", func(t *testing.T) {
		projects, err := repo.ListProjectsInWindow(ctx,
			types.NewDate(2025, time.January, 1), types.NewDate(2025, time.January, 31))
		gt.NoError(t, err)
		gt.Equal(t, len(projects), 1)

		assignments := projects[0].Assignments
		gt.Equal(t, len(assignments), 2)
		gt.Equal(t, assignments[0].StaffName, "Amy Chan")
		gt.Equal(t, assignments[0].Position, "Partner")
		gt.Equal(t, assignments[1].StaffName, "Ben Liu")
		gt.Equal(t, assignments[1].Position, "Associate")
	})

	t.Run("dateless projects never match", func(t *testing.T) {
		projects, err := repo.ListProjectsInWindow(ctx,
			types.NewDate(2020, time.January, 1), types.NewDate(2030, time.December, 31))
		gt.NoError(t, err)
		for _, p := range projects {
			gt.NotEqual(t, p.ID, types.ProjectID("prj-comet"))
		}
	})

	t.Run("rejects zero boundaries", func(t *testing.T) {
		_, err := repo.ListProjectsInWindow(ctx, types.Date{}, types.NewDate(2025, time.January, 1))
		gt.Error(t, err)
	})
}

func TestMemoryListActiveStaff(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo(t)
	defer repo.Close()

	staff, err := repo.ListActiveStaff(ctx)
	gt.NoError(t, err)
	gt.Equal(t, len(staff), 2)
	gt.Equal(t, staff[0].Name, "Amy Chan")
	gt.Equal(t, staff[1].Name, "Ben Liu")
}

func TestMemoryListAssignmentsForOngoingProjects(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo(t)
	defer repo.Close()

	assignments, err := repo.ListAssignmentsForOngoingProjects(ctx)
	gt.NoError(t, err)

	// prj-comet is suspended, so its assignment must not appear
	gt.Equal(t, len(assignments), 2)
	for _, a := range assignments {
		gt.Equal(t, a.ProjectID, types.ProjectID("prj-aurora"))
	}
}

func TestMemoryCounts(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo(t)
	defer repo.Close()

	t.Run("projects by status", func(t *testing.T) {
		counts, err := repo.CountProjectsByStatus(ctx)
		gt.NoError(t, err)
		gt.Equal(t, counts[types.ProjectStatusActive], 1)
		gt.Equal(t, counts[types.ProjectStatusSlowdown], 1)
		gt.Equal(t, counts[types.ProjectStatusSuspended], 1)
	})

	t.Run("staff totals", func(t *testing.T) {
		total, active, err := repo.CountStaff(ctx)
		gt.NoError(t, err)
		gt.Equal(t, total, 3)
		gt.Equal(t, active, 2)
	})
}

func TestMemoryGroupProjects(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo(t)
	defer repo.Close()

	t.Run("by category with unspecified bucket", func(t *testing.T) {
		counts, err := repo.GroupProjects(ctx, interfaces.DimensionCategory)
		gt.NoError(t, err)
		gt.Equal(t, counts["IPO"], 1)
		gt.Equal(t, counts["Bond"], 1)
		gt.Equal(t, counts["Unspecified"], 1)
	})

	t.Run("by side", func(t *testing.T) {
		counts, err := repo.GroupProjects(ctx, interfaces.DimensionSide)
		gt.NoError(t, err)
		gt.Equal(t, counts["Issuer"], 1)
		gt.Equal(t, counts["Underwriter"], 1)
	})

	t.Run("unknown dimension fails", func(t *testing.T) {
		_, err := repo.GroupProjects(ctx, interfaces.ProjectDimension("bogus"))
		gt.Error(t, err)
	})
}

func TestMemoryGroupStaffByPosition(t *testing.T) {
	ctx := context.Background()
	repo := seedRepo(t)
	defer repo.Close()

	counts, err := repo.GroupStaffByPosition(ctx)
	gt.NoError(t, err)
	gt.Equal(t, counts["Partner"], 1)
	gt.Equal(t, counts["Associate"], 1)

	// inactive staff stay out of the breakdown
	gt.Equal(t, counts["Senior FLIC"], 0)
}
