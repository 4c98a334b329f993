package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
	"github.com/lexops-lab/dealdesk/pkg/repository"
	"github.com/lexops-lab/dealdesk/pkg/service/cache"
	"github.com/lexops-lab/dealdesk/pkg/usecase"
	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/goerr/v2"
)

var testNow = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

func seedDashboardRepo(t *testing.T) *repository.Memory {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()

	gt.NoError(t, repo.PutStaff(ctx, &model.Staff{
		ID: "staff-amy", Name: "Amy Chan", Position: "Partner", Active: true}))
	gt.NoError(t, repo.PutStaff(ctx, &model.Staff{
		ID: "staff-ben", Name: "Ben Liu", Position: "Associate", Active: true}))

	gt.NoError(t, repo.PutProject(ctx, &model.Project{
		ID:         "prj-aurora",
		Name:       "Project Aurora",
		Category:   "IPO",
		Status:     types.ProjectStatusActive,
		FilingDate: types.NewDate(2025, time.January, 5),
	}))
	gt.NoError(t, repo.PutAssignment(ctx, model.Assignment{
		ProjectID: "prj-aurora", StaffID: "staff-amy", Jurisdiction: model.JurisdictionUS}))

	return repo
}

func newDashboardUC(repo *repository.Memory) *usecase.Dashboard {
	return usecase.NewDashboard(repo, cache.NewMemory(), nil,
		usecase.WithClock(func() time.Time { return testNow }))
}

func TestGetDashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("composes the full payload", func(t *testing.T) {
		uc := newDashboardUC(seedDashboardRepo(t))

		stats, err := uc.GetDashboard(ctx, "amy", 30)
		gt.NoError(t, err)

		gt.Equal(t, stats.WindowDays, 30)
		gt.Equal(t, stats.WindowStart.String(), "2025-01-01")
		gt.Equal(t, stats.WindowEnd.String(), "2025-01-30")

		gt.Equal(t, stats.Projects.Total, 1)
		gt.Equal(t, stats.Projects.Active, 1)
		gt.Equal(t, stats.Staff.Active, 2)

		gt.Equal(t, len(stats.DealRadar), 1)
		gt.Equal(t, stats.DealRadar[0].Type, types.MilestoneTypeFiling)
		gt.Equal(t, stats.DealRadar[0].LeadContactName, "Amy Chan")

		gt.Equal(t, len(stats.Weeks), 5)
		gt.Equal(t, stats.Weeks[0], "2025-01-01_2025-01-07")
		gt.Equal(t, len(stats.StaffingHeatmap), 2)
		gt.Equal(t, stats.StaffingHeatmap[0].Weeks[0].Count, 1)

		gt.Equal(t, len(stats.ActionItems.UnstaffedMilestones), 1)
		gt.False(t, stats.ActionItems.UnstaffedMilestones[0].NeedsUSPartner)
		gt.True(t, stats.ActionItems.UnstaffedMilestones[0].NeedsHKPartner)
	})

	t.Run("empty data yields well-formed zero payload", func(t *testing.T) {
		uc := newDashboardUC(repository.NewMemory())

		stats, err := uc.GetDashboard(ctx, "amy", 30)
		gt.NoError(t, err)
		gt.NotNil(t, stats.DealRadar)
		gt.NotNil(t, stats.StaffingHeatmap)
		gt.NotNil(t, stats.ActionItems.UnstaffedMilestones)
		gt.Equal(t, len(stats.DealRadar), 0)
		gt.Equal(t, len(stats.Weeks), 5)
	})

	t.Run("clamps the day count instead of rejecting", func(t *testing.T) {
		uc := newDashboardUC(seedDashboardRepo(t))

		stats, err := uc.GetDashboard(ctx, "amy", -10)
		gt.NoError(t, err)
		gt.Equal(t, stats.WindowDays, 1)

		stats, err = uc.GetDashboard(ctx, "amy", 10000)
		gt.NoError(t, err)
		gt.Equal(t, stats.WindowDays, 365)
	})
}

func TestGetDashboardCaching(t *testing.T) {
	ctx := context.Background()

	t.Run("second request with same key reuses the cached payload", func(t *testing.T) {
		repo := seedDashboardRepo(t)
		uc := newDashboardUC(repo)

		first, err := uc.GetDashboard(ctx, "amy", 30)
		gt.NoError(t, err)
		gt.Equal(t, first.Projects.Total, 1)

		// Data changes are invisible until the entry expires
		gt.NoError(t, repo.PutProject(ctx, &model.Project{
			ID: "prj-new", Name: "New", Status: types.ProjectStatusActive,
			FilingDate: types.NewDate(2025, time.January, 8),
		}))

		second, err := uc.GetDashboard(ctx, "amy", 30)
		gt.NoError(t, err)
		gt.Equal(t, second.Projects.Total, 1)
		gt.Equal(t, second, first)
	})

	t.Run("different identity recomputes", func(t *testing.T) {
		repo := seedDashboardRepo(t)
		uc := newDashboardUC(repo)

		_, err := uc.GetDashboard(ctx, "amy", 30)
		gt.NoError(t, err)

		gt.NoError(t, repo.PutProject(ctx, &model.Project{
			ID: "prj-new", Name: "New", Status: types.ProjectStatusActive,
			FilingDate: types.NewDate(2025, time.January, 8),
		}))

		stats, err := uc.GetDashboard(ctx, "ben", 30)
		gt.NoError(t, err)
		gt.Equal(t, stats.Projects.Total, 2)
	})

	t.Run("different window recomputes", func(t *testing.T) {
		repo := seedDashboardRepo(t)
		uc := newDashboardUC(repo)

		_, err := uc.GetDashboard(ctx, "amy", 30)
		gt.NoError(t, err)

		stats, err := uc.GetDashboard(ctx, "amy", 90)
		gt.NoError(t, err)
		gt.Equal(t, stats.WindowDays, 90)
		gt.Equal(t, len(stats.Weeks), 6)
	})

	t.Run("expired entry triggers a rebuild", func(t *testing.T) {
		repo := seedDashboardRepo(t)
		now := testNow
		c := cache.NewMemoryWithClock(func() time.Time { return now })
		uc := usecase.NewDashboard(repo, c, nil,
			usecase.WithClock(func() time.Time { return now }),
			usecase.WithCacheTTL(time.Minute))

		_, err := uc.GetDashboard(ctx, "amy", 30)
		gt.NoError(t, err)

		gt.NoError(t, repo.PutProject(ctx, &model.Project{
			ID: "prj-new", Name: "New", Status: types.ProjectStatusActive,
			FilingDate: types.NewDate(2025, time.January, 8),
		}))

		now = now.Add(2 * time.Minute)
		stats, err := uc.GetDashboard(ctx, "amy", 30)
		gt.NoError(t, err)
		gt.Equal(t, stats.Projects.Total, 2)
	})

	t.Run("empty identity falls back to anonymous", func(t *testing.T) {
		repo := seedDashboardRepo(t)
		uc := newDashboardUC(repo)

		_, err := uc.GetDashboard(ctx, "", 30)
		gt.NoError(t, err)

		gt.NoError(t, repo.PutProject(ctx, &model.Project{
			ID: "prj-new", Name: "New", Status: types.ProjectStatusActive,
			FilingDate: types.NewDate(2025, time.January, 8),
		}))

		stats, err := uc.GetDashboard(ctx, usecase.AnonymousIdentity, 30)
		gt.NoError(t, err)
		gt.Equal(t, stats.Projects.Total, 1)
	})
}

// failingRepo wraps the memory repository and fails one read, to verify
// the whole aggregation fails together
type failingRepo struct {
	*repository.Memory
}

func (r *failingRepo) CountStaff(ctx context.Context) (int, int, error) {
	return 0, 0, goerr.New("staff table unavailable")
}

func TestGetDashboardFailure(t *testing.T) {
	ctx := context.Background()

	repo := &failingRepo{Memory: seedDashboardRepo(t)}
	uc := usecase.NewDashboard(repo, cache.NewMemory(), nil,
		usecase.WithClock(func() time.Time { return testNow }))

	_, err := uc.GetDashboard(ctx, "amy", 30)
	gt.Error(t, err)

	// the failed result must not be cached
	_, err = uc.GetDashboard(ctx, "amy", 30)
	gt.Error(t, err)
}
