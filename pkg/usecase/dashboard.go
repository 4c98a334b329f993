package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/lexops-lab/dealdesk/pkg/domain/interfaces"
	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// DefaultCacheTTL is how long a computed dashboard payload stays valid
const DefaultCacheTTL = 3 * time.Minute

// AnonymousIdentity partitions the cache for callers without an identity
const AnonymousIdentity = "anonymous"

// Dashboard derives the workforce-demand views from the repository and
// serves them behind a short-lived response cache
type Dashboard struct {
	repo     interfaces.Repository
	cache    interfaces.Cache
	coverage *model.CoverageConfig
	ttl      time.Duration
	now      func() time.Time
}

// DashboardOption customizes a Dashboard
type DashboardOption func(*Dashboard)

// WithCacheTTL overrides the response cache TTL
func WithCacheTTL(ttl time.Duration) DashboardOption {
	return func(uc *Dashboard) {
		uc.ttl = ttl
	}
}

// WithClock injects the time source, for deterministic tests
func WithClock(now func() time.Time) DashboardOption {
	return func(uc *Dashboard) {
		uc.now = now
	}
}

// NewDashboard creates a new Dashboard use case. A nil coverage config
// falls back to the built-in US Law / HK Law partner policy.
func NewDashboard(repo interfaces.Repository, cache interfaces.Cache, coverage *model.CoverageConfig, opts ...DashboardOption) *Dashboard {
	if coverage == nil {
		coverage = model.DefaultCoverageConfig()
	}

	uc := &Dashboard{
		repo:     repo,
		cache:    cache,
		coverage: coverage,
		ttl:      DefaultCacheTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// GetDashboard returns the dashboard payload for the window, serving from
// cache when a live entry exists for the same window size and identity.
// Any failing sub-computation fails the whole request; the payload has no
// partial form.
func (uc *Dashboard) GetDashboard(ctx context.Context, identity string, days int) (*model.DashboardStats, error) {
	if identity == "" {
		identity = AnonymousIdentity
	}

	w := NormalizeWindow(uc.now(), days)
	key := cacheKey(w.Days, identity)

	if cached, ok := uc.lookupCache(ctx, key); ok {
		cacheHits.Inc()
		return cached, nil
	}
	cacheMisses.Inc()

	started := time.Now()
	stats, err := uc.buildDashboard(ctx, w)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build dashboard",
			goerr.V("days", w.Days), goerr.V("identity", identity))
	}
	buildDuration.Observe(time.Since(started).Seconds())

	uc.storeCache(ctx, key, stats)
	return stats, nil
}

func cacheKey(days int, identity string) string {
	return fmt.Sprintf("dashboard:v1:%d:%s", days, identity)
}

// lookupCache treats any cache failure as a miss; a cache outage must not
// take the dashboard down
func (uc *Dashboard) lookupCache(ctx context.Context, key string) (*model.DashboardStats, bool) {
	data, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		ctxlog.From(ctx).Warn("Dashboard cache read failed, recomputing",
			"key", key, "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var stats model.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		ctxlog.From(ctx).Warn("Dashboard cache entry is corrupt, recomputing",
			"key", key, "error", err)
		return nil, false
	}
	return &stats, true
}

func (uc *Dashboard) storeCache(ctx context.Context, key string, stats *model.DashboardStats) {
	data, err := json.Marshal(stats)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to marshal dashboard for cache", "error", err)
		return
	}
	if err := uc.cache.Set(ctx, key, data, uc.ttl); err != nil {
		ctxlog.From(ctx).Warn("Dashboard cache write failed", "key", key, "error", err)
	}
}

// buildDashboard fans out the independent repository reads, waits for all
// of them, then derives the radar, heatmap and action items synchronously
func (uc *Dashboard) buildDashboard(ctx context.Context, w Window) (*model.DashboardStats, error) {
	var (
		projects           []*model.Project
		activeStaff        []*model.Staff
		ongoingAssignments []model.Assignment
		statusCounts       map[types.ProjectStatus]int
		staffTotal         int
		staffActive        int
		byCategory         map[string]int
		bySector           map[string]int
		bySide             map[string]int
		byPosition         map[string]int
	)

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() (err error) {
		projects, err = uc.repo.ListProjectsInWindow(egCtx, w.Start, w.End)
		return err
	})
	eg.Go(func() (err error) {
		activeStaff, err = uc.repo.ListActiveStaff(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		ongoingAssignments, err = uc.repo.ListAssignmentsForOngoingProjects(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		statusCounts, err = uc.repo.CountProjectsByStatus(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		staffTotal, staffActive, err = uc.repo.CountStaff(egCtx)
		return err
	})
	eg.Go(func() (err error) {
		byCategory, err = uc.repo.GroupProjects(egCtx, interfaces.DimensionCategory)
		return err
	})
	eg.Go(func() (err error) {
		bySector, err = uc.repo.GroupProjects(egCtx, interfaces.DimensionSector)
		return err
	})
	eg.Go(func() (err error) {
		bySide, err = uc.repo.GroupProjects(egCtx, interfaces.DimensionSide)
		return err
	})
	eg.Go(func() (err error) {
		byPosition, err = uc.repo.GroupStaffByPosition(egCtx)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	periods := BuildPeriods(w)

	total := 0
	for _, c := range statusCounts {
		total += c
	}

	stats := &model.DashboardStats{
		WindowDays:  w.Days,
		WindowStart: w.Start,
		WindowEnd:   w.End,
		Projects: model.ProjectCounts{
			Total:     total,
			Active:    statusCounts[types.ProjectStatusActive],
			Slowdown:  statusCounts[types.ProjectStatusSlowdown],
			Suspended: statusCounts[types.ProjectStatusSuspended],
		},
		Staff: model.StaffCounts{
			Total:  staffTotal,
			Active: staffActive,
		},
		ByCategory:      sortedBreakdown(byCategory),
		BySector:        sortedBreakdown(bySector),
		BySide:          sortedBreakdown(bySide),
		ByPosition:      sortedBreakdown(byPosition),
		ByJurisdiction:  sortedBreakdown(groupByJurisdiction(ongoingAssignments)),
		DealRadar:       BuildDealRadar(uc.coverage, projects, w),
		Weeks:           PeriodKeys(periods),
		StaffingHeatmap: BuildHeatmap(activeStaff, projects, periods),
		ActionItems: model.ActionItems{
			UnstaffedMilestones: BuildUnstaffedMilestones(uc.coverage, projects),
		},
	}

	// The payload contract has no nullable collections
	if stats.DealRadar == nil {
		stats.DealRadar = []model.MilestoneEvent{}
	}
	if stats.StaffingHeatmap == nil {
		stats.StaffingHeatmap = []model.HeatmapRow{}
	}
	if stats.ActionItems.UnstaffedMilestones == nil {
		stats.ActionItems.UnstaffedMilestones = []model.UnstaffedMilestone{}
	}

	return stats, nil
}

// groupByJurisdiction counts ongoing-project assignments per jurisdiction
// label, showing where current demand concentrates
func groupByJurisdiction(assignments []model.Assignment) map[string]int {
	counts := make(map[string]int)
	for _, a := range assignments {
		label := a.Jurisdiction
		if label == "" {
			label = "Unspecified"
		}
		counts[label]++
	}
	return counts
}

// sortedBreakdown flattens a count map into items ordered by descending
// count, then name, so payloads are deterministic
func sortedBreakdown(counts map[string]int) []model.BreakdownItem {
	items := make([]model.BreakdownItem, 0, len(counts))
	for name, count := range counts {
		items = append(items, model.BreakdownItem{Name: name, Count: count})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})
	return items
}
