package http_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	controller "github.com/lexops-lab/dealdesk/pkg/controller/http"
	"github.com/lexops-lab/dealdesk/pkg/domain/model"
	"github.com/lexops-lab/dealdesk/pkg/domain/types"
	"github.com/lexops-lab/dealdesk/pkg/repository"
	"github.com/lexops-lab/dealdesk/pkg/service/cache"
	"github.com/lexops-lab/dealdesk/pkg/usecase"
	"github.com/m-mizutani/gt"
)

func newTestServer(t *testing.T) *controller.Server {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewMemory()

	gt.NoError(t, repo.PutStaff(ctx, &model.Staff{
		ID: "staff-amy", Name: "Amy Chan", Position: "Partner", Active: true}))
	gt.NoError(t, repo.PutProject(ctx, &model.Project{
		ID:         "prj-aurora",
		Name:       "Project Aurora",
		Status:     types.ProjectStatusActive,
		FilingDate: types.NewDate(2025, time.January, 5),
	}))
	gt.NoError(t, repo.PutAssignment(ctx, model.Assignment{
		ProjectID: "prj-aurora", StaffID: "staff-amy", Jurisdiction: model.JurisdictionUS}))

	uc := usecase.NewDashboard(repo, cache.NewMemory(), nil,
		usecase.WithClock(func() time.Time {
			return time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
		}))

	return controller.NewServer(ctx, "localhost:0", uc)
}

func TestHandleHealth(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	gt.Equal(t, rec.Code, 200)
	gt.S(t, rec.Body.String()).Contains(`"status":"ok"`)
}

func TestHandleDashboard(t *testing.T) {
	t.Run("returns the payload with default window", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest("GET", "/api/dashboard", nil)
		req.Header.Set(controller.IdentityHeader, "amy")
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)

		gt.Equal(t, rec.Code, 200)
		gt.Equal(t, rec.Header().Get("Content-Type"), "application/json")

		var stats model.DashboardStats
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		gt.Equal(t, stats.WindowDays, 30)
		gt.Equal(t, len(stats.DealRadar), 1)
		gt.Equal(t, stats.DealRadar[0].ProjectName, "Project Aurora")
		gt.Equal(t, len(stats.Weeks), 5)
	})

	t.Run("honors the days parameter", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest("GET", "/api/dashboard?days=90", nil)
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)

		gt.Equal(t, rec.Code, 200)

		var stats model.DashboardStats
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		gt.Equal(t, stats.WindowDays, 90)
		gt.Equal(t, len(stats.Weeks), 6)
	})

	t.Run("clamps out-of-range days", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest("GET", "/api/dashboard?days=99999", nil)
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)

		gt.Equal(t, rec.Code, 200)

		var stats model.DashboardStats
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		gt.Equal(t, stats.WindowDays, 365)
	})

	t.Run("unparsable days falls back to default", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest("GET", "/api/dashboard?days=soon", nil)
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)

		gt.Equal(t, rec.Code, 200)

		var stats model.DashboardStats
		gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		gt.Equal(t, stats.WindowDays, 30)
	})

	t.Run("serializes dates as ISO and period keys as date pairs", func(t *testing.T) {
		server := newTestServer(t)

		req := httptest.NewRequest("GET", "/api/dashboard", nil)
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)

		body := rec.Body.String()
		gt.S(t, body).Contains(`"date":"2025-01-05"`)
		gt.S(t, body).Contains(`"2025-01-01_2025-01-07"`)
	})
}
