package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(cohorts CohortReader, actions ActionReader) *echo.Echo {
	e := echo.New()
	svc := newTestDashboard(cohorts, actions)
	NewHandler(svc, testWindows).RegisterRoutes(e.Group(""))
	return e
}

func TestHandlerStats_ServesSampleWhenStoresDown(t *testing.T) {
	down := errors.New("connection refused")
	e := newTestHandler(
		&mockCohorts{upcomingErr: down, missedErr: down, iitErr: down},
		&mockActions{err: down},
	)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 even with stores down, got %d", rec.Code)
	}
	var stats Stats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := Stats{IITCount: 8, MissedCount: 15, UpcomingCount: 22, PendingActionsCount: 5}
	if stats != want {
		t.Errorf("expected sample stats %+v, got %+v", want, stats)
	}
}

func TestHandlerSummary_Defaults(t *testing.T) {
	e := newTestHandler(
		&mockCohorts{upcoming: []int{1}, missed: []int{2}, iit: []int{3}},
		&mockActions{},
	)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var summary Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if summary.TotalActivePatients != 3 {
		t.Errorf("expected 3 active patients, got %d", summary.TotalActivePatients)
	}
}

func TestHandlerSummary_BadWindowParam(t *testing.T) {
	e := newTestHandler(&mockCohorts{}, &mockActions{})

	for _, q := range []string{"upcomingDays=-1", "missedDays=x", "iitDays=2.5"} {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/summary?"+q, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestHandlerSummary_StoreErrorIs500(t *testing.T) {
	e := newTestHandler(&mockCohorts{iitErr: errors.New("timeout")}, &mockActions{})

	req := httptest.NewRequest(http.MethodGet, "/dashboard/summary", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
