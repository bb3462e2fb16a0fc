package cohort

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(repo Repository) (*echo.Echo, *Handler) {
	e := echo.New()
	h := NewHandler(newTestService(repo), Defaults{
		UpcomingDays:    30,
		MissedDays:      27,
		IITLookbackDays: 27,
	})
	h.RegisterRoutes(e.Group(""))
	return e, h
}

func TestHandlerUpcoming_DefaultWindow(t *testing.T) {
	repo := &memRepo{
		encounters: []fxEncounter{
			{id: 1, patientID: 7, formID: FormScheduling, datetime: days(-2)},
			{id: 2, patientID: 3, formID: FormScheduling, datetime: days(-2)},
		},
		obs: []fxObs{
			{conceptID: ConceptAppointmentDate, encounterID: 1, valueDatetime: days(10)},
			{conceptID: ConceptAppointmentDate, encounterID: 2, valueDatetime: days(20)},
		},
	}
	e, _ := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/cohorts/upcoming", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp cohortResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.WindowDays != 30 {
		t.Errorf("expected default window 30, got %d", resp.WindowDays)
	}
	if resp.Count != 2 || len(resp.PatientIDs) != 2 {
		t.Fatalf("expected 2 patients, got %+v", resp)
	}
	if resp.PatientIDs[0] != 3 || resp.PatientIDs[1] != 7 {
		t.Errorf("expected sorted patient IDs [3 7], got %v", resp.PatientIDs)
	}
}

func TestHandlerUpcoming_DaysOverride(t *testing.T) {
	repo := &memRepo{
		encounters: []fxEncounter{
			{id: 1, patientID: 7, formID: FormScheduling, datetime: days(-2)},
		},
		obs: []fxObs{
			{conceptID: ConceptAppointmentDate, encounterID: 1, valueDatetime: days(20)},
		},
	}
	e, _ := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/cohorts/upcoming?days=10", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp cohortResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.WindowDays != 10 || resp.Count != 0 {
		t.Errorf("expected empty cohort in 10-day window, got %+v", resp)
	}
}

func TestHandlerCohorts_BadDaysParam(t *testing.T) {
	e, _ := newTestHandler(&memRepo{})

	for _, tc := range []string{"days=-1", "days=abc", "days=1.5"} {
		req := httptest.NewRequest(http.MethodGet, "/cohorts/missed?"+tc, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc, rec.Code)
		}
	}
}

func TestHandlerMissed_EmptyCohortIsJSONArray(t *testing.T) {
	e, _ := newTestHandler(&memRepo{})

	req := httptest.NewRequest(http.MethodGet, "/cohorts/missed", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		PatientIDs json.RawMessage `json:"patient_ids"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if string(resp.PatientIDs) != "[]" {
		t.Errorf("expected empty JSON array, got %s", resp.PatientIDs)
	}
}

func TestHandlerIIT_DefaultWindow(t *testing.T) {
	repo := &memRepo{
		encounters: []fxEncounter{
			{id: 1, patientID: 301, formID: FormTracking, datetime: days(-10)},
		},
		obs: []fxObs{
			{conceptID: ConceptAppointmentDate, personID: 301, valueDatetime: days(-15)},
		},
	}
	e, _ := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/cohorts/iit", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp cohortResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.WindowDays != 27 {
		t.Errorf("expected default lookback 27, got %d", resp.WindowDays)
	}
	if resp.Count != 1 || resp.PatientIDs[0] != 301 {
		t.Errorf("expected patient 301, got %+v", resp)
	}
}

func TestHandlerClientEffort(t *testing.T) {
	repo := &memRepo{
		encounters: []fxEncounter{
			{id: 1, patientID: 401, formID: FormTracking, datetime: days(-3)},
		},
		obs: []fxObs{
			{conceptID: ConceptTrackingStatus, encounterID: 1, statusName: "Home visit done"},
		},
	}
	e, _ := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/patients/401/efforts", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var entries []ClientEffortEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Status == nil || *entries[0].Status != "Home visit done" {
		t.Errorf("expected tracking status, got %v", entries[0].Status)
	}
}

func TestHandlerClientEffort_BadID(t *testing.T) {
	e, _ := newTestHandler(&memRepo{})

	req := httptest.NewRequest(http.MethodGet, "/patients/abc/efforts", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
