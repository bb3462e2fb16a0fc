package cohort

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/labstack/echo/v4"
)

// Defaults holds the day windows used when a request does not supply its own.
type Defaults struct {
	UpcomingDays    int
	MissedDays      int
	IITLookbackDays int
}

type Handler struct {
	svc      *Service
	defaults Defaults
}

func NewHandler(svc *Service, defaults Defaults) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/cohorts/upcoming", h.Upcoming)
	api.GET("/cohorts/missed", h.Missed)
	api.GET("/cohorts/iit", h.IIT)
	api.GET("/patients/:id/efforts", h.ClientEffort)
}

type cohortResponse struct {
	PatientIDs []int `json:"patient_ids"`
	Count      int   `json:"count"`
	WindowDays int   `json:"window_days"`
}

func (h *Handler) Upcoming(c echo.Context) error {
	days, err := daysParam(c, h.defaults.UpcomingDays)
	if err != nil {
		return err
	}
	ids, err := h.svc.UpcomingAppointments(c.Request().Context(), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newCohortResponse(ids, days))
}

func (h *Handler) Missed(c echo.Context) error {
	days, err := daysParam(c, h.defaults.MissedDays)
	if err != nil {
		return err
	}
	ids, err := h.svc.MissedAppointments(c.Request().Context(), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newCohortResponse(ids, days))
}

func (h *Handler) IIT(c echo.Context) error {
	days, err := daysParam(c, h.defaults.IITLookbackDays)
	if err != nil {
		return err
	}
	ids, err := h.svc.TreatmentInterruptions(c.Request().Context(), days)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, newCohortResponse(ids, days))
}

func (h *Handler) ClientEffort(c echo.Context) error {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	entries, err := h.svc.ClientEffort(c.Request().Context(), patientID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

// daysParam reads the "days" query parameter, falling back to the configured
// default. Negative values are rejected here so the queries below never see
// an inverted window.
func daysParam(c echo.Context, fallback int) (int, error) {
	raw := c.QueryParam("days")
	if raw == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "days must be a non-negative integer")
	}
	return days, nil
}

func newCohortResponse(ids []int, days int) cohortResponse {
	if ids == nil {
		ids = []int{}
	}
	sort.Ints(ids)
	return cohortResponse{PatientIDs: ids, Count: len(ids), WindowDays: days}
}
