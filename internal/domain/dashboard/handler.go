package dashboard

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	svc      *Service
	defaults Windows
}

func NewHandler(svc *Service, defaults Windows) *Handler {
	return &Handler{svc: svc, defaults: defaults}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/stats", h.Stats)
	api.GET("/dashboard/summary", h.Summary)
}

func (h *Handler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.GetStats(c.Request().Context()))
}

func (h *Handler) Summary(c echo.Context) error {
	upcoming, err := windowParam(c, "upcomingDays", h.defaults.UpcomingDays)
	if err != nil {
		return err
	}
	missed, err := windowParam(c, "missedDays", h.defaults.MissedDays)
	if err != nil {
		return err
	}
	iit, err := windowParam(c, "iitDays", h.defaults.IITLookbackDays)
	if err != nil {
		return err
	}
	summary, err := h.svc.GetSummary(c.Request().Context(), upcoming, missed, iit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func windowParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a non-negative integer")
	}
	return days, nil
}
