package action

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cds/cds/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/actions", h.Create)
	api.GET("/actions/pending", h.ListPending)
	api.PUT("/actions/:id/status", h.UpdateStatus)
	api.POST("/actions/:id/complete", h.Complete)
	api.GET("/patients/:id/actions", h.ListForPatient)
}

type createRequest struct {
	PatientID        int    `json:"patient_id"`
	EncounterID      *int   `json:"encounter_id"`
	CallReport       string `json:"call_report"`
	NextStepAction   string `json:"next_step_action"`
	AssignedToUserID *int   `json:"assigned_to_user_id"`
	Status           string `json:"status"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	a := Action{
		PatientID:        req.PatientID,
		EncounterID:      req.EncounterID,
		CallReport:       req.CallReport,
		NextStepAction:   req.NextStepAction,
		AssignedToUserID: req.AssignedToUserID,
		Status:           req.Status,
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		if errors.Is(err, ErrPatientRequired) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) ListPending(c echo.Context) error {
	actions, err := h.svc.ListPending(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return respondList(c, actions)
}

func (h *Handler) ListForPatient(c echo.Context) error {
	patientID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	pendingOnly := c.QueryParam("pending") == "true"
	actions, err := h.svc.ListForPatient(c.Request().Context(), patientID, pendingOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return respondList(c, actions)
}

// respondList returns the full ledger slice unless the client asked for
// paging, in which case the slice is windowed and wrapped with totals.
func respondList(c echo.Context, actions []Action) error {
	params, paged := pagination.FromContext(c)
	if !paged {
		return c.JSON(http.StatusOK, actions)
	}
	total := len(actions)
	lo := params.Offset
	if lo > total {
		lo = total
	}
	hi := lo + params.Limit
	if hi > total {
		hi = total
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(actions[lo:hi], total, params.Limit, params.Offset))
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	actionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid action id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := h.svc.UpdateStatus(c.Request().Context(), actionID, req.Status); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Complete(c echo.Context) error {
	actionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid action id")
	}
	if err := h.svc.Complete(c.Request().Context(), actionID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
