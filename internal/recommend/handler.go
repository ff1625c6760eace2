package recommend

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/labassist/labassist/internal/domain/catalog"
	"github.com/labassist/labassist/internal/domain/rules"
)

// Handler exposes the matching engine over HTTP for clients that want to
// preview recommendations or re-check a selection without creating a case.
type Handler struct {
	rules   *rules.Service
	catalog *catalog.Service
}

func NewHandler(ruleSvc *rules.Service, catalogSvc *catalog.Service) *Handler {
	return &Handler{rules: ruleSvc, catalog: catalogSvc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/recommendations/match", h.MatchRule)
	api.POST("/recommendations/evaluate", h.EvaluateSelection)
}

type matchRequest struct {
	SuspectedDiagnosis string `json:"suspected_diagnosis"`
	MTSCategory        string `json:"mts_category"`
}

type evaluateRequest struct {
	SuspectedDiagnosis string   `json:"suspected_diagnosis"`
	MTSCategory        string   `json:"mts_category"`
	SelectedTests      []string `json:"selected_tests"`
}

type evaluateResponse struct {
	Outcome    Outcome    `json:"outcome"`
	Compliance Compliance `json:"compliance"`
}

func (h *Handler) MatchRule(c echo.Context) error {
	var req matchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !rules.ValidMTSCategory(req.MTSCategory) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mts_category")
	}
	ruleSet, err := h.rules.AllRules(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, Match(req.SuspectedDiagnosis, req.MTSCategory, ruleSet))
}

func (h *Handler) EvaluateSelection(c echo.Context) error {
	var req evaluateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !rules.ValidMTSCategory(req.MTSCategory) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid mts_category")
	}
	ctx := c.Request().Context()
	ruleSet, err := h.rules.AllRules(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	tests, err := h.catalog.AllLabTests(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	outcome := Match(req.SuspectedDiagnosis, req.MTSCategory, ruleSet)
	return c.JSON(http.StatusOK, evaluateResponse{
		Outcome:    outcome,
		Compliance: Evaluate(outcome, req.SelectedTests, tests),
	})
}
