package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/cache"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/middleware"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/repository"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/services"
)

// ImpactHandler handles per-employee drill-down into one grid cell
type ImpactHandler struct {
	impactSvc      *services.ImpactService
	eligibilitySvc *services.EligibilityService
	censusRepo     *repository.CensusRepository
	runRepo        *repository.RunRepository
	memCache       *cache.MemoryCache
}

// NewImpactHandler creates a new ImpactHandler
func NewImpactHandler(
	impactSvc *services.ImpactService,
	eligibilitySvc *services.EligibilityService,
	censusRepo *repository.CensusRepository,
	runRepo *repository.RunRepository,
	memCache *cache.MemoryCache,
) *ImpactHandler {
	return &ImpactHandler{
		impactSvc:      impactSvc,
		eligibilitySvc: eligibilitySvc,
		censusRepo:     censusRepo,
		runRepo:        runRepo,
		memCache:       memCache,
	}
}

// Get handles GET /runs/:id/impact
// @Summary Drill into one grid cell
// @Description Recompute the per-employee roster behind a scenario cell; always a fresh recomputation from the run's seed
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Param adoption_rate query number true "Adoption rate (decimal fraction)"
// @Param contribution_rate query number true "Contribution rate (decimal fraction)"
// @Success 200 {object} models.EmployeeImpactView
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /runs/{id}/impact [get]
func (h *ImpactHandler) Get(c *gin.Context) {
	workspaceID, _ := middleware.GetWorkspaceID(c)

	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid run ID",
		})
		return
	}

	var req models.ImpactRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	run, err := h.runRepo.GetByID(c.Request.Context(), workspaceID, runID)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "run not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	adoptionRate, contributionRate := *req.AdoptionRate, *req.ContributionRate
	if !run.HasCell(adoptionRate, contributionRate) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: fmt.Sprintf("run has no grid cell (%g, %g)", adoptionRate, contributionRate),
		})
		return
	}

	participants, err := fetchParticipants(c.Request.Context(), h.memCache, h.censusRepo, run.CensusID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	// Same eligibility pass and seed derivation as the original run, so the
	// roster matches the cell's aggregates exactly.
	eval := h.eligibilitySvc.EvaluateCensus(participants, run.PlanYear)
	view := h.impactSvc.ComputeImpact(eval, adoptionRate, contributionRate, run.BaseSeed, run.RiskThreshold)

	c.JSON(http.StatusOK, view)
}
