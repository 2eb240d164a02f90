package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/crzyc98/mega-backdoor-acp-sub002/config"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/cache"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/middleware"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/repository"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/services"
)

// RunHandler handles scenario-grid run endpoints
type RunHandler struct {
	gridSvc    *services.GridService
	censusSvc  *services.CensusService
	exportSvc  *services.ExportService
	censusRepo *repository.CensusRepository
	runRepo    *repository.RunRepository
	memCache   *cache.MemoryCache
	cfg        *config.Config
}

// NewRunHandler creates a new RunHandler
func NewRunHandler(
	gridSvc *services.GridService,
	censusSvc *services.CensusService,
	exportSvc *services.ExportService,
	censusRepo *repository.CensusRepository,
	runRepo *repository.RunRepository,
	memCache *cache.MemoryCache,
	cfg *config.Config,
) *RunHandler {
	return &RunHandler{
		gridSvc:    gridSvc,
		censusSvc:  censusSvc,
		exportSvc:  exportSvc,
		censusRepo: censusRepo,
		runRepo:    runRepo,
		memCache:   memCache,
		cfg:        cfg,
	}
}

// Create handles POST /censuses/:id/runs
// @Summary Run a scenario grid
// @Description Simulate mega-backdoor adoption across the adoption x contribution grid
// @Tags runs
// @Accept json
// @Produce json
// @Param id path string true "Census ID"
// @Param request body models.CreateRunRequest true "Run parameters"
// @Success 201 {object} models.Run
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /censuses/{id}/runs [post]
func (h *RunHandler) Create(c *gin.Context) {
	workspaceID, _ := middleware.GetWorkspaceID(c)

	censusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid census ID",
		})
		return
	}

	var req models.CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	census, err := h.censusRepo.GetByID(c.Request.Context(), workspaceID, censusID)
	if err != nil {
		if errors.Is(err, repository.ErrCensusNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "census not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	participants, err := fetchParticipants(c.Request.Context(), h.memCache, h.censusRepo, censusID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	planYear := req.PlanYear
	if planYear == 0 {
		planYear = h.cfg.DefaultPlanYear
	}
	params := services.GridParams{
		AdoptionRates:     req.AdoptionRates,
		ContributionRates: req.ContributionRates,
		BaseSeed:          h.cfg.BaseSeed,
		RiskThreshold:     h.cfg.RiskThreshold,
	}
	if len(params.AdoptionRates) == 0 {
		params.AdoptionRates = h.cfg.DefaultAdoptionRates
	}
	if len(params.ContributionRates) == 0 {
		params.ContributionRates = h.cfg.DefaultContributionRates
	}
	if req.Seed != nil {
		params.BaseSeed = *req.Seed
	}
	if req.RiskThreshold != nil {
		params.RiskThreshold = *req.RiskThreshold
	}

	eval := h.censusSvc.Analyze(c.Request.Context(), participants, planYear)

	result, err := h.gridSvc.RunGrid(eval, params)
	if err != nil {
		if errors.Is(err, services.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "bad_request",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	run := &models.Run{
		ID:                uuid.New(),
		CensusID:          census.ID,
		WorkspaceID:       workspaceID,
		PlanYear:          planYear,
		AdoptionRates:     params.AdoptionRates,
		ContributionRates: params.ContributionRates,
		BaseSeed:          params.BaseSeed,
		RiskThreshold:     params.RiskThreshold,
		Scenarios:         result.Scenarios,
		Summary:           result.Summary,
	}
	if err := h.runRepo.Create(c.Request.Context(), run); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	log.Infof("run %s: %d scenarios (%d fail, %d error) over census %s",
		run.ID, run.Summary.TotalScenarios, run.Summary.FailCount, run.Summary.ErrorCount, census.ID)

	c.JSON(http.StatusCreated, run)
}

// Get handles GET /runs/:id
// @Summary Get a run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.Run
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /runs/{id} [get]
func (h *RunHandler) Get(c *gin.Context) {
	run, ok := h.fetchRun(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, run)
}

// ListByCensus handles GET /censuses/:id/runs
// @Summary List runs for a census
// @Tags runs
// @Produce json
// @Param id path string true "Census ID"
// @Success 200 {array} models.RunListItem
// @Failure 400 {object} models.ErrorResponse
// @Router /censuses/{id}/runs [get]
func (h *RunHandler) ListByCensus(c *gin.Context) {
	workspaceID, _ := middleware.GetWorkspaceID(c)

	censusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid census ID",
		})
		return
	}

	runs, err := h.runRepo.ListByCensus(c.Request.Context(), workspaceID, censusID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, runs)
}

// ExportCSV handles GET /runs/:id/export.csv
// @Summary Export a run's scenario grid as CSV
// @Tags runs
// @Produce text/csv
// @Param id path string true "Run ID"
// @Success 200 {string} string "CSV payload"
// @Failure 404 {object} models.ErrorResponse
// @Router /runs/{id}/export.csv [get]
func (h *RunHandler) ExportCSV(c *gin.Context) {
	run, ok := h.fetchRun(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="acp_run_%s.csv"`, run.ID))
	if err := h.exportSvc.WriteGridCSV(c.Writer, run); err != nil {
		log.Errorf("failed to stream CSV for run %s: %v", run.ID, err)
	}
}

func (h *RunHandler) fetchRun(c *gin.Context) (*models.Run, bool) {
	workspaceID, _ := middleware.GetWorkspaceID(c)

	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid run ID",
		})
		return nil, false
	}

	run, err := h.runRepo.GetByID(c.Request.Context(), workspaceID, runID)
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "run not found",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return nil, false
	}
	return run, true
}
