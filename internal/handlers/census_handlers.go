package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/cache"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/middleware"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/repository"
	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/services"
)

// CensusHandler handles census upload and inspection endpoints
type CensusHandler struct {
	censusSvc       *services.CensusService
	censusRepo      *repository.CensusRepository
	memCache        *cache.MemoryCache
	defaultPlanYear int
}

// NewCensusHandler creates a new CensusHandler
func NewCensusHandler(censusSvc *services.CensusService, censusRepo *repository.CensusRepository, memCache *cache.MemoryCache, defaultPlanYear int) *CensusHandler {
	return &CensusHandler{
		censusSvc:       censusSvc,
		censusRepo:      censusRepo,
		memCache:        memCache,
		defaultPlanYear: defaultPlanYear,
	}
}

// Upload handles POST /censuses
// @Summary Upload a census CSV
// @Description Ingest a participant census and preview its eligibility partition
// @Tags census
// @Accept mpfd
// @Produce json
// @Param file formData file true "Census CSV"
// @Param plan_year query int false "Plan year for the eligibility preview"
// @Success 201 {object} models.UploadCensusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /censuses [post]
func (h *CensusHandler) Upload(c *gin.Context) {
	workspaceID, _ := middleware.GetWorkspaceID(c)

	planYear, ok := h.planYearParam(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "multipart field 'file' is required",
		})
		return
	}
	defer file.Close()

	participants, err := ParseCensusCSV(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	if len(participants) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "census contains no participants",
		})
		return
	}

	census := &models.Census{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Name:        header.Filename,
	}
	if err := h.censusRepo.Create(c.Request.Context(), census, participants); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}
	h.memCache.SetParticipants(census.ID, participants)

	warnCtx, wc := services.NewWarningContext(c.Request.Context())
	eval := h.censusSvc.Analyze(warnCtx, participants, planYear)

	log.Infof("census %s uploaded: %d participants, %d excluded for plan year %d",
		census.ID, len(participants), eval.ExcludedCount(), planYear)

	c.JSON(http.StatusCreated, models.UploadCensusResponse{
		Census:     *census,
		PlanYear:   planYear,
		Includable: len(eval.Includable),
		Exclusions: eval.Exclusions,
		Warnings:   wc.GetWarnings(),
	})
}

// Get handles GET /censuses/:id
// @Summary Get a census
// @Description Census metadata plus the eligibility partition for a plan year
// @Tags census
// @Produce json
// @Param id path string true "Census ID"
// @Param plan_year query int false "Plan year"
// @Success 200 {object} models.CensusDetailResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /censuses/{id} [get]
func (h *CensusHandler) Get(c *gin.Context) {
	workspaceID, _ := middleware.GetWorkspaceID(c)

	censusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid census ID",
		})
		return
	}

	planYear, ok := h.planYearParam(c)
	if !ok {
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

	eval := h.censusSvc.Analyze(c.Request.Context(), participants, planYear)
	hces, nhces := eval.Partition()

	c.JSON(http.StatusOK, models.CensusDetailResponse{
		Census:     *census,
		PlanYear:   planYear,
		Includable: len(eval.Includable),
		HCECount:   len(hces),
		NHCECount:  len(nhces),
		Exclusions: eval.Exclusions,
	})
}

func (h *CensusHandler) planYearParam(c *gin.Context) (int, bool) {
	raw := c.Query("plan_year")
	if raw == "" {
		return h.defaultPlanYear, true
	}
	planYear, err := strconv.Atoi(raw)
	if err != nil || planYear < 1900 || planYear > 2200 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "plan_year must be a four-digit year",
		})
		return 0, false
	}
	return planYear, true
}

// fetchParticipants reads a census roster through the L1 cache.
func fetchParticipants(ctx context.Context, memCache *cache.MemoryCache, censusRepo *repository.CensusRepository, censusID uuid.UUID) ([]models.Participant, error) {
	if participants, ok := memCache.GetParticipants(censusID); ok {
		return participants, nil
	}
	participants, err := censusRepo.GetParticipants(ctx, censusID)
	if err != nil {
		return nil, err
	}
	memCache.SetParticipants(censusID, participants)
	return participants, nil
}
