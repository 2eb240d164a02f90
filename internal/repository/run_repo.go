package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

var ErrRunNotFound = errors.New("run not found")

// RunRepository handles database operations for scenario-grid runs. Scenario
// results and the summary are stored as JSONB documents; per-employee detail
// is never persisted, it is always recomputed from the run parameters.
type RunRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository creates a new RunRepository
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// Create stores a completed run.
func (r *RunRepository) Create(ctx context.Context, run *models.Run) error {
	scenarios, err := json.Marshal(run.Scenarios)
	if err != nil {
		return fmt.Errorf("failed to marshal scenarios: %w", err)
	}
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	query := `
		INSERT INTO acp_run
			(id, census_id, workspace_id, plan_year, base_seed, risk_threshold,
			 adoption_rates, contribution_rates, scenarios, summary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created
	`
	err = r.pool.QueryRow(ctx, query,
		run.ID, run.CensusID, run.WorkspaceID, run.PlanYear, run.BaseSeed, run.RiskThreshold,
		run.AdoptionRates, run.ContributionRates, scenarios, summary,
	).Scan(&run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// GetByID retrieves a run scoped to a workspace.
func (r *RunRepository) GetByID(ctx context.Context, workspaceID string, id uuid.UUID) (*models.Run, error) {
	query := `
		SELECT id, census_id, workspace_id, plan_year, base_seed, risk_threshold,
		       adoption_rates, contribution_rates, scenarios, summary, created
		FROM acp_run
		WHERE id = $1 AND workspace_id = $2
	`
	run := &models.Run{}
	var scenarios, summary []byte
	err := r.pool.QueryRow(ctx, query, id, workspaceID).Scan(
		&run.ID, &run.CensusID, &run.WorkspaceID, &run.PlanYear, &run.BaseSeed, &run.RiskThreshold,
		&run.AdoptionRates, &run.ContributionRates, &scenarios, &summary, &run.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if err := json.Unmarshal(scenarios, &run.Scenarios); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scenarios: %w", err)
	}
	if err := json.Unmarshal(summary, &run.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return run, nil
}

// ListByCensus retrieves run metadata for a census, newest first.
func (r *RunRepository) ListByCensus(ctx context.Context, workspaceID string, censusID uuid.UUID) ([]models.RunListItem, error) {
	query := `
		SELECT id, census_id, plan_year, created
		FROM acp_run
		WHERE census_id = $1 AND workspace_id = $2
		ORDER BY created DESC
	`
	rows, err := r.pool.Query(ctx, query, censusID, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.RunListItem
	for rows.Next() {
		var item models.RunListItem
		if err := rows.Scan(&item.ID, &item.CensusID, &item.PlanYear, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, item)
	}
	return runs, rows.Err()
}
