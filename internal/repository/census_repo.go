package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crzyc98/mega-backdoor-acp-sub002/internal/models"
)

var ErrCensusNotFound = errors.New("census not found")

// CensusRepository handles database operations for censuses and their
// participant rows.
type CensusRepository struct {
	pool *pgxpool.Pool
}

// NewCensusRepository creates a new CensusRepository
func NewCensusRepository(pool *pgxpool.Pool) *CensusRepository {
	return &CensusRepository{pool: pool}
}

// Create stores a census and its participants in one transaction. Only raw
// census fields are persisted; derived eligibility fields are recomputed per
// run, never stored.
func (r *CensusRepository) Create(ctx context.Context, census *models.Census, participants []models.Participant) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO census (id, workspace_id, name, participant_count)
		VALUES ($1, $2, $3, $4)
		RETURNING created
	`
	err = tx.QueryRow(ctx, query, census.ID, census.WorkspaceID, census.Name, len(participants)).
		Scan(&census.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert census: %w", err)
	}
	census.ParticipantCount = len(participants)

	rowQuery := `
		INSERT INTO census_participant
			(census_id, employee_id, dob, hire_date, termination_date,
			 compensation, pre_tax, after_tax, roth, match_amount, non_elective, is_hce)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for _, p := range participants {
		_, err := tx.Exec(ctx, rowQuery,
			census.ID, p.EmployeeID, p.DOB, p.HireDate, p.TerminationDate,
			p.Compensation, p.PreTax, p.AfterTax, p.Roth, p.Match, p.NonElective, p.IsHCE)
		if err != nil {
			return fmt.Errorf("failed to insert participant %s: %w", p.EmployeeID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit census: %w", err)
	}
	return nil
}

// GetByID retrieves census metadata scoped to a workspace.
func (r *CensusRepository) GetByID(ctx context.Context, workspaceID string, id uuid.UUID) (*models.Census, error) {
	query := `
		SELECT id, workspace_id, name, participant_count, created
		FROM census
		WHERE id = $1 AND workspace_id = $2
	`
	c := &models.Census{}
	err := r.pool.QueryRow(ctx, query, id, workspaceID).Scan(
		&c.ID, &c.WorkspaceID, &c.Name, &c.ParticipantCount, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCensusNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get census: %w", err)
	}
	return c, nil
}

// GetParticipants retrieves all participant rows of a census in employee ID
// order.
func (r *CensusRepository) GetParticipants(ctx context.Context, censusID uuid.UUID) ([]models.Participant, error) {
	query := `
		SELECT employee_id, dob, hire_date, termination_date,
		       compensation, pre_tax, after_tax, roth, match_amount, non_elective, is_hce
		FROM census_participant
		WHERE census_id = $1
		ORDER BY employee_id
	`
	rows, err := r.pool.Query(ctx, query, censusID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(
			&p.EmployeeID, &p.DOB, &p.HireDate, &p.TerminationDate,
			&p.Compensation, &p.PreTax, &p.AfterTax, &p.Roth, &p.Match, &p.NonElective, &p.IsHCE,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
