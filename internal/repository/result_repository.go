package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wayfare/tripplan-backend-go/internal/database"
	"github.com/wayfare/tripplan-backend-go/internal/models"
)

// StoredResult is a persisted optimization result row
type StoredResult struct {
	ID        int64                      `json:"id"`
	TripID    string                     `json:"trip_id"`
	RunID     string                     `json:"run_id"`
	IsActive  bool                       `json:"is_active"`
	Result    *models.OptimizationResult `json:"result"`
	CreatedAt time.Time                  `json:"created_at"`
}

// ResultRepository handles database operations for optimization results
type ResultRepository struct {
	db *sql.DB
}

// NewResultRepository creates a new result repository
func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// Save stores a result as the trip's single active one, deactivating any
// previous active row in the same transaction
func (r *ResultRepository) Save(result *models.OptimizationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			"UPDATE optimization_results SET is_active = 0 WHERE trip_id = ? AND is_active = 1",
			result.TripID,
		); err != nil {
			return fmt.Errorf("failed to deactivate previous results: %w", err)
		}

		if _, err := tx.Exec(`
			INSERT INTO optimization_results
				(trip_id, run_id, is_active, attempted, valid, fairness_score, result_json)
			VALUES (?, ?, 1, ?, ?, ?, ?)`,
			result.TripID,
			result.RunID,
			result.Attempted,
			result.Valid,
			result.Summary.FairnessScore,
			string(payload),
		); err != nil {
			return fmt.Errorf("failed to insert result: %w", err)
		}
		return nil
	})
}

// GetActive retrieves the trip's active result, or nil when none exists
func (r *ResultRepository) GetActive(tripID string) (*StoredResult, error) {
	query := `SELECT id, trip_id, run_id, is_active, result_json, created_at
		FROM optimization_results
		WHERE trip_id = ? AND is_active = 1
		ORDER BY id DESC LIMIT 1`

	row := r.db.QueryRow(query, tripID)
	stored, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active result: %w", err)
	}
	return stored, nil
}

// List retrieves a trip's result history with pagination
func (r *ResultRepository) List(tripID string, page, pageSize int) ([]StoredResult, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var total int64
	if err := r.db.QueryRow(
		"SELECT COUNT(*) FROM optimization_results WHERE trip_id = ?", tripID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count results: %w", err)
	}

	offset := (page - 1) * pageSize
	rows, err := r.db.Query(`
		SELECT id, trip_id, run_id, is_active, result_json, created_at
		FROM optimization_results
		WHERE trip_id = ?
		ORDER BY id DESC LIMIT ? OFFSET ?`,
		tripID, pageSize, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []StoredResult
	for rows.Next() {
		stored, err := scanResult(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, *stored)
	}

	return results, total, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResult(row rowScanner) (*StoredResult, error) {
	var stored StoredResult
	var payload string

	if err := row.Scan(
		&stored.ID, &stored.TripID, &stored.RunID, &stored.IsActive, &payload, &stored.CreatedAt,
	); err != nil {
		return nil, err
	}

	var result models.OptimizationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result payload: %w", err)
	}
	stored.Result = &result

	return &stored, nil
}
