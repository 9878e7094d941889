package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campushq/timetable-api/internal/models"
)

// SnapshotRepository manages persistence for named timetable snapshots.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository constructs a SnapshotRepository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create stores a new snapshot row, filling in ID and CreatedAt.
func (r *SnapshotRepository) Create(ctx context.Context, snap *models.StoredSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	snap.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO timetable_snapshots (id, name, payload, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, snap.ID, snap.Name, []byte(snap.Payload), snap.CreatedAt); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// List returns snapshot summaries, newest first. Payloads are not loaded.
func (r *SnapshotRepository) List(ctx context.Context) ([]models.StoredSnapshot, error) {
	const query = `SELECT id, name, created_at FROM timetable_snapshots ORDER BY created_at DESC`
	var snaps []models.StoredSnapshot
	if err := r.db.SelectContext(ctx, &snaps, query); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return snaps, nil
}

// FindByID fetches a snapshot including its payload.
func (r *SnapshotRepository) FindByID(ctx context.Context, id string) (*models.StoredSnapshot, error) {
	const query = `SELECT id, name, payload, created_at FROM timetable_snapshots WHERE id = $1`
	var snap models.StoredSnapshot
	if err := r.db.GetContext(ctx, &snap, query, id); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Delete removes a snapshot row.
func (r *SnapshotRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM timetable_snapshots WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
