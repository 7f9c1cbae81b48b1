// Copyright 2026 The Brandgate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/batch"
)

// BatchRepository implements batch.Repository
type BatchRepository struct {
	db *DB
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *DB) *BatchRepository {
	return &BatchRepository{db: db}
}

// Create creates a new batch
func (r *BatchRepository) Create(ctx context.Context, b *batch.Batch) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO batches (
			id, brand_id, name, course, status,
			instructor_id, instructor_name, start_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		b.ID, b.BrandID, b.Name, b.Course, b.Status,
		b.InstructorID, b.InstructorName, b.StartDate, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert batch: %w", err)
	}
	return nil
}

// GetByID retrieves a batch by ID within the filter
func (r *BatchRepository) GetByID(ctx context.Context, filter access.BrandFilter, id string) (*batch.Batch, error) {
	args := []any{id}
	cond, args := filter.Condition("brand_id", args)

	var b batch.Batch
	err := r.db.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, brand_id, name, course, status,
			instructor_id, instructor_name, start_date, created_at, updated_at
		FROM batches
		WHERE id = $1 AND %s
	`, cond), args...).Scan(
		&b.ID, &b.BrandID, &b.Name, &b.Course, &b.Status,
		&b.InstructorID, &b.InstructorName, &b.StartDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, batch.ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}
	return &b, nil
}

// List retrieves batches within the filter
func (r *BatchRepository) List(ctx context.Context, filter access.BrandFilter, limit, offset int) ([]*batch.Batch, error) {
	var args []any
	cond, args := filter.Condition("brand_id", args)

	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	limitPos := len(args)
	args = append(args, offset)
	offsetPos := len(args)

	rows, err := r.db.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, brand_id, name, course, status,
			instructor_id, instructor_name, start_date, created_at, updated_at
		FROM batches
		WHERE %s
		ORDER BY start_date DESC
		LIMIT $%d OFFSET $%d
	`, cond, limitPos, offsetPos), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []*batch.Batch
	for rows.Next() {
		var b batch.Batch
		if err := rows.Scan(
			&b.ID, &b.BrandID, &b.Name, &b.Course, &b.Status,
			&b.InstructorID, &b.InstructorName, &b.StartDate, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, &b)
	}
	return batches, rows.Err()
}

// Update updates a batch
func (r *BatchRepository) Update(ctx context.Context, b *batch.Batch) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE batches SET
			name = $2, course = $3, status = $4,
			instructor_id = $5, instructor_name = $6, start_date = $7, updated_at = $8
		WHERE id = $1
	`, b.ID, b.Name, b.Course, b.Status, b.InstructorID, b.InstructorName, b.StartDate, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update batch: %w", err)
	}
	if result.RowsAffected() == 0 {
		return batch.ErrBatchNotFound
	}
	return nil
}
