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
	"github.com/brandgate/brandgate/internal/lead"
)

// LeadRepository implements lead.Repository. Every read conjoins the caller's
// BrandFilter with its other predicates; there is no unfiltered read path.
type LeadRepository struct {
	db *DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Create creates a new lead
func (r *LeadRepository) Create(ctx context.Context, l *lead.Lead) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO leads (
			id, brand_id, name, email, phone, source, status,
			assigned_to, assigned_to_name, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		l.ID, l.BrandID, l.Name, l.Email, l.Phone, l.Source, l.Status,
		l.AssignedTo, l.AssignedToName, l.CreatedBy, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

// GetByID retrieves a lead by ID within the filter
func (r *LeadRepository) GetByID(ctx context.Context, filter access.BrandFilter, id string) (*lead.Lead, error) {
	args := []any{id}
	cond, args := filter.Condition("brand_id", args)

	var l lead.Lead
	err := r.db.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT id, brand_id, name, email, phone, source, status,
			assigned_to, assigned_to_name, created_by, created_at, updated_at
		FROM leads
		WHERE id = $1 AND %s
	`, cond), args...).Scan(
		&l.ID, &l.BrandID, &l.Name, &l.Email, &l.Phone, &l.Source, &l.Status,
		&l.AssignedTo, &l.AssignedToName, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, lead.ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return &l, nil
}

// List retrieves leads within the filter, narrowed by q
func (r *LeadRepository) List(ctx context.Context, filter access.BrandFilter, q lead.ListQuery) ([]*lead.Lead, error) {
	var args []any
	cond, args := filter.Condition("brand_id", args)
	where := cond

	if q.Status != "" {
		args = append(args, q.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if q.AssignedTo != "" {
		args = append(args, q.AssignedTo)
		where += fmt.Sprintf(" AND assigned_to = $%d", len(args))
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	limitPos := len(args)
	args = append(args, q.Offset)
	offsetPos := len(args)

	rows, err := r.db.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, brand_id, name, email, phone, source, status,
			assigned_to, assigned_to_name, created_by, created_at, updated_at
		FROM leads
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, limitPos, offsetPos), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []*lead.Lead
	for rows.Next() {
		var l lead.Lead
		if err := rows.Scan(
			&l.ID, &l.BrandID, &l.Name, &l.Email, &l.Phone, &l.Source, &l.Status,
			&l.AssignedTo, &l.AssignedToName, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, &l)
	}
	return leads, rows.Err()
}

// Update updates a lead
func (r *LeadRepository) Update(ctx context.Context, l *lead.Lead) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE leads SET
			name = $2, email = $3, phone = $4, status = $5,
			assigned_to = $6, assigned_to_name = $7, updated_at = $8
		WHERE id = $1
	`, l.ID, l.Name, l.Email, l.Phone, l.Status, l.AssignedTo, l.AssignedToName, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}

// Delete removes a lead
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return lead.ErrLeadNotFound
	}
	return nil
}
