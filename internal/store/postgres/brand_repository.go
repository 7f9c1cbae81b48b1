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
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brandgate/brandgate/internal/brand"
)

// BrandRepository implements brand.Repository
type BrandRepository struct {
	db *DB
}

// NewBrandRepository creates a new brand repository
func NewBrandRepository(db *DB) *BrandRepository {
	return &BrandRepository{db: db}
}

// Create creates a new brand
func (r *BrandRepository) Create(ctx context.Context, b *brand.Brand) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO brands (id, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, b.ID, b.Name, b.Status, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return brand.ErrBrandAlreadyExists
		}
		return fmt.Errorf("failed to insert brand: %w", err)
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// GetByID retrieves a brand by ID
func (r *BrandRepository) GetByID(ctx context.Context, id string) (*brand.Brand, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

// GetByName retrieves a brand by name
func (r *BrandRepository) GetByName(ctx context.Context, name string) (*brand.Brand, error) {
	return r.get(ctx, `WHERE name = $1`, name)
}

func (r *BrandRepository) get(ctx context.Context, where string, arg any) (*brand.Brand, error) {
	var b brand.Brand
	err := r.db.pool.QueryRow(ctx, `
		SELECT id, name, status, created_at, updated_at
		FROM brands
	`+where, arg).Scan(&b.ID, &b.Name, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, brand.ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return &b, nil
}

// Update updates a brand
func (r *BrandRepository) Update(ctx context.Context, b *brand.Brand) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE brands SET name = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`, b.ID, b.Name, b.Status)
	if err != nil {
		return fmt.Errorf("failed to update brand: %w", err)
	}
	if result.RowsAffected() == 0 {
		return brand.ErrBrandNotFound
	}
	return nil
}

// List retrieves brands ordered by name
func (r *BrandRepository) List(ctx context.Context, limit, offset int) ([]*brand.Brand, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.pool.Query(ctx, `
		SELECT id, name, status, created_at, updated_at
		FROM brands
		ORDER BY name
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	var brands []*brand.Brand
	for rows.Next() {
		var b brand.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, &b)
	}
	return brands, rows.Err()
}
