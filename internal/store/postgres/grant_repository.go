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

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/account"
)

// GrantRepository implements account.GrantRepository
type GrantRepository struct {
	db *DB
}

// NewGrantRepository creates a new brand grant repository
func NewGrantRepository(db *DB) *GrantRepository {
	return &GrantRepository{db: db}
}

// Grant adds a role to an account's membership in a brand
func (r *GrantRepository) Grant(ctx context.Context, accountID, brandID string, role access.Role, grantedBy string) error {
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO account_brand_roles (account_id, brand_id, role, granted_by)
		VALUES ($1, $2, $3, $4)
	`, accountID, brandID, string(role), grantedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrGrantAlreadyExists
		}
		return fmt.Errorf("failed to insert brand grant: %w", err)
	}
	return nil
}

// Revoke removes a role from an account's membership in a brand
func (r *GrantRepository) Revoke(ctx context.Context, accountID, brandID string, role access.Role) error {
	result, err := r.db.pool.Exec(ctx, `
		DELETE FROM account_brand_roles
		WHERE account_id = $1 AND brand_id = $2 AND role = $3
	`, accountID, brandID, string(role))
	if err != nil {
		return fmt.Errorf("failed to delete brand grant: %w", err)
	}
	if result.RowsAffected() == 0 {
		return account.ErrGrantNotFound
	}
	return nil
}

// ListForAccount retrieves all brand grants of an account
func (r *GrantRepository) ListForAccount(ctx context.Context, accountID string) ([]access.BrandGrant, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT brand_id, role
		FROM account_brand_roles
		WHERE account_id = $1
		ORDER BY brand_id, role
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand grants: %w", err)
	}
	defer rows.Close()

	var grants []access.BrandGrant
	for rows.Next() {
		var brandID, roleStr string
		if err := rows.Scan(&brandID, &roleStr); err != nil {
			return nil, fmt.Errorf("failed to scan brand grant: %w", err)
		}
		role, err := access.ParseRole(roleStr)
		if err != nil {
			continue
		}
		if n := len(grants); n > 0 && grants[n-1].BrandID == brandID {
			grants[n-1].Roles = append(grants[n-1].Roles, role)
			continue
		}
		grants = append(grants, access.BrandGrant{BrandID: brandID, Roles: []access.Role{role}})
	}
	return grants, rows.Err()
}

// ListForBrand retrieves the members of a brand with their roles
func (r *GrantRepository) ListForBrand(ctx context.Context, brandID string) (map[string][]access.Role, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT account_id, role
		FROM account_brand_roles
		WHERE brand_id = $1
		ORDER BY account_id, role
	`, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand members: %w", err)
	}
	defer rows.Close()

	members := make(map[string][]access.Role)
	for rows.Next() {
		var accountID, roleStr string
		if err := rows.Scan(&accountID, &roleStr); err != nil {
			return nil, fmt.Errorf("failed to scan brand member: %w", err)
		}
		role, err := access.ParseRole(roleStr)
		if err != nil {
			continue
		}
		members[accountID] = append(members[accountID], role)
	}
	return members, rows.Err()
}
