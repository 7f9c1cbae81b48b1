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
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/account"
)

// AccountRepository implements account.Repository
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	now := time.Now()
	roles := roleStrings(a.Roles)

	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO accounts (id, name, email, global_roles, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)
	`, a.ID, a.Name, a.Email, roles, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return account.ErrAccountAlreadyExists
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}

	a.CreatedAt = now
	a.UpdatedAt = now

	return nil
}

// GetByID retrieves an account by ID, including brand grants. The returned
// snapshot is normalized: the legacy is_admin flag collapses into the derived
// Admin field.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*account.Account, error) {
	return r.get(ctx, `WHERE id = $1 AND deleted_at IS NULL`, id)
}

// GetByEmail retrieves an account by email, including brand grants
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return r.get(ctx, `WHERE email = $1 AND deleted_at IS NULL`, email)
}

func (r *AccountRepository) get(ctx context.Context, where string, arg any) (*account.Account, error) {
	var a account.Account
	var roles []string
	var legacyAdmin bool
	var lockedUntil, deletedAt sql.NullTime

	err := r.db.pool.QueryRow(ctx, `
		SELECT id, name, email, global_roles, is_admin,
			failed_login_attempts, locked_until,
			created_at, updated_at, deleted_at
		FROM accounts
	`+where, arg).Scan(
		&a.ID, &a.Name, &a.Email, &roles, &legacyAdmin,
		&a.FailedLoginAttempts, &lockedUntil,
		&a.CreatedAt, &a.UpdatedAt, &deletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if lockedUntil.Valid {
		a.LockedUntil = &lockedUntil.Time
	}
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.Time
	}
	for _, s := range roles {
		if role, err := access.ParseRole(s); err == nil {
			a.Roles = append(a.Roles, role)
		}
	}

	grants, err := r.loadGrants(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Brands = grants
	a.Normalize(legacyAdmin)

	return &a, nil
}

func (r *AccountRepository) loadGrants(ctx context.Context, accountID string) ([]access.BrandGrant, error) {
	rows, err := r.db.pool.Query(ctx, `
		SELECT brand_id, role
		FROM account_brand_roles
		WHERE account_id = $1
		ORDER BY brand_id, role
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load brand grants: %w", err)
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

// Update updates identity fields (not grants)
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE accounts SET name = $2, email = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, a.ID, a.Name, a.Email)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// UpdateLockout updates the lockout counters
func (r *AccountRepository) UpdateLockout(ctx context.Context, accountID string, failedAttempts int, lockedUntil *time.Time) error {
	_, err := r.db.pool.Exec(ctx, `
		UPDATE accounts
		SET failed_login_attempts = $1, locked_until = $2, updated_at = NOW()
		WHERE id = $3
	`, failedAttempts, lockedUntil, accountID)
	if err != nil {
		return fmt.Errorf("failed to update account lockout status: %w", err)
	}
	return nil
}

// AddCredentials adds or replaces credentials for an account
func (r *AccountRepository) AddCredentials(ctx context.Context, c *account.Credentials) error {
	now := time.Now()
	_, err := r.db.pool.Exec(ctx, `
		INSERT INTO credentials (account_id, password_hash, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO UPDATE SET password_hash = $2, updated_at = $3
	`, c.AccountID, c.PasswordHash, now)
	if err != nil {
		return fmt.Errorf("failed to insert credentials: %w", err)
	}
	c.UpdatedAt = now
	return nil
}

// GetCredentials retrieves account credentials
func (r *AccountRepository) GetCredentials(ctx context.Context, accountID string) (*account.Credentials, error) {
	var creds account.Credentials
	err := r.db.pool.QueryRow(ctx, `
		SELECT account_id, password_hash, updated_at
		FROM credentials
		WHERE account_id = $1
	`, accountID).Scan(&creds.AccountID, &creds.PasswordHash, &creds.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, account.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}
	return &creds, nil
}

// SetGlobalRoles replaces the global role set in canonical form: the legacy
// is_admin flag is cleared, admin is an entry in global_roles like any other.
func (r *AccountRepository) SetGlobalRoles(ctx context.Context, accountID string, roles []access.Role) error {
	result, err := r.db.pool.Exec(ctx, `
		UPDATE accounts SET global_roles = $2, is_admin = FALSE, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, accountID, roleStrings(roles))
	if err != nil {
		return fmt.Errorf("failed to set global roles: %w", err)
	}
	if result.RowsAffected() == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// AnyAdminExists reports whether any account holds the platform-admin grant,
// in either stored representation.
func (r *AccountRepository) AnyAdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM accounts
			WHERE deleted_at IS NULL AND (is_admin OR 'admin' = ANY(global_roles))
		)
	`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check for admin accounts: %w", err)
	}
	return exists, nil
}

func roleStrings(roles []access.Role) []string {
	out := make([]string, len(roles))
	for i, role := range roles {
		out[i] = string(role)
	}
	return out
}
