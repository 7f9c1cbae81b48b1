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

package account

import (
	"context"
	"errors"
	"time"

	"github.com/brandgate/brandgate/internal/access"
)

// Domain errors
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrAccountAlreadyExists = errors.New("account already exists")
	ErrGrantNotFound        = errors.New("brand grant not found")
	ErrGrantAlreadyExists   = errors.New("brand grant already exists")
)

// Account is a user identity plus its authorization data. The embedded
// access.Account is the snapshot the predicate library and gate operate on;
// repositories call Normalize on it at load so the legacy is_admin flag and
// the admin role entry collapse into the single derived Admin field.
type Account struct {
	access.Account

	Email               string
	FailedLoginAttempts int
	LockedUntil         *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time
}

// Credentials represents account authentication credentials
type Credentials struct {
	AccountID    string
	PasswordHash string
	UpdatedAt    time.Time
}

// Repository defines the interface for account persistence. Implementations
// must load brand grants with the account and call Normalize before
// returning it; authorization code treats the returned snapshot as
// authoritative for the current request only.
type Repository interface {
	// Create creates a new account
	Create(ctx context.Context, a *Account) error

	// GetByID retrieves an account by ID, including brand grants
	GetByID(ctx context.Context, id string) (*Account, error)

	// GetByEmail retrieves an account by email, including brand grants
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// Update updates identity fields (not grants)
	Update(ctx context.Context, a *Account) error

	// UpdateLockout updates the lockout counters
	UpdateLockout(ctx context.Context, accountID string, failedAttempts int, lockedUntil *time.Time) error

	// AddCredentials adds credentials for an account
	AddCredentials(ctx context.Context, c *Credentials) error

	// GetCredentials retrieves account credentials
	GetCredentials(ctx context.Context, accountID string) (*Credentials, error)

	// SetGlobalRoles replaces the global role set, written in canonical form
	SetGlobalRoles(ctx context.Context, accountID string, roles []access.Role) error

	// AnyAdminExists reports whether any account holds the platform-admin
	// grant, in either stored representation
	AnyAdminExists(ctx context.Context) (bool, error)
}

// GrantRepository defines the interface for per-brand role grants.
type GrantRepository interface {
	// Grant adds a role to an account's membership in a brand
	Grant(ctx context.Context, accountID, brandID string, role access.Role, grantedBy string) error

	// Revoke removes a role from an account's membership in a brand
	Revoke(ctx context.Context, accountID, brandID string, role access.Role) error

	// ListForAccount retrieves all brand grants of an account
	ListForAccount(ctx context.Context, accountID string) ([]access.BrandGrant, error)

	// ListForBrand retrieves the members of a brand with their roles
	ListForBrand(ctx context.Context, brandID string) (map[string][]access.Role, error)
}
