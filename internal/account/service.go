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
	"fmt"
	"strings"
	"time"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/audit"
	"github.com/brandgate/brandgate/internal/id"
)

// Service provides account management business logic
type Service struct {
	repo        Repository
	grantRepo   GrantRepository
	auditLogger audit.Logger
}

// NewService creates a new account service
func NewService(repo Repository, grantRepo GrantRepository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		grantRepo:   grantRepo,
		auditLogger: auditLogger,
	}
}

// Provision creates a new account without credentials.
func (s *Service) Provision(ctx context.Context, email, name string, roles []access.Role) (*Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !isValidEmail(email) {
		return nil, fmt.Errorf("invalid email address: %q", email)
	}
	for _, r := range roles {
		if !r.Valid() {
			return nil, fmt.Errorf("invalid role: %q", r)
		}
	}

	if existing, err := s.repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrAccountAlreadyExists
	}

	now := time.Now()
	a := &Account{
		Account: access.Account{
			ID:    id.NewUUIDv7(),
			Name:  name,
			Roles: roles,
		},
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	a.Normalize(false)

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAccountCreated,
		ActorID:  a.ID,
		Resource: "account",
		Metadata: map[string]any{"email": a.Email},
	})

	return a, nil
}

// Get loads the live account record with its brand grants. Called once per
// request by the auth middleware: token claims carry only the global role
// snapshot from login time, so brand grants must come from here.
func (s *Service) Get(ctx context.Context, accountID string) (*Account, error) {
	if accountID == "" {
		return nil, ErrAccountNotFound
	}
	return s.repo.GetByID(ctx, accountID)
}

// GetByEmail loads an account by email with its brand grants.
func (s *Service) GetByEmail(ctx context.Context, email string) (*Account, error) {
	return s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// GrantBrandRole assigns a role to an account within a brand.
func (s *Service) GrantBrandRole(ctx context.Context, accountID, brandID string, role access.Role, grantedBy string) error {
	if brandID == "" {
		return fmt.Errorf("brand id is required")
	}
	if !access.ValidBrandRole(role) {
		return fmt.Errorf("invalid brand role: %q", role)
	}

	if err := s.grantRepo.Grant(ctx, accountID, brandID, role, grantedBy); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoleAssigned,
		BrandID:  brandID,
		ActorID:  grantedBy,
		Resource: role.String(),
		Metadata: map[string]any{"account_id": accountID},
	})

	return nil
}

// RevokeBrandRole removes a role from an account's brand membership.
func (s *Service) RevokeBrandRole(ctx context.Context, accountID, brandID string, role access.Role, revokedBy string) error {
	if err := s.grantRepo.Revoke(ctx, accountID, brandID, role); err != nil {
		return err
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoleRevoked,
		BrandID:  brandID,
		ActorID:  revokedBy,
		Resource: role.String(),
		Metadata: map[string]any{"account_id": accountID},
	})

	return nil
}

// SetGlobalRoles replaces the global role set. Writes are canonical: an admin
// entry in roles is the only admin representation persisted going forward.
func (s *Service) SetGlobalRoles(ctx context.Context, accountID string, roles []access.Role, changedBy string) error {
	for _, r := range roles {
		if !r.Valid() {
			return fmt.Errorf("invalid role: %q", r)
		}
	}
	if err := s.repo.SetGlobalRoles(ctx, accountID, roles); err != nil {
		return err
	}

	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.String()
	}
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeRoleAssigned,
		ActorID:  changedBy,
		Resource: "global_roles",
		Metadata: map[string]any{"account_id": accountID, "roles": names},
	})
	return nil
}

// isValidEmail performs a minimal structural check.
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
