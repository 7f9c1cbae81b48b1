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

package identity

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/account"
	"github.com/brandgate/brandgate/internal/audit"
)

const (
	EnvBootstrapAdminEmail    = "BG_BOOTSTRAP_ADMIN_EMAIL"
	EnvBootstrapAdminPassword = "BG_BOOTSTRAP_ADMIN_PASSWORD"
)

// BootstrapService provisions the initial platform admin on first run.
type BootstrapService struct {
	accounts        *account.Service
	accountRepo     account.Repository
	identityService *Service
	auditLogger     audit.Logger
}

// NewBootstrapService creates a new bootstrap service
func NewBootstrapService(
	accounts *account.Service,
	accountRepo account.Repository,
	identityService *Service,
	auditLogger audit.Logger,
) *BootstrapService {
	return &BootstrapService{
		accounts:        accounts,
		accountRepo:     accountRepo,
		identityService: identityService,
		auditLogger:     auditLogger,
	}
}

// Bootstrap checks for bootstrap configuration and executes it if necessary.
// A no-op when the env vars are unset or a platform admin already exists in
// either stored representation.
func (s *BootstrapService) Bootstrap(ctx context.Context) error {
	email := os.Getenv(EnvBootstrapAdminEmail)
	password := os.Getenv(EnvBootstrapAdminPassword)
	if email == "" {
		return nil
	}

	exists, err := s.accountRepo.AnyAdminExists(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing platform admin: %w", err)
	}
	if exists {
		return nil
	}

	a, err := s.accounts.Provision(ctx, email, "Platform Admin", []access.Role{access.RoleAdmin})
	if errors.Is(err, account.ErrAccountAlreadyExists) {
		// The account predates bootstrap; promote it instead.
		a, err = s.accounts.GetByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("bootstrap account not found: %w", err)
		}
		if err := s.accounts.SetGlobalRoles(ctx, a.ID, []access.Role{access.RoleAdmin}, audit.ActorSystemBootstrap); err != nil {
			return fmt.Errorf("failed to promote bootstrap admin: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to provision bootstrap admin: %w", err)
	} else if password != "" {
		if err := s.identityService.SetPassword(ctx, a.ID, password); err != nil {
			return fmt.Errorf("failed to set bootstrap admin password: %w", err)
		}
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAdminBootstrap,
		ActorID:  a.ID,
		Resource: "platform",
		Metadata: map[string]any{"email": email},
	})

	return nil
}
