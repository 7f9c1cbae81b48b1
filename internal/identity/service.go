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
	"time"

	"github.com/brandgate/brandgate/internal/account"
	"github.com/brandgate/brandgate/internal/audit"
)

// Domain errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password does not meet security requirements")
	ErrAccountLocked      = errors.New("account is locked")
)

// Service provides authentication business logic
type Service struct {
	repo               account.Repository
	hasher             *PasswordHasher
	auditLogger        audit.Logger
	lockoutMaxAttempts int
	lockoutDuration    time.Duration
}

// NewService creates a new identity service
func NewService(
	repo account.Repository,
	hasher *PasswordHasher,
	auditLogger audit.Logger,
	lockoutMaxAttempts int,
	lockoutDuration time.Duration,
) *Service {
	return &Service{
		repo:               repo,
		hasher:             hasher,
		auditLogger:        auditLogger,
		lockoutMaxAttempts: lockoutMaxAttempts,
		lockoutDuration:    lockoutDuration,
	}
}

// SetPassword hashes and stores a password credential for an account.
func (s *Service) SetPassword(ctx context.Context, accountID, password string) error {
	if !isStrongPassword(password) {
		return ErrWeakPassword
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.AddCredentials(ctx, &account.Credentials{
		AccountID:    accountID,
		PasswordHash: hash,
	}); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	return nil
}

// Authenticate verifies an email/password pair and returns the live account
// record. Failures are indistinguishable to the caller (always
// ErrInvalidCredentials) except for an active lockout. Every failure
// increments the lockout counter; a success resets it.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*account.Account, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if a.LockedUntil != nil && time.Now().Before(*a.LockedUntil) {
		return nil, ErrAccountLocked
	}

	creds, err := s.repo.GetCredentials(ctx, a.ID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, creds.PasswordHash)
	if err != nil || !ok {
		s.recordFailure(ctx, a)
		return nil, ErrInvalidCredentials
	}

	if a.FailedLoginAttempts > 0 || a.LockedUntil != nil {
		if err := s.repo.UpdateLockout(ctx, a.ID, 0, nil); err != nil {
			return nil, fmt.Errorf("failed to reset lockout: %w", err)
		}
	}

	return a, nil
}

func (s *Service) recordFailure(ctx context.Context, a *account.Account) {
	attempts := a.FailedLoginAttempts + 1
	var lockedUntil *time.Time
	if attempts >= s.lockoutMaxAttempts {
		t := time.Now().Add(s.lockoutDuration)
		lockedUntil = &t
		s.auditLogger.Log(ctx, audit.Event{
			Type:     audit.TypeAccountLocked,
			ActorID:  a.ID,
			Resource: "account",
			Metadata: map[string]any{"failed_attempts": attempts},
		})
	}
	// Best effort: a failed counter write must not mask the credential
	// failure.
	_ = s.repo.UpdateLockout(ctx, a.ID, attempts, lockedUntil)
}

// isStrongPassword enforces the minimum password policy.
func isStrongPassword(password string) bool {
	if len(password) < 10 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			hasLetter = true
		}
	}
	return hasLetter && hasDigit
}
