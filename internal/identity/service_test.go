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
	"testing"
	"time"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/account"
	"github.com/brandgate/brandgate/internal/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is a minimal in-memory account.Repository for authentication tests.
type memRepo struct {
	accounts map[string]*account.Account // by email
	creds    map[string]*account.Credentials
}

func newMemRepo() *memRepo {
	return &memRepo{
		accounts: map[string]*account.Account{},
		creds:    map[string]*account.Credentials{},
	}
}

func (m *memRepo) Create(ctx context.Context, a *account.Account) error {
	m.accounts[a.Email] = a
	return nil
}

func (m *memRepo) GetByID(ctx context.Context, id string) (*account.Account, error) {
	for _, a := range m.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (m *memRepo) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	if a, ok := m.accounts[email]; ok {
		return a, nil
	}
	return nil, account.ErrAccountNotFound
}

func (m *memRepo) Update(ctx context.Context, a *account.Account) error { return nil }

func (m *memRepo) UpdateLockout(ctx context.Context, accountID string, attempts int, lockedUntil *time.Time) error {
	a, err := m.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	a.FailedLoginAttempts = attempts
	a.LockedUntil = lockedUntil
	return nil
}

func (m *memRepo) AddCredentials(ctx context.Context, c *account.Credentials) error {
	m.creds[c.AccountID] = c
	return nil
}

func (m *memRepo) GetCredentials(ctx context.Context, accountID string) (*account.Credentials, error) {
	if c, ok := m.creds[accountID]; ok {
		return c, nil
	}
	return nil, account.ErrAccountNotFound
}

func (m *memRepo) SetGlobalRoles(ctx context.Context, accountID string, roles []access.Role) error {
	a, err := m.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	a.Roles = roles
	a.Normalize(false)
	return nil
}

func (m *memRepo) AnyAdminExists(ctx context.Context) (bool, error) {
	for _, a := range m.accounts {
		if access.IsAdmin(&a.Account) {
			return true, nil
		}
	}
	return false, nil
}

// Fast parameters; production values come from config.
func testHasher() *PasswordHasher {
	return NewPasswordHasher(8*1024, 1, 1, 16, 32)
}

func testService(repo *memRepo) *Service {
	return NewService(repo, testHasher(), audit.NewSlogLogger(), 3, 15*time.Minute)
}

func seedAccount(t *testing.T, repo *memRepo, svc *Service, email, password string) *account.Account {
	t.Helper()
	a := &account.Account{
		Account: access.Account{ID: "acct-" + email, Name: "Test User"},
		Email:   email,
	}
	require.NoError(t, repo.Create(context.Background(), a))
	require.NoError(t, svc.SetPassword(context.Background(), a.ID, password))
	return a
}

func TestAuthenticate_Success(t *testing.T) {
	repo := newMemRepo()
	svc := testService(repo)
	seedAccount(t, repo, svc, "asha@example.com", "correct horse 1")

	a, err := svc.Authenticate(context.Background(), "asha@example.com", "correct horse 1")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", a.Email)
	assert.Zero(t, a.FailedLoginAttempts)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	repo := newMemRepo()
	svc := testService(repo)
	a := seedAccount(t, repo, svc, "asha@example.com", "correct horse 1")

	_, err := svc.Authenticate(context.Background(), "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 1, a.FailedLoginAttempts)
}

// Unknown accounts fail identically to wrong passwords.
func TestAuthenticate_UnknownAccount(t *testing.T) {
	svc := testService(newMemRepo())

	_, err := svc.Authenticate(context.Background(), "nobody@example.com", "whatever12")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_LockoutAfterRepeatedFailures(t *testing.T) {
	repo := newMemRepo()
	svc := testService(repo)
	a := seedAccount(t, repo, svc, "asha@example.com", "correct horse 1")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Authenticate(ctx, "asha@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	require.NotNil(t, a.LockedUntil)

	// Even the right password is refused while locked.
	_, err := svc.Authenticate(ctx, "asha@example.com", "correct horse 1")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestAuthenticate_SuccessResetsCounters(t *testing.T) {
	repo := newMemRepo()
	svc := testService(repo)
	a := seedAccount(t, repo, svc, "asha@example.com", "correct horse 1")
	ctx := context.Background()

	_, _ = svc.Authenticate(ctx, "asha@example.com", "wrong")
	require.Equal(t, 1, a.FailedLoginAttempts)

	_, err := svc.Authenticate(ctx, "asha@example.com", "correct horse 1")
	require.NoError(t, err)
	assert.Zero(t, a.FailedLoginAttempts)
	assert.Nil(t, a.LockedUntil)
}

func TestSetPassword_WeakRejected(t *testing.T) {
	repo := newMemRepo()
	svc := testService(repo)

	for _, weak := range []string{"short1", "alllettershere", "12345678901"} {
		err := svc.SetPassword(context.Background(), "acct-1", weak)
		assert.ErrorIs(t, err, ErrWeakPassword, "password %q", weak)
	}
}

func TestHasher_RoundTrip(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("some password 9")
	require.NoError(t, err)

	ok, err := h.Verify("some password 9", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("other password 9", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_MalformedHash(t *testing.T) {
	h := testHasher()

	_, err := h.Verify("pw", "not-a-hash")
	assert.Error(t, err)
}
