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

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/account"
	"github.com/brandgate/brandgate/internal/audit"
	"github.com/brandgate/brandgate/internal/identity"
	"github.com/brandgate/brandgate/internal/lead"
)

type fakeLeadRepo struct {
	leads map[string]*lead.Lead
}

func (f *fakeLeadRepo) Create(ctx context.Context, l *lead.Lead) error {
	f.leads[l.ID] = l
	return nil
}

func (f *fakeLeadRepo) GetByID(ctx context.Context, filter access.BrandFilter, id string) (*lead.Lead, error) {
	l, ok := f.leads[id]
	if !ok || !filter.Allows(l.BrandID) {
		return nil, lead.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLeadRepo) List(ctx context.Context, filter access.BrandFilter, q lead.ListQuery) ([]*lead.Lead, error) {
	var out []*lead.Lead
	for _, l := range f.leads {
		if filter.Allows(l.BrandID) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLeadRepo) Update(ctx context.Context, l *lead.Lead) error {
	f.leads[l.ID] = l
	return nil
}

func (f *fakeLeadRepo) Delete(ctx context.Context, id string) error {
	delete(f.leads, id)
	return nil
}

type routerFixture struct {
	router http.Handler
	issuer *identity.TokenIssuer
	member *account.Account
	repo   *fakeLeadRepo
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	member := memberAccount("acct-member", "B1")
	resolver := &fakeResolver{accounts: map[string]*account.Account{member.ID: member}}

	issuer, err := identity.NewTokenIssuer([]byte("test-secret-0123456789"), "brandgate-test", time.Hour)
	require.NoError(t, err)

	repo := &fakeLeadRepo{leads: map[string]*lead.Lead{
		"mine":    {ID: "mine", BrandID: "B1", Name: "Mine", Status: lead.StatusNew, AssignedTo: member.ID},
		"foreign": {ID: "foreign", BrandID: "B2", Name: "Foreign", Status: lead.StatusNew},
	}}

	auditLogger := audit.NewSlogLogger()
	h := &Handler{
		accounts:    resolver,
		tokens:      issuer,
		issuer:      issuer,
		leadService: lead.NewService(repo, auditLogger),
		auditLogger: auditLogger,
	}

	return &routerFixture{
		router: NewRouter(h, NewRateLimiter(100, 100)),
		issuer: issuer,
		member: member,
		repo:   repo,
	}
}

func (f *routerFixture) do(t *testing.T, method, target, token, brandHeader, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if brandHeader != "" {
		req.Header.Set("X-Brand-ID", brandHeader)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) token(t *testing.T, a *account.Account) string {
	t.Helper()
	token, err := f.issuer.Issue(a)
	require.NoError(t, err)
	return token
}

func TestRouter_Health_Unauthenticated(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodGet, "/health", "", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Leads_RequireAuth(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodGet, "/api/v1/leads/mine", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_GetOwnLead(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodGet, "/api/v1/leads/mine", f.token(t, f.member), "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Mine"`)
}

// A lead in a brand the caller has no membership in reads as 404, not 403:
// the response must not confirm the lead exists.
func TestRouter_ForeignLead_NotFound(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodGet, "/api/v1/leads/foreign", f.token(t, f.member), "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Explicitly selecting a foreign brand is refused outright with a generic
// 403 before any data access.
func TestRouter_ForeignBrandSelector_Forbidden(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodGet, "/api/v1/leads/foreign", f.token(t, f.member), "B2", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, rec.Body.String(), "B2", "response must not echo brand details")
}

func TestRouter_ListLeads_Filtered(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodGet, "/api/v1/leads/", f.token(t, f.member), "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mine")
	assert.NotContains(t, rec.Body.String(), "foreign")
}

func TestRouter_AdminRoutes_DenyMembers(t *testing.T) {
	f := newRouterFixture(t)
	rec := f.do(t, http.MethodPost, "/api/v1/brands", f.token(t, f.member), "", `{"name":"New Brand"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
