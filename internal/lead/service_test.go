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

package lead

import (
	"context"
	"testing"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo applies the BrandFilter the way the SQL repository does, so the
// filter-conjunction contract is exercised here too.
type fakeRepo struct {
	leads map[string]*Lead
}

func newFakeRepo() *fakeRepo { return &fakeRepo{leads: map[string]*Lead{}} }

func (f *fakeRepo) Create(ctx context.Context, l *Lead) error {
	f.leads[l.ID] = l
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, filter access.BrandFilter, id string) (*Lead, error) {
	l, ok := f.leads[id]
	if !ok || !filter.Allows(l.BrandID) {
		return nil, ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter access.BrandFilter, q ListQuery) ([]*Lead, error) {
	var out []*Lead
	for _, l := range f.leads {
		if !filter.Allows(l.BrandID) {
			continue
		}
		if q.Status != "" && l.Status != q.Status {
			continue
		}
		if q.AssignedTo != "" && l.AssignedTo != q.AssignedTo {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, l *Lead) error {
	f.leads[l.ID] = l
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(f.leads, id)
	return nil
}

func telecaller(brandID string) *access.Account {
	return &access.Account{
		ID:     "acct-tc",
		Name:   "Ravi Menon",
		Brands: []access.BrandGrant{{BrandID: brandID, Roles: []access.Role{access.RoleTelecaller}}},
	}
}

func manager(brandID string) *access.Account {
	return &access.Account{
		ID:     "acct-mgr",
		Name:   "Meera Shah",
		Brands: []access.BrandGrant{{BrandID: brandID, Roles: []access.Role{access.RoleBrandManager}}},
	}
}

func mustFilter(t *testing.T, a *access.Account, requested string) access.BrandFilter {
	t.Helper()
	f, err := access.BuildBrandFilter(a, requested)
	require.NoError(t, err)
	return f
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	return NewService(repo, audit.NewSlogLogger()), repo
}

func TestLead_Create_AssignedToCreator(t *testing.T) {
	svc, _ := newTestService()
	tc := telecaller("B1")

	l, err := svc.Create(context.Background(), tc, mustFilter(t, tc, "B1"), "B1", CreateInput{Name: "Prospect One"})
	require.NoError(t, err)
	assert.Equal(t, "B1", l.BrandID)
	assert.Equal(t, StatusNew, l.Status)
	assert.Equal(t, tc.ID, l.AssignedTo)
	assert.Equal(t, tc.Name, l.AssignedToName)
}

func TestLead_Create_OutsideFilter_Denied(t *testing.T) {
	svc, _ := newTestService()
	tc := telecaller("B1")

	_, err := svc.Create(context.Background(), tc, mustFilter(t, tc, ""), "B2", CreateInput{Name: "X"})
	assert.ErrorIs(t, err, access.ErrBrandAccessDenied)
}

func TestLead_List_FilterConjoined(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	repo.leads["l1"] = &Lead{ID: "l1", BrandID: "B1", Name: "One", Status: StatusNew}
	repo.leads["l2"] = &Lead{ID: "l2", BrandID: "B2", Name: "Two", Status: StatusNew}

	tc := telecaller("B1")
	got, err := svc.List(ctx, mustFilter(t, tc, ""), ListQuery{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "l1", got[0].ID)

	admin := &access.Account{ID: "root", Admin: true}
	got, err = svc.List(ctx, mustFilter(t, admin, ""), ListQuery{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	nobody := &access.Account{ID: "acct-none"}
	got, err = svc.List(ctx, mustFilter(t, nobody, ""), ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// A lead in another brand reads as not found, even by direct id.
func TestLead_Get_OutsideFilter_NotFound(t *testing.T) {
	svc, repo := newTestService()
	repo.leads["l2"] = &Lead{ID: "l2", BrandID: "B2", Name: "Two"}

	tc := telecaller("B1")
	_, err := svc.Get(context.Background(), mustFilter(t, tc, ""), "l2")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestLead_Update_OwnAllowed_ForeignCollapsesToNotFound(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	tc := telecaller("B1")
	filter := mustFilter(t, tc, "B1")

	repo.leads["mine"] = &Lead{ID: "mine", BrandID: "B1", Name: "Mine", Status: StatusNew, AssignedTo: tc.ID}
	repo.leads["theirs"] = &Lead{ID: "theirs", BrandID: "B1", Name: "Theirs", Status: StatusNew, AssignedTo: "acct-other", AssignedToName: "Someone Else"}

	got, err := svc.Update(ctx, tc, filter, "mine", UpdateInput{Status: StatusContacted})
	require.NoError(t, err)
	assert.Equal(t, StatusContacted, got.Status)

	// Exists, same brand, but not ours: indistinguishable from missing.
	_, err = svc.Update(ctx, tc, filter, "theirs", UpdateInput{Status: StatusContacted})
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestLead_Update_LegacyNameOwnership(t *testing.T) {
	svc, repo := newTestService()
	tc := telecaller("B1")
	repo.leads["old"] = &Lead{ID: "old", BrandID: "B1", Name: "Old", Status: StatusNew, AssignedToName: "Ravi Menon"}

	got, err := svc.Update(context.Background(), tc, mustFilter(t, tc, "B1"), "old", UpdateInput{Status: StatusContacted})
	require.NoError(t, err)
	assert.Equal(t, StatusContacted, got.Status)
}

func TestLead_Update_InvalidStatus(t *testing.T) {
	svc, repo := newTestService()
	mgr := manager("B1")
	repo.leads["l1"] = &Lead{ID: "l1", BrandID: "B1", Name: "One", Status: StatusNew}

	_, err := svc.Update(context.Background(), mgr, mustFilter(t, mgr, "B1"), "l1", UpdateInput{Status: "bogus"})
	assert.Error(t, err)
}

func TestLead_Assign_ManagerOnly(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	repo.leads["l1"] = &Lead{ID: "l1", BrandID: "B1", Name: "One", Status: StatusNew, AssignedTo: "acct-tc"}

	mgr := manager("B1")
	got, err := svc.Assign(ctx, mgr, mustFilter(t, mgr, "B1"), "l1", "acct-new", "New Handler")
	require.NoError(t, err)
	assert.Equal(t, "acct-new", got.AssignedTo)
	assert.Equal(t, "New Handler", got.AssignedToName)

	// Owning the lead does not grant reassignment.
	tc := telecaller("B1")
	repo.leads["l1"].AssignedTo = tc.ID
	_, err = svc.Assign(ctx, tc, mustFilter(t, tc, "B1"), "l1", "acct-x", "X")
	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestLead_Delete_ManagerOnly(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	tc := telecaller("B1")
	repo.leads["mine"] = &Lead{ID: "mine", BrandID: "B1", Name: "Mine", AssignedTo: tc.ID}

	err := svc.Delete(ctx, tc, mustFilter(t, tc, "B1"), "mine")
	assert.ErrorIs(t, err, ErrLeadNotFound, "owner without manager role cannot delete")

	mgr := manager("B1")
	require.NoError(t, svc.Delete(ctx, mgr, mustFilter(t, mgr, "B1"), "mine"))
	assert.Empty(t, repo.leads)
}
