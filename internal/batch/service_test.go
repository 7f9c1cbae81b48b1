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

package batch

import (
	"context"
	"testing"
	"time"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/audit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	batches map[string]*Batch
}

func newFakeRepo() *fakeRepo { return &fakeRepo{batches: map[string]*Batch{}} }

func (f *fakeRepo) Create(ctx context.Context, b *Batch) error {
	f.batches[b.ID] = b
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, filter access.BrandFilter, id string) (*Batch, error) {
	b, ok := f.batches[id]
	if !ok || !filter.Allows(b.BrandID) {
		return nil, ErrBatchNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) List(ctx context.Context, filter access.BrandFilter, limit, offset int) ([]*Batch, error) {
	var out []*Batch
	for _, b := range f.batches {
		if !filter.Allows(b.BrandID) {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, b *Batch) error {
	f.batches[b.ID] = b
	return nil
}

func instructor(brandID string) *access.Account {
	return &access.Account{
		ID:     "acct-ins",
		Name:   "Anita Rao",
		Brands: []access.BrandGrant{{BrandID: brandID, Roles: []access.Role{access.RoleInstructor}}},
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

func TestBatch_Create_ManagerOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	start := time.Now().Add(48 * time.Hour)

	mgr := manager("B1")
	b, err := svc.Create(ctx, mgr, mustFilter(t, mgr, "B1"), "B1", "Morning Go", "golang-101", start)
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, b.Status)
	assert.Equal(t, "B1", b.BrandID)

	ins := instructor("B1")
	_, err = svc.Create(ctx, ins, mustFilter(t, ins, "B1"), "B1", "Evening Go", "golang-101", start)
	assert.ErrorIs(t, err, access.ErrRoleDenied)
}

func TestBatch_Create_OutsideFilter_Denied(t *testing.T) {
	svc, _ := newTestService()
	mgr := manager("B1")

	_, err := svc.Create(context.Background(), mgr, mustFilter(t, mgr, ""), "B2", "X", "c", time.Now())
	assert.ErrorIs(t, err, access.ErrBrandAccessDenied)
}

func TestBatch_SetInstructor_ManagerOnly(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	repo.batches["b1"] = &Batch{ID: "b1", BrandID: "B1", Name: "Morning Go", Status: StatusScheduled}

	mgr := manager("B1")
	got, err := svc.SetInstructor(ctx, mgr, mustFilter(t, mgr, "B1"), "b1", "acct-ins", "Anita Rao")
	require.NoError(t, err)
	assert.Equal(t, "acct-ins", got.InstructorID)
	assert.Equal(t, "Anita Rao", got.InstructorName)

	ins := instructor("B1")
	_, err = svc.SetInstructor(ctx, ins, mustFilter(t, ins, "B1"), "b1", "acct-ins", "Anita Rao")
	assert.ErrorIs(t, err, ErrBatchNotFound, "instructors cannot reassign batches, even their own")
}

func TestBatch_UpdateStatus_AssignedInstructor(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	ins := instructor("B1")
	filter := mustFilter(t, ins, "B1")

	repo.batches["mine"] = &Batch{ID: "mine", BrandID: "B1", Name: "Mine", Status: StatusScheduled, InstructorID: ins.ID}
	repo.batches["theirs"] = &Batch{ID: "theirs", BrandID: "B1", Name: "Theirs", Status: StatusScheduled, InstructorID: "acct-other", InstructorName: "Someone Else"}

	got, err := svc.UpdateStatus(ctx, ins, filter, "mine", StatusRunning)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, got.Status)

	// Exists, same brand, assigned elsewhere: reads as missing.
	_, err = svc.UpdateStatus(ctx, ins, filter, "theirs", StatusRunning)
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

// Batches created before instructor-by-reference linking carry only the
// display name; the name match stands in for the reference.
func TestBatch_UpdateStatus_LegacyNameInstructor(t *testing.T) {
	svc, repo := newTestService()
	ins := instructor("B1")
	repo.batches["old"] = &Batch{ID: "old", BrandID: "B1", Name: "Old", Status: StatusRunning, InstructorName: "Anita Rao"}

	got, err := svc.UpdateStatus(context.Background(), ins, mustFilter(t, ins, "B1"), "old", StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
}

// Once a batch is linked by reference, a stale matching name on a different
// account grants nothing.
func TestBatch_UpdateStatus_RefOverridesName(t *testing.T) {
	svc, repo := newTestService()
	ins := instructor("B1")
	repo.batches["b1"] = &Batch{ID: "b1", BrandID: "B1", Name: "Linked", Status: StatusRunning, InstructorID: "acct-other", InstructorName: "Anita Rao"}

	_, err := svc.UpdateStatus(context.Background(), ins, mustFilter(t, ins, "B1"), "b1", StatusCompleted)
	assert.ErrorIs(t, err, ErrBatchNotFound)
}

func TestBatch_UpdateStatus_InvalidStatus(t *testing.T) {
	svc, repo := newTestService()
	mgr := manager("B1")
	repo.batches["b1"] = &Batch{ID: "b1", BrandID: "B1", Name: "One", Status: StatusScheduled}

	_, err := svc.UpdateStatus(context.Background(), mgr, mustFilter(t, mgr, "B1"), "b1", "bogus")
	assert.Error(t, err)
}

func TestBatch_List_FilterConjoined(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()
	repo.batches["b1"] = &Batch{ID: "b1", BrandID: "B1", Name: "One"}
	repo.batches["b2"] = &Batch{ID: "b2", BrandID: "B2", Name: "Two"}

	ins := instructor("B1")
	got, err := svc.List(ctx, mustFilter(t, ins, ""), 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)

	admin := &access.Account{ID: "root", Admin: true}
	got, err = svc.List(ctx, mustFilter(t, admin, ""), 0, 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
