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

package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole_CanonicalAndLegacyAliases(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"admin", RoleAdmin},
		{"owner", RoleOwner},
		{"Owner", RoleOwner},
		{"brand_manager", RoleBrandManager},
		{"Brand Manager", RoleBrandManager},
		{"Manager", RoleBrandManager},
		{"Academic Coordinator", RoleCoordinator},
		{"Counsellor", RoleCoordinator},
		{"Instructor", RoleInstructor},
		{"  accountant ", RoleAccountant},
		{"Telecaller", RoleTelecaller},
	}

	for _, tt := range tests {
		r, err := ParseRole(tt.in)
		require.NoError(t, err, "role %q", tt.in)
		assert.Equal(t, tt.want, r)
		assert.True(t, r.Valid())
	}
}

func TestParseRole_UnknownRejected(t *testing.T) {
	for _, in := range []string{"", "super_admin", "root", "Administrator"} {
		_, err := ParseRole(in)
		assert.Error(t, err, "role %q should be rejected", in)
	}
}

func TestValidBrandRole_AdminExcluded(t *testing.T) {
	assert.False(t, ValidBrandRole(RoleAdmin), "platform admin is never a brand grant")
	for _, r := range BrandRoles {
		assert.True(t, ValidBrandRole(r))
	}
}

func TestIsAdmin_EitherRepresentation(t *testing.T) {
	assert.True(t, IsAdmin(&Account{Admin: true}))
	assert.True(t, IsAdmin(&Account{Roles: []Role{RoleAdmin}}))
	assert.False(t, IsAdmin(&Account{Roles: []Role{RoleOwner}}))
	assert.False(t, IsAdmin(&Account{}))
	assert.False(t, IsAdmin(nil))
}

func TestIsOwner_DistinctFromAdmin(t *testing.T) {
	assert.True(t, IsOwner(&Account{Roles: []Role{RoleOwner}}))
	assert.False(t, IsOwner(&Account{Admin: true}), "platform admin is not a brand owner")
}

func TestIsManager_Hierarchy(t *testing.T) {
	tests := []struct {
		name string
		a    *Account
		want bool
	}{
		{"admin flag", &Account{Admin: true}, true},
		{"owner", &Account{Roles: []Role{RoleOwner}}, true},
		{"brand manager", &Account{Roles: []Role{RoleBrandManager}}, true},
		{"coordinator", &Account{Roles: []Role{RoleCoordinator}}, true},
		{"instructor", &Account{Roles: []Role{RoleInstructor}}, false},
		{"telecaller", &Account{Roles: []Role{RoleTelecaller}}, false},
		{"no roles", &Account{}, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsManager(tt.a))
		})
	}
}

// The uniform scoping contract: with a brand id the predicate evaluates the
// union of global roles and that brand's grant; without one, global only.
func TestHasRole_BrandScopedUnion(t *testing.T) {
	a := &Account{
		ID:    "acct-1",
		Roles: []Role{RoleTelecaller},
		Brands: []BrandGrant{
			{BrandID: "B1", Roles: []Role{RoleBrandManager}},
			{BrandID: "B2", Roles: []Role{RoleInstructor}},
		},
	}

	// Global-only evaluation.
	assert.True(t, HasRole(a, RoleTelecaller))
	assert.False(t, HasRole(a, RoleBrandManager))

	// Scoped: brand grant unioned with global.
	assert.True(t, HasRole(a, RoleBrandManager, "B1"))
	assert.True(t, HasRole(a, RoleTelecaller, "B1"))
	assert.False(t, HasRole(a, RoleBrandManager, "B2"))
	assert.True(t, IsInstructor(a, "B2"))
	assert.False(t, IsInstructor(a, "B1"))

	// A brand with no grant falls back to global roles.
	assert.True(t, HasRole(a, RoleTelecaller, "B9"))
	assert.False(t, HasRole(a, RoleInstructor, "B9"))
}

func TestIsManager_BrandScoped(t *testing.T) {
	a := &Account{
		ID:     "acct-1",
		Brands: []BrandGrant{{BrandID: "B1", Roles: []Role{RoleOwner}}},
	}

	assert.True(t, IsManager(a, "B1"))
	assert.False(t, IsManager(a, "B2"))
	assert.False(t, IsManager(a))
}

func TestHasAnyRole(t *testing.T) {
	a := &Account{Roles: []Role{RoleAccountant}}

	assert.True(t, HasAnyRole(a, []Role{RoleOwner, RoleAccountant}))
	assert.False(t, HasAnyRole(a, []Role{RoleOwner, RoleInstructor}))
	assert.False(t, HasAnyRole(a, nil))
}

// Predicates are pure: repeated calls agree and the snapshot is not mutated.
func TestPredicates_PureOverSnapshot(t *testing.T) {
	a := &Account{
		ID:    "acct-1",
		Name:  "Asha Nair",
		Roles: []Role{RoleCoordinator},
		Brands: []BrandGrant{
			{BrandID: "B1", Roles: []Role{RoleInstructor}},
		},
	}

	first := IsManager(a, "B1")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsManager(a, "B1"))
		assert.True(t, HasRole(a, RoleInstructor, "B1"))
	}

	assert.Equal(t, []Role{RoleCoordinator}, a.Roles)
	require.Len(t, a.Brands, 1)
	assert.Equal(t, []Role{RoleInstructor}, a.Brands[0].Roles)
}

func TestNormalize_CanonicalAdmin(t *testing.T) {
	a := &Account{}
	a.Normalize(true)
	assert.True(t, a.Admin)

	b := &Account{Roles: []Role{RoleAdmin}}
	b.Normalize(false)
	assert.True(t, b.Admin)

	c := &Account{Roles: []Role{RoleOwner}}
	c.Normalize(false)
	assert.False(t, c.Admin)
}
