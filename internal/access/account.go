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

// Account is the authorization snapshot of an account: everything the
// predicate library, filter builder, and gate need, and nothing more.
// It is constructed once per request when the live account record is loaded
// and is never mutated by this package.
type Account struct {
	ID   string
	Name string

	// Admin is the single derived platform-admin predicate. Stored records
	// may carry either a legacy is_admin flag or an "admin" entry in the
	// global role set; Normalize collapses both into this field at load.
	Admin bool

	// Roles holds the global (brand-independent) role grants.
	Roles []Role

	// Brands holds the per-brand role grants, one entry per brand
	// membership.
	Brands []BrandGrant
}

// BrandGrant is a brand membership: the brand reference plus the role subset
// the account holds within that brand.
type BrandGrant struct {
	BrandID string
	Roles   []Role
}

// Normalize collapses the legacy dual admin representation into the derived
// Admin field. legacyAdmin is the stored is_admin flag; the global role set
// meaning the same thing is accepted equally. Call once when loading an
// account record; writes always persist the canonical form.
func (a *Account) Normalize(legacyAdmin bool) {
	a.Admin = legacyAdmin || hasRole(a.Roles, RoleAdmin)
}

// Grant returns the role subset the account holds in the given brand, or nil
// when the account has no membership there.
func (a *Account) Grant(brandID string) []Role {
	for _, g := range a.Brands {
		if g.BrandID == brandID {
			return g.Roles
		}
	}
	return nil
}

// MemberOf reports whether the account has any membership in the given brand.
func (a *Account) MemberOf(brandID string) bool {
	for _, g := range a.Brands {
		if g.BrandID == brandID {
			return true
		}
	}
	return false
}

// BrandIDs returns the brand references of all memberships, in grant order.
func (a *Account) BrandIDs() []string {
	ids := make([]string, 0, len(a.Brands))
	for _, g := range a.Brands {
		ids = append(ids, g.BrandID)
	}
	return ids
}

func hasRole(roles []Role, want Role) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}
