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

// Role predicates.
//
// All predicates are pure: no I/O, no mutation of the snapshot, total over
// any well-formed Account value. An empty or absent role set means "no
// privileges", never an error.
//
// Scoping contract (applied uniformly): predicates taking an optional brandID
// evaluate against the union of the global role set and that brand's grant
// when a brand id is supplied, and against the global role set alone when it
// is omitted.

// IsAdmin reports whether the account holds platform-admin privileges.
// The derived Admin field already folds in the legacy representations.
func IsAdmin(a *Account) bool {
	if a == nil {
		return false
	}
	return a.Admin || hasRole(a.Roles, RoleAdmin)
}

// IsOwner reports whether the account holds the brand-owner role. When a
// brand id is supplied the check is scoped to that brand's grant as well.
func IsOwner(a *Account, brandID ...string) bool {
	return HasRole(a, RoleOwner, brandID...)
}

// IsManager reports whether the account may act on brand resources without an
// ownership check: platform admins plus any role in the manager set
// (owner, brand manager, coordinator).
func IsManager(a *Account, brandID ...string) bool {
	if a == nil {
		return false
	}
	if IsAdmin(a) {
		return true
	}
	for _, r := range effectiveRoles(a, brandID...) {
		if managerRoles[r] {
			return true
		}
	}
	return false
}

// IsInstructor reports whether the account holds the instructor role.
func IsInstructor(a *Account, brandID ...string) bool {
	return HasRole(a, RoleInstructor, brandID...)
}

// HasRole reports whether the account holds the given role. With a brand id,
// the brand's grant is unioned with the global role set.
func HasRole(a *Account, role Role, brandID ...string) bool {
	if a == nil {
		return false
	}
	return hasRole(effectiveRoles(a, brandID...), role)
}

// HasAnyRole reports whether the account holds at least one of the given
// roles, evaluated with the same scoping contract as HasRole.
func HasAnyRole(a *Account, roles []Role, brandID ...string) bool {
	for _, r := range roles {
		if HasRole(a, r, brandID...) {
			return true
		}
	}
	return false
}

// effectiveRoles returns the role set in scope: global roles, plus the brand
// grant when a brand id is supplied. The returned slice is freshly allocated
// when a union is needed so callers can never mutate the snapshot through it.
func effectiveRoles(a *Account, brandID ...string) []Role {
	if len(brandID) == 0 || brandID[0] == "" {
		return a.Roles
	}
	grant := a.Grant(brandID[0])
	if len(grant) == 0 {
		return a.Roles
	}
	union := make([]Role, 0, len(a.Roles)+len(grant))
	union = append(union, a.Roles...)
	union = append(union, grant...)
	return union
}
