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
	"fmt"
	"strings"
)

// Role is a closed enumeration of role identities. Stored records carry the
// canonical snake_case form; ParseRole additionally accepts the display-name
// aliases used by historical records.
type Role string

const (
	// RoleAdmin is the platform-wide administrator role. It bypasses brand
	// filtering entirely and manages the platform, not a brand.
	RoleAdmin Role = "admin"

	// RoleOwner is the top brand-level role. Owners manage a brand;
	// admins manage the platform. The two are distinct.
	RoleOwner Role = "owner"

	// RoleBrandManager runs day-to-day operations of a brand.
	RoleBrandManager Role = "brand_manager"

	// RoleCoordinator covers academic coordination and counselling staff.
	RoleCoordinator Role = "coordinator"

	// RoleInstructor teaches batches and may act only on batches assigned
	// to them.
	RoleInstructor Role = "instructor"

	// RoleAccountant handles invoicing and receipts.
	RoleAccountant Role = "accountant"

	// RoleTelecaller works call lists and leads assigned to them.
	RoleTelecaller Role = "telecaller"
)

// roleAliases maps legacy display names (as stored by the original CRM) to
// canonical roles. Accepted on read; the canonical form is always written.
var roleAliases = map[string]Role{
	"admin":                RoleAdmin,
	"owner":                RoleOwner,
	"brand manager":        RoleBrandManager,
	"manager":              RoleBrandManager,
	"brand_manager":        RoleBrandManager,
	"academic coordinator": RoleCoordinator,
	"counsellor":           RoleCoordinator,
	"coordinator":          RoleCoordinator,
	"instructor":           RoleInstructor,
	"accountant":           RoleAccountant,
	"telecaller":           RoleTelecaller,
}

// ParseRole resolves a stored role string to its canonical Role. It accepts
// both canonical names and legacy display-name aliases, case-insensitively.
func ParseRole(s string) (Role, error) {
	if r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return "", fmt.Errorf("unknown role: %q", s)
}

// Valid reports whether r is one of the defined role constants.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleBrandManager, RoleCoordinator,
		RoleInstructor, RoleAccountant, RoleTelecaller:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// managerRoles is the informal "manager" set: any of these grants
// coarse-grained access to brand resources without an ownership check.
var managerRoles = map[Role]bool{
	RoleOwner:        true,
	RoleBrandManager: true,
	RoleCoordinator:  true,
}

// BrandRoles are the roles assignable on a brand membership. RoleAdmin is
// deliberately absent: platform administration is a global grant, never a
// brand grant.
var BrandRoles = []Role{
	RoleOwner,
	RoleBrandManager,
	RoleCoordinator,
	RoleInstructor,
	RoleAccountant,
	RoleTelecaller,
}

// ValidBrandRole reports whether r may be assigned on a brand membership.
func ValidBrandRole(r Role) bool {
	for _, br := range BrandRoles {
		if r == br {
			return true
		}
	}
	return false
}
