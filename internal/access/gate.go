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

// Action identifies what the caller wants to do with a resource instance.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionAssign Action = "assign"
	ActionDelete Action = "delete"
)

// Reason is the machine-readable cause of a denial. Transport code collapses
// role and ownership denials into a single opaque response; the distinct
// reasons exist for auditing, not for callers.
type Reason string

const (
	ReasonUnauthenticated   Reason = "unauthenticated"
	ReasonBrandAccessDenied Reason = "brand-access-denied"
	ReasonRoleDenied        Reason = "role-denied"
	ReasonOwnershipDenied   Reason = "ownership-denied"
)

// Decision is the result of a gate check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r Reason) Decision { return Decision{Reason: r} }

// Deny reports whether the decision is a denial.
func (d Decision) Deny() bool { return !d.Allowed }

// Resource is a brand-scoped record instance the gate can rule on.
type Resource interface {
	// ResourceBrandID returns the brand the record belongs to.
	ResourceBrandID() string

	// OwnerRef returns the recorded owner/assignee of the instance: the
	// identity reference and, for records predating reference linking,
	// the display name under which the owner was stored.
	OwnerRef() (id string, name string)
}

// CanActOn decides whether the account may perform the action on the
// resource instance, given the request's brand filter.
//
// The decision composes three checks, in order:
//  1. the brand filter must admit the resource's brand,
//  2. managers (admin, owner, brand manager, coordinator — scoped to the
//     resource's brand) pass outright,
//  3. everyone else passes only via the ownership fallback: the account is
//     the recorded owner/assignee, matched by identity reference or, as a
//     legacy compatibility rule, by display-name equality. The name path
//     tolerates records created before owner-by-reference linking existed
//     and is retained deliberately.
//
// Denials are deterministic given current state and are never retried.
func CanActOn(a *Account, res Resource, action Action, filter BrandFilter) Decision {
	if a == nil {
		return deny(ReasonUnauthenticated)
	}
	brandID := res.ResourceBrandID()
	if !filter.Allows(brandID) {
		return deny(ReasonBrandAccessDenied)
	}
	if IsManager(a, brandID) {
		return allow()
	}
	if action == ActionDelete {
		// Destructive actions are manager-only; ownership does not
		// extend to them.
		return deny(ReasonRoleDenied)
	}
	ownerID, ownerName := res.OwnerRef()
	if ownerID != "" && ownerID == a.ID {
		return allow()
	}
	if ownerID == "" && ownerName != "" && a.Name != "" && ownerName == a.Name {
		return allow()
	}
	return deny(ReasonOwnershipDenied)
}

// RequireManager is the coarse-only variant for collection-level actions
// that have no single instance to test ownership against (creation, bulk
// listing of another account's records).
func RequireManager(a *Account, brandID string) Decision {
	if a == nil {
		return deny(ReasonUnauthenticated)
	}
	if IsManager(a, brandID) {
		return allow()
	}
	return deny(ReasonRoleDenied)
}
