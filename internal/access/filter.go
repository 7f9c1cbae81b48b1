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

import "fmt"

// FilterKind identifies the shape of a BrandFilter.
type FilterKind int

const (
	// FilterNone matches no rows. The explicit fail-safe for an account
	// with no brand memberships and no admin grant.
	FilterNone FilterKind = iota

	// FilterOne matches rows of exactly one brand.
	FilterOne

	// FilterSet matches rows whose brand is in the account's membership
	// set.
	FilterSet

	// FilterAll is unrestricted. Only the platform-admin bypass produces
	// it.
	FilterAll
)

// BrandFilter is the per-request data-visibility constraint over
// brand-scoped collections. Every brand-scoped query must conjoin the filter
// with its other predicates; running such a query without it is forbidden.
type BrandFilter struct {
	Kind     FilterKind
	BrandIDs []string
}

// BuildBrandFilter computes the visibility filter for an account and an
// optional explicit brand selector.
//
// With a selector: admins pass unconditionally (even for ids no brand record
// carries; an empty result downstream is correct), everyone else must hold a
// membership in the requested brand or the request is denied. A malformed or
// unknown selector therefore never widens visibility by falling through to
// the all-brands view.
//
// Without a selector: admins are unrestricted, members see their membership
// set, unprovisioned accounts see nothing.
func BuildBrandFilter(a *Account, requestedBrandID string) (BrandFilter, error) {
	if a == nil {
		return BrandFilter{Kind: FilterNone}, ErrUnauthenticated
	}

	if requestedBrandID != "" {
		if IsAdmin(a) {
			return BrandFilter{Kind: FilterOne, BrandIDs: []string{requestedBrandID}}, nil
		}
		if a.MemberOf(requestedBrandID) {
			return BrandFilter{Kind: FilterOne, BrandIDs: []string{requestedBrandID}}, nil
		}
		return BrandFilter{Kind: FilterNone}, ErrBrandAccessDenied
	}

	if IsAdmin(a) {
		return BrandFilter{Kind: FilterAll}, nil
	}
	if ids := a.BrandIDs(); len(ids) > 0 {
		return BrandFilter{Kind: FilterSet, BrandIDs: ids}, nil
	}
	return BrandFilter{Kind: FilterNone}, nil
}

// Allows reports whether a row carrying the given brand reference passes the
// filter.
func (f BrandFilter) Allows(brandID string) bool {
	switch f.Kind {
	case FilterAll:
		return true
	case FilterOne, FilterSet:
		for _, id := range f.BrandIDs {
			if id == brandID {
				return true
			}
		}
	}
	return false
}

// Unrestricted reports whether the filter imposes no constraint.
func (f BrandFilter) Unrestricted() bool { return f.Kind == FilterAll }

// Condition renders the filter as a SQL predicate over the given column,
// appending any bind values to args. Repositories conjoin the returned
// clause with their own predicates so that no brand-scoped query ever runs
// unfiltered.
func (f BrandFilter) Condition(column string, args []any) (string, []any) {
	switch f.Kind {
	case FilterAll:
		return "TRUE", args
	case FilterOne:
		args = append(args, f.BrandIDs[0])
		return fmt.Sprintf("%s = $%d", column, len(args)), args
	case FilterSet:
		args = append(args, f.BrandIDs)
		return fmt.Sprintf("%s = ANY($%d)", column, len(args)), args
	default:
		return "FALSE", args
	}
}
