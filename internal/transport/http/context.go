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

	"github.com/brandgate/brandgate/internal/access"
)

type contextKey string

const (
	accountKey     contextKey = "account"
	brandFilterKey contextKey = "brand_filter"
)

// GetAccount retrieves the authenticated account snapshot from context.
// Nil when the request is unauthenticated.
func GetAccount(ctx context.Context) *access.Account {
	if val, ok := ctx.Value(accountKey).(*access.Account); ok {
		return val
	}
	return nil
}

// GetBrandFilter retrieves the request's visibility filter from context.
// The zero value is FilterNone, so a missing filter fails closed.
func GetBrandFilter(ctx context.Context) access.BrandFilter {
	if val, ok := ctx.Value(brandFilterKey).(access.BrandFilter); ok {
		return val
	}
	return access.BrandFilter{Kind: access.FilterNone}
}
