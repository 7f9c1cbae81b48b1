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
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/audit"
	"github.com/brandgate/brandgate/internal/observability/logger"
)

// Brand Authorization Principles:
// 1. The token carries only the global role snapshot; brand grants are
//    re-read from the store on every request.
// 2. The X-Brand-ID header is a selector, never a privilege: it narrows
//    visibility and is validated against membership before use.
// 3. A request whose brand context cannot be established fails closed.

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Log request start
			slog.InfoContext(r.Context(), "http_request_start",
				logger.RequestID(middleware.GetReqID(r.Context())),
				logger.Method(r.Method),
				logger.Path(r.URL.Path),
				logger.RemoteAddr(r.RemoteAddr),
			)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.InfoContext(r.Context(), "http_request_end",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.UserAgent(r.UserAgent()),
					logger.StatusCode(ww.Status()),
					logger.Duration(time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// AuthMiddleware validates the bearer token and resolves the live account.
//
// The token proves who the caller is and carries a snapshot of the global
// roles at issue time. Brand grants change out from under long-lived tokens,
// so the account is re-loaded from the store here and the loaded snapshot is
// the one every downstream check uses. A valid token whose account no longer
// loads is rejected.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		claims, err := h.tokens.Verify(raw)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		acct, err := h.accounts.Get(r.Context(), claims.Subject)
		if err != nil {
			slog.WarnContext(r.Context(), "token subject no longer resolves",
				logger.AccountID(claims.Subject),
				logger.Error(err),
			)
			respondError(w, http.StatusUnauthorized, "not authenticated")
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, &acct.Account)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BrandContextMiddleware computes the request's visibility filter from the
// authenticated account and the optional X-Brand-ID selector. Selecting a
// brand outside the caller's membership is refused outright; the response
// does not reveal whether the brand exists.
func (h *Handler) BrandContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acct := GetAccount(r.Context())
		requested := r.Header.Get("X-Brand-ID")

		filter, err := access.BuildBrandFilter(acct, requested)
		if err != nil {
			if errors.Is(err, access.ErrUnauthenticated) {
				respondError(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			h.auditLogger.Log(r.Context(), audit.Event{
				Type:      audit.TypeAccessDenied,
				BrandID:   requested,
				ActorID:   acct.ID,
				Resource:  "brand_context",
				IPAddress: getIPAddress(r),
				Metadata:  map[string]any{"reason": string(access.ReasonBrandAccessDenied)},
			})
			respondError(w, http.StatusForbidden, "access denied")
			return
		}

		ctx := context.WithValue(r.Context(), brandFilterKey, filter)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin restricts a route to platform admins.
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		acct := GetAccount(r.Context())
		if !access.IsAdmin(acct) {
			respondError(w, http.StatusForbidden, "access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return auth[len(prefix):]
	}
	return ""
}
