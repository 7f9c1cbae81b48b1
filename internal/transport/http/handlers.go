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
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/brandgate/brandgate/internal/account"
	"github.com/brandgate/brandgate/internal/audit"
	"github.com/brandgate/brandgate/internal/batch"
	"github.com/brandgate/brandgate/internal/brand"
	"github.com/brandgate/brandgate/internal/identity"
	"github.com/brandgate/brandgate/internal/lead"
	"github.com/brandgate/brandgate/internal/presence"
)

// AccountResolver loads live accounts for authenticated requests.
// AuthMiddleware re-reads the account on every request so brand grants
// revoked after token issue take effect immediately.
type AccountResolver interface {
	Get(ctx context.Context, accountID string) (*account.Account, error)
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(raw string) (*identity.Claims, error)
}

// Handler holds HTTP handlers and dependencies
type Handler struct {
	accounts        AccountResolver
	tokens          TokenVerifier
	issuer          *identity.TokenIssuer
	identityService *identity.Service
	accountService  *account.Service
	brandService    *brand.Service
	leadService     *lead.Service
	batchService    *batch.Service
	presenceReg     *presence.Registry
	auditLogger     audit.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(
	accounts AccountResolver,
	issuer *identity.TokenIssuer,
	identityService *identity.Service,
	accountService *account.Service,
	brandService *brand.Service,
	leadService *lead.Service,
	batchService *batch.Service,
	presenceReg *presence.Registry,
	auditLogger audit.Logger,
) *Handler {
	return &Handler{
		accounts:        accounts,
		tokens:          issuer,
		issuer:          issuer,
		identityService: identityService,
		accountService:  accountService,
		brandService:    brandService,
		leadService:     leadService,
		batchService:    batchService,
		presenceReg:     presenceReg,
		auditLogger:     auditLogger,
	}
}

// NewRouter creates a new HTTP router
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Health check
	r.Get("/health", h.HealthCheck)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Post("/auth/login", h.Login)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(h.AuthMiddleware)

			r.Get("/auth/me", h.Me)
			r.Post("/auth/change-password", h.ChangePassword)

			// Presence is account-scoped, no brand context needed
			r.Post("/presence/heartbeat", h.PresenceHeartbeat)
			r.Delete("/presence/connections/{connID}", h.PresenceDisconnect)

			// Brand-scoped data plane
			r.Group(func(r chi.Router) {
				r.Use(h.BrandContextMiddleware)

				r.Route("/leads", func(r chi.Router) {
					r.Get("/", h.ListLeads)
					r.Post("/", h.CreateLead)
					r.Get("/{leadID}", h.GetLead)
					r.Put("/{leadID}", h.UpdateLead)
					r.Post("/{leadID}/assign", h.AssignLead)
					r.Delete("/{leadID}", h.DeleteLead)
				})

				r.Route("/batches", func(r chi.Router) {
					r.Get("/", h.ListBatches)
					r.Post("/", h.CreateBatch)
					r.Get("/{batchID}", h.GetBatch)
					r.Put("/{batchID}/status", h.UpdateBatchStatus)
					r.Put("/{batchID}/instructor", h.SetBatchInstructor)
				})

				r.Get("/brands", h.ListBrands)
				r.Get("/brands/{brandID}", h.GetBrand)
			})

			// Platform administration
			r.Group(func(r chi.Router) {
				r.Use(h.RequireAdmin)

				r.Post("/brands", h.CreateBrand)
				r.Delete("/brands/{brandID}", h.DisableBrand)

				r.Route("/accounts", func(r chi.Router) {
					r.Post("/", h.ProvisionAccount)
					r.Route("/{accountID}", func(r chi.Router) {
						r.Post("/brands/{brandID}/roles", h.AssignBrandRole)
						r.Delete("/brands/{brandID}/roles/{role}", h.RevokeBrandRole)
					})
				})
			})
		})
	})

	return r
}

// HealthCheck returns the health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "brandgate",
	})
}

// Helper functions
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func getIPAddress(r *http.Request) string {
	// Check X-Forwarded-For header first
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	// Check X-Real-IP header
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
