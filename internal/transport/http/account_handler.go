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
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/account"
)

// ProvisionAccountRequest represents account provisioning data
type ProvisionAccountRequest struct {
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Roles    []string `json:"roles"`
	Password string   `json:"password"`
}

// ProvisionAccount creates a new account with optional global roles and an
// initial password. Admin-only.
func (h *Handler) ProvisionAccount(w http.ResponseWriter, r *http.Request) {
	var req ProvisionAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	roles := make([]access.Role, 0, len(req.Roles))
	for _, s := range req.Roles {
		role, err := access.ParseRole(s)
		if err != nil {
			respondError(w, http.StatusBadRequest, "unknown role: "+s)
			return
		}
		roles = append(roles, role)
	}

	acct, err := h.accountService.Provision(r.Context(), req.Email, req.Name, roles)
	if err != nil {
		switch err {
		case account.ErrAccountAlreadyExists:
			respondError(w, http.StatusConflict, "account already exists")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	if req.Password != "" {
		if err := h.identityService.SetPassword(r.Context(), acct.ID, req.Password); err != nil {
			respondError(w, http.StatusBadRequest, "account created but password rejected: "+err.Error())
			return
		}
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"account_id": acct.ID,
		"email":      acct.Email,
	})
}

// AssignBrandRoleRequest represents a role grant
type AssignBrandRoleRequest struct {
	Role string `json:"role"`
}

// AssignBrandRole grants a brand-scoped role to an account. Admin-only. The
// admin role itself cannot be granted through here; it is global by
// definition.
func (h *Handler) AssignBrandRole(w http.ResponseWriter, r *http.Request) {
	var req AssignBrandRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := access.ParseRole(req.Role)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown role: "+req.Role)
		return
	}

	actor := GetAccount(r.Context())
	err = h.accountService.GrantBrandRole(
		r.Context(),
		chi.URLParam(r, "accountID"),
		chi.URLParam(r, "brandID"),
		role,
		actor.ID,
	)
	if err != nil {
		switch err {
		case account.ErrGrantAlreadyExists:
			respondError(w, http.StatusConflict, "role already granted")
		case account.ErrAccountNotFound:
			respondError(w, http.StatusNotFound, "account not found")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "granted"})
}

// RevokeBrandRole removes a brand-scoped role from an account. Admin-only.
func (h *Handler) RevokeBrandRole(w http.ResponseWriter, r *http.Request) {
	role, err := access.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown role")
		return
	}

	actor := GetAccount(r.Context())
	err = h.accountService.RevokeBrandRole(
		r.Context(),
		chi.URLParam(r, "accountID"),
		chi.URLParam(r, "brandID"),
		role,
		actor.ID,
	)
	if err != nil {
		if err == account.ErrGrantNotFound {
			respondError(w, http.StatusNotFound, "grant not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to revoke role")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
}
