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
	"log/slog"
	"net/http"

	"github.com/brandgate/brandgate/internal/audit"
	"github.com/brandgate/brandgate/internal/identity"
	"github.com/brandgate/brandgate/internal/observability/logger"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an account and issues a bearer token. The token
// carries the global role snapshot only; brand grants stay in the store and
// are re-read per request.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	acct, err := h.identityService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.auditLogger.Log(r.Context(), audit.Event{
			Type:      audit.TypeLoginFailed,
			Resource:  req.Email,
			IPAddress: getIPAddress(r),
			UserAgent: r.UserAgent(),
			Metadata:  map[string]any{"reason": "invalid_credentials"},
		})
		if err == identity.ErrAccountLocked {
			respondError(w, http.StatusUnauthorized, "account temporarily locked")
			return
		}
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.issuer.Issue(acct)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to issue token", logger.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.auditLogger.Log(r.Context(), audit.Event{
		Type:      audit.TypeTokenIssued,
		ActorID:   acct.ID,
		Resource:  "token",
		IPAddress: getIPAddress(r),
		UserAgent: r.UserAgent(),
	})

	respondJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"account_id": acct.ID,
		"name":       acct.Name,
	})
}

// Me returns the caller's live account snapshot, grants included.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	acct := GetAccount(r.Context())
	if acct == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"account_id": acct.ID,
		"name":       acct.Name,
		"admin":      acct.Admin,
		"roles":      acct.Roles,
		"brands":     acct.Brands,
	})
}

// ChangePasswordRequest represents password change data
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword updates the caller's password after re-verifying the old one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	acct := GetAccount(r.Context())
	if acct == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	full, err := h.accounts.Get(r.Context(), acct.ID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if _, err := h.identityService.Authenticate(r.Context(), full.Email, req.OldPassword); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid old password")
		return
	}

	if err := h.identityService.SetPassword(r.Context(), acct.ID, req.NewPassword); err != nil {
		if err == identity.ErrWeakPassword {
			respondError(w, http.StatusBadRequest, "new password does not meet security requirements")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to change password")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "password changed successfully",
	})
}
