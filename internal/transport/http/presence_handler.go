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
)

// HeartbeatRequest reports a live connection.
type HeartbeatRequest struct {
	ConnectionID string `json:"connection_id"`
}

// PresenceHeartbeat records or refreshes a connection for the caller.
// Presence is advisory state; it never feeds authorization.
func (h *Handler) PresenceHeartbeat(w http.ResponseWriter, r *http.Request) {
	acct := GetAccount(r.Context())
	if acct == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req HeartbeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ConnectionID == "" {
		respondError(w, http.StatusBadRequest, "connection_id is required")
		return
	}

	h.presenceReg.Connect(acct.ID, req.ConnectionID)
	respondJSON(w, http.StatusOK, map[string]string{"status": "online"})
}

// PresenceDisconnect drops one of the caller's connections.
func (h *Handler) PresenceDisconnect(w http.ResponseWriter, r *http.Request) {
	acct := GetAccount(r.Context())
	if acct == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	h.presenceReg.Disconnect(acct.ID, chi.URLParam(r, "connID"))
	respondJSON(w, http.StatusOK, map[string]string{"status": "disconnected"})
}
