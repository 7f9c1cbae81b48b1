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
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/lead"
)

// CreateLeadRequest represents lead creation data
type CreateLeadRequest struct {
	BrandID string `json:"brand_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Source  string `json:"source"`
}

// CreateLead records a new lead. Any member of the target brand may create;
// the lead starts out assigned to its creator.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.leadService.Create(
		r.Context(),
		GetAccount(r.Context()),
		GetBrandFilter(r.Context()),
		req.BrandID,
		lead.CreateInput{Name: req.Name, Email: req.Email, Phone: req.Phone, Source: req.Source},
	)
	if err != nil {
		h.respondLeadError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, l)
}

// ListLeads lists leads within the caller's filter.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	leads, err := h.leadService.List(r.Context(), GetBrandFilter(r.Context()), lead.ListQuery{
		Status:     r.URL.Query().Get("status"),
		AssignedTo: r.URL.Query().Get("assigned_to"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list leads")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

// GetLead returns one lead within the caller's filter.
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	l, err := h.leadService.Get(r.Context(), GetBrandFilter(r.Context()), chi.URLParam(r, "leadID"))
	if err != nil {
		h.respondLeadError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

// UpdateLeadRequest represents mutable lead fields
type UpdateLeadRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

// UpdateLead mutates a lead, subject to the manager/ownership gate.
func (h *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	var req UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.leadService.Update(
		r.Context(),
		GetAccount(r.Context()),
		GetBrandFilter(r.Context()),
		chi.URLParam(r, "leadID"),
		lead.UpdateInput{Name: req.Name, Email: req.Email, Phone: req.Phone, Status: req.Status},
	)
	if err != nil {
		h.respondLeadError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, l)
}

// AssignLeadRequest represents a reassignment
type AssignLeadRequest struct {
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
}

// AssignLead hands a lead to another account. Manager-only.
func (h *Handler) AssignLead(w http.ResponseWriter, r *http.Request) {
	var req AssignLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	l, err := h.leadService.Assign(
		r.Context(),
		GetAccount(r.Context()),
		GetBrandFilter(r.Context()),
		chi.URLParam(r, "leadID"),
		req.AccountID,
		req.AccountName,
	)
	if err != nil {
		h.respondLeadError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, l)
}

// DeleteLead removes a lead. Manager-only.
func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	err := h.leadService.Delete(
		r.Context(),
		GetAccount(r.Context()),
		GetBrandFilter(r.Context()),
		chi.URLParam(r, "leadID"),
	)
	if err != nil {
		h.respondLeadError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// respondLeadError maps service errors to responses. Denials on a specific
// lead already arrive collapsed to ErrLeadNotFound; only the explicit brand
// selector denial surfaces as 403.
func (h *Handler) respondLeadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, lead.ErrLeadNotFound):
		respondError(w, http.StatusNotFound, "lead not found")
	case errors.Is(err, access.ErrBrandAccessDenied):
		respondError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, access.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "not authenticated")
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}
