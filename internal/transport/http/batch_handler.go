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
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/batch"
)

// CreateBatchRequest represents batch creation data
type CreateBatchRequest struct {
	BrandID   string    `json:"brand_id"`
	Name      string    `json:"name"`
	Course    string    `json:"course"`
	StartDate time.Time `json:"start_date"`
}

// CreateBatch schedules a new batch. Manager-only.
func (h *Handler) CreateBatch(w http.ResponseWriter, r *http.Request) {
	var req CreateBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.batchService.Create(
		r.Context(),
		GetAccount(r.Context()),
		GetBrandFilter(r.Context()),
		req.BrandID,
		req.Name,
		req.Course,
		req.StartDate,
	)
	if err != nil {
		h.respondBatchError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, b)
}

// ListBatches lists batches within the caller's filter.
func (h *Handler) ListBatches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	batches, err := h.batchService.List(r.Context(), GetBrandFilter(r.Context()), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list batches")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"batches": batches})
}

// GetBatch returns one batch within the caller's filter.
func (h *Handler) GetBatch(w http.ResponseWriter, r *http.Request) {
	b, err := h.batchService.Get(r.Context(), GetBrandFilter(r.Context()), chi.URLParam(r, "batchID"))
	if err != nil {
		h.respondBatchError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// UpdateBatchStatusRequest represents a lifecycle transition
type UpdateBatchStatusRequest struct {
	Status string `json:"status"`
}

// UpdateBatchStatus moves a batch through its lifecycle. Managers always;
// the assigned instructor for their own batches.
func (h *Handler) UpdateBatchStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateBatchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.batchService.UpdateStatus(
		r.Context(),
		GetAccount(r.Context()),
		GetBrandFilter(r.Context()),
		chi.URLParam(r, "batchID"),
		req.Status,
	)
	if err != nil {
		h.respondBatchError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, b)
}

// SetBatchInstructorRequest represents an instructor assignment
type SetBatchInstructorRequest struct {
	InstructorID   string `json:"instructor_id"`
	InstructorName string `json:"instructor_name"`
}

// SetBatchInstructor assigns an instructor to a batch. Manager-only.
func (h *Handler) SetBatchInstructor(w http.ResponseWriter, r *http.Request) {
	var req SetBatchInstructorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.batchService.SetInstructor(
		r.Context(),
		GetAccount(r.Context()),
		GetBrandFilter(r.Context()),
		chi.URLParam(r, "batchID"),
		req.InstructorID,
		req.InstructorName,
	)
	if err != nil {
		h.respondBatchError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, b)
}

func (h *Handler) respondBatchError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, batch.ErrBatchNotFound):
		respondError(w, http.StatusNotFound, "batch not found")
	case errors.Is(err, access.ErrBrandAccessDenied):
		respondError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, access.ErrRoleDenied):
		respondError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, access.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "not authenticated")
	default:
		respondError(w, http.StatusBadRequest, err.Error())
	}
}
