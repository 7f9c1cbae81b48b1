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
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brandgate/brandgate/internal/brand"
)

// CreateBrandRequest represents brand creation data
type CreateBrandRequest struct {
	Name string `json:"name"`
}

// CreateBrand registers a new brand. Admin-only.
func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req CreateBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actor := GetAccount(r.Context())
	b, err := h.brandService.Create(r.Context(), req.Name, actor.ID)
	if err != nil {
		switch err {
		case brand.ErrBrandAlreadyExists:
			respondError(w, http.StatusConflict, "brand already exists")
		default:
			respondError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	respondJSON(w, http.StatusCreated, b)
}

// ListBrands lists brands visible to the caller. Members see only the brands
// in their filter; admins see everything.
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	brands, err := h.brandService.List(r.Context(), limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list brands")
		return
	}

	filter := GetBrandFilter(r.Context())
	visible := make([]*brand.Brand, 0, len(brands))
	for _, b := range brands {
		if filter.Allows(b.ID) {
			visible = append(visible, b)
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"brands": visible})
}

// GetBrand returns one brand. Outside the caller's filter it reads as
// not found.
func (h *Handler) GetBrand(w http.ResponseWriter, r *http.Request) {
	brandID := chi.URLParam(r, "brandID")

	filter := GetBrandFilter(r.Context())
	if !filter.Allows(brandID) {
		respondError(w, http.StatusNotFound, "brand not found")
		return
	}

	b, err := h.brandService.Get(r.Context(), brandID)
	if err != nil {
		respondError(w, http.StatusNotFound, "brand not found")
		return
	}

	respondJSON(w, http.StatusOK, b)
}

// DisableBrand marks a brand inactive. Admin-only, idempotent.
func (h *Handler) DisableBrand(w http.ResponseWriter, r *http.Request) {
	actor := GetAccount(r.Context())
	if err := h.brandService.Disable(r.Context(), chi.URLParam(r, "brandID"), actor.ID); err != nil {
		if err == brand.ErrBrandNotFound {
			respondError(w, http.StatusNotFound, "brand not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to disable brand")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "disabled"})
}
