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

package brand

import (
	"context"
	"fmt"
	"time"

	"github.com/brandgate/brandgate/internal/audit"
	"github.com/brandgate/brandgate/internal/id"
)

// Service provides brand management business logic
type Service struct {
	repo        Repository
	auditLogger audit.Logger
}

// NewService creates a new brand service
func NewService(repo Repository, auditLogger audit.Logger) *Service {
	return &Service{
		repo:        repo,
		auditLogger: auditLogger,
	}
}

// Create creates a new brand
func (s *Service) Create(ctx context.Context, name, createdBy string) (*Brand, error) {
	if name == "" {
		return nil, fmt.Errorf("brand name is required")
	}

	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, ErrBrandAlreadyExists
	}

	now := time.Now()
	b := &Brand{
		ID:        id.NewUUIDv7(),
		Name:      name,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeBrandCreated,
		BrandID:  b.ID,
		ActorID:  createdBy,
		Resource: "brand",
		Metadata: map[string]any{"name": name},
	})

	return b, nil
}

// Get retrieves a brand by ID
func (s *Service) Get(ctx context.Context, brandID string) (*Brand, error) {
	if brandID == "" {
		return nil, fmt.Errorf("brand id is required")
	}
	return s.repo.GetByID(ctx, brandID)
}

// List lists brands with pagination
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Brand, error) {
	return s.repo.List(ctx, limit, offset)
}

// Disable marks a brand inactive. Existing records stay readable through the
// filter; activity checks use Brand.Active.
func (s *Service) Disable(ctx context.Context, brandID, disabledBy string) error {
	b, err := s.repo.GetByID(ctx, brandID)
	if err != nil {
		return err
	}
	if b.Status == StatusInactive {
		return nil
	}

	b.Status = StatusInactive
	b.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, b); err != nil {
		return fmt.Errorf("failed to disable brand: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeBrandDisabled,
		BrandID:  brandID,
		ActorID:  disabledBy,
		Resource: "brand",
	})

	return nil
}
