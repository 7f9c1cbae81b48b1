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

package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/audit"
	"github.com/brandgate/brandgate/internal/id"
)

// Service provides batch management guarded by the access core.
type Service struct {
	repo        Repository
	auditLogger audit.Logger
}

// NewService creates a new batch service
func NewService(repo Repository, auditLogger audit.Logger) *Service {
	return &Service{repo: repo, auditLogger: auditLogger}
}

// Create schedules a new batch. Manager-only.
func (s *Service) Create(ctx context.Context, actor *access.Account, filter access.BrandFilter, brandID, name, course string, startDate time.Time) (*Batch, error) {
	if actor == nil {
		return nil, access.ErrUnauthenticated
	}
	if !filter.Allows(brandID) {
		return nil, access.ErrBrandAccessDenied
	}
	if d := access.RequireManager(actor, brandID); d.Deny() {
		return nil, access.ErrRoleDenied
	}
	if name == "" {
		return nil, fmt.Errorf("batch name is required")
	}

	now := time.Now()
	b := &Batch{
		ID:        id.NewUUIDv7(),
		BrandID:   brandID,
		Name:      name,
		Course:    course,
		Status:    StatusScheduled,
		StartDate: startDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to create batch: %w", err)
	}
	return b, nil
}

// List returns the batches visible through the filter.
func (s *Service) List(ctx context.Context, filter access.BrandFilter, limit, offset int) ([]*Batch, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

// Get returns a single batch; outside the filter it reads as not found.
func (s *Service) Get(ctx context.Context, filter access.BrandFilter, batchID string) (*Batch, error) {
	return s.repo.GetByID(ctx, filter, batchID)
}

// SetInstructor assigns an instructor to a batch. Manager-only. Writes both
// the reference and the display name so the record no longer relies on the
// legacy name path.
func (s *Service) SetInstructor(ctx context.Context, actor *access.Account, filter access.BrandFilter, batchID, instructorID, instructorName string) (*Batch, error) {
	b, err := s.repo.GetByID(ctx, filter, batchID)
	if err != nil {
		return nil, err
	}

	if d := access.RequireManager(actor, b.BrandID); d.Deny() {
		return nil, s.denied(ctx, actor, b, d)
	}

	b.InstructorID = instructorID
	b.InstructorName = instructorName
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to set instructor: %w", err)
	}
	return b, nil
}

// UpdateStatus moves a batch through its lifecycle. Managers may update any
// batch in their brands; an instructor only the batches assigned to them
// (matched by reference, or by the legacy name rule for old records).
func (s *Service) UpdateStatus(ctx context.Context, actor *access.Account, filter access.BrandFilter, batchID, status string) (*Batch, error) {
	switch status {
	case StatusScheduled, StatusRunning, StatusCompleted, StatusCancelled:
	default:
		return nil, fmt.Errorf("invalid batch status: %q", status)
	}

	b, err := s.repo.GetByID(ctx, filter, batchID)
	if err != nil {
		return nil, err
	}

	if d := access.CanActOn(actor, b, access.ActionUpdate, filter); d.Deny() {
		return nil, s.denied(ctx, actor, b, d)
	}

	b.Status = status
	b.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update batch: %w", err)
	}
	return b, nil
}

func (s *Service) denied(ctx context.Context, actor *access.Account, b *Batch, d access.Decision) error {
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAccessDenied,
		BrandID:  b.BrandID,
		ActorID:  actorID,
		Resource: "batch",
		Metadata: map[string]any{"batch_id": b.ID, "reason": string(d.Reason)},
	})
	return ErrBatchNotFound
}
