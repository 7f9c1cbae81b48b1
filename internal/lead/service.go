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

package lead

import (
	"context"
	"fmt"
	"time"

	"github.com/brandgate/brandgate/internal/access"
	"github.com/brandgate/brandgate/internal/audit"
	"github.com/brandgate/brandgate/internal/id"
)

// Service provides lead management guarded by the access core. Denials on a
// specific lead surface as ErrLeadNotFound so unauthorized callers cannot
// confirm the lead exists; the audit log keeps the distinct reason.
type Service struct {
	repo        Repository
	auditLogger audit.Logger
}

// NewService creates a new lead service
func NewService(repo Repository, auditLogger audit.Logger) *Service {
	return &Service{repo: repo, auditLogger: auditLogger}
}

// CreateInput holds the caller-supplied lead fields.
type CreateInput struct {
	Name   string
	Email  string
	Phone  string
	Source string
}

// Create records a new lead in the given brand. Any member of the brand may
// create leads; the new lead is assigned to its creator.
func (s *Service) Create(ctx context.Context, actor *access.Account, filter access.BrandFilter, brandID string, in CreateInput) (*Lead, error) {
	if actor == nil {
		return nil, access.ErrUnauthenticated
	}
	if brandID == "" {
		return nil, fmt.Errorf("brand id is required")
	}
	if !filter.Allows(brandID) {
		return nil, access.ErrBrandAccessDenied
	}
	if in.Name == "" {
		return nil, fmt.Errorf("lead name is required")
	}

	now := time.Now()
	l := &Lead{
		ID:             id.NewUUIDv7(),
		BrandID:        brandID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Source:         in.Source,
		Status:         StatusNew,
		AssignedTo:     actor.ID,
		AssignedToName: actor.Name,
		CreatedBy:      actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}
	return l, nil
}

// List returns the leads visible through the filter, further narrowed by q.
func (s *Service) List(ctx context.Context, filter access.BrandFilter, q ListQuery) ([]*Lead, error) {
	return s.repo.List(ctx, filter, q)
}

// Get returns a single lead. Leads outside the filter read as not found.
func (s *Service) Get(ctx context.Context, filter access.BrandFilter, leadID string) (*Lead, error) {
	return s.repo.GetByID(ctx, filter, leadID)
}

// UpdateInput holds the mutable lead fields. Empty fields are left unchanged.
type UpdateInput struct {
	Name   string
	Email  string
	Phone  string
	Status string
}

// Update mutates a lead. Managers of the lead's brand may update any lead;
// everyone else only leads assigned to them (by reference, or by the legacy
// display-name rule for old records).
func (s *Service) Update(ctx context.Context, actor *access.Account, filter access.BrandFilter, leadID string, in UpdateInput) (*Lead, error) {
	l, err := s.repo.GetByID(ctx, filter, leadID)
	if err != nil {
		return nil, err
	}

	if d := access.CanActOn(actor, l, access.ActionUpdate, filter); d.Deny() {
		return nil, s.denied(ctx, actor, l, d)
	}

	if in.Name != "" {
		l.Name = in.Name
	}
	if in.Email != "" {
		l.Email = in.Email
	}
	if in.Phone != "" {
		l.Phone = in.Phone
	}
	if in.Status != "" {
		switch in.Status {
		case StatusNew, StatusContacted, StatusEnrolled, StatusLost:
			l.Status = in.Status
		default:
			return nil, fmt.Errorf("invalid lead status: %q", in.Status)
		}
	}
	l.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}
	return l, nil
}

// Assign hands a lead to another account. Manager-only. Writes both the
// identity reference and the display name, so the record never depends on
// the legacy name path again.
func (s *Service) Assign(ctx context.Context, actor *access.Account, filter access.BrandFilter, leadID, assigneeID, assigneeName string) (*Lead, error) {
	l, err := s.repo.GetByID(ctx, filter, leadID)
	if err != nil {
		return nil, err
	}

	if d := access.RequireManager(actor, l.BrandID); d.Deny() {
		return nil, s.denied(ctx, actor, l, d)
	}

	l.AssignedTo = assigneeID
	l.AssignedToName = assigneeName
	l.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, fmt.Errorf("failed to assign lead: %w", err)
	}

	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeLeadAssigned,
		BrandID:  l.BrandID,
		ActorID:  actor.ID,
		Resource: "lead",
		Metadata: map[string]any{"lead_id": l.ID, "account_id": assigneeID},
	})

	return l, nil
}

// Delete removes a lead. Manager-only; ownership does not extend to deletes.
func (s *Service) Delete(ctx context.Context, actor *access.Account, filter access.BrandFilter, leadID string) error {
	l, err := s.repo.GetByID(ctx, filter, leadID)
	if err != nil {
		return err
	}

	if d := access.CanActOn(actor, l, access.ActionDelete, filter); d.Deny() {
		return s.denied(ctx, actor, l, d)
	}

	return s.repo.Delete(ctx, l.ID)
}

// denied audits the real reason and collapses the caller-visible error to
// not-found.
func (s *Service) denied(ctx context.Context, actor *access.Account, l *Lead, d access.Decision) error {
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	s.auditLogger.Log(ctx, audit.Event{
		Type:     audit.TypeAccessDenied,
		BrandID:  l.BrandID,
		ActorID:  actorID,
		Resource: "lead",
		Metadata: map[string]any{"lead_id": l.ID, "reason": string(d.Reason)},
	})
	return ErrLeadNotFound
}
