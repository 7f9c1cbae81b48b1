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
	"errors"
	"time"

	"github.com/brandgate/brandgate/internal/access"
)

// Domain errors
var (
	// ErrBatchNotFound also covers batches outside the caller's
	// visibility or authority; callers cannot distinguish the cases.
	ErrBatchNotFound = errors.New("batch not found")
)

// Status constants
const (
	StatusScheduled = "scheduled"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Batch is a scheduled course run with an assigned instructor. Brand-scoped.
type Batch struct {
	ID      string `json:"id"`
	BrandID string `json:"brand_id"`
	Name    string `json:"name"`
	Course  string `json:"course"`
	Status  string `json:"status"`

	// InstructorID links the assigned instructor by identity reference.
	// InstructorName is the display name; batches created before
	// instructor-by-reference linking carry only the name, and the access
	// gate honors that as a compatibility rule.
	InstructorID   string `json:"instructor_id,omitempty"`
	InstructorName string `json:"instructor_name,omitempty"`

	StartDate time.Time `json:"start_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResourceBrandID implements access.Resource.
func (b *Batch) ResourceBrandID() string { return b.BrandID }

// OwnerRef implements access.Resource: the assigned instructor is the
// recorded owner.
func (b *Batch) OwnerRef() (string, string) { return b.InstructorID, b.InstructorName }

// Repository defines the interface for batch persistence. Methods taking a
// BrandFilter conjoin it with their own predicates.
type Repository interface {
	Create(ctx context.Context, b *Batch) error
	GetByID(ctx context.Context, filter access.BrandFilter, id string) (*Batch, error)
	List(ctx context.Context, filter access.BrandFilter, limit, offset int) ([]*Batch, error)
	Update(ctx context.Context, b *Batch) error
}
