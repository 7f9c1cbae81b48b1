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
	"errors"
	"time"

	"github.com/brandgate/brandgate/internal/access"
)

// Domain errors
var (
	// ErrLeadNotFound covers both genuinely missing leads and leads the
	// caller may not see: outside callers must not be able to tell the
	// two apart.
	ErrLeadNotFound = errors.New("lead not found")
)

// Status constants
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusEnrolled  = "enrolled"
	StatusLost      = "lost"
)

// Lead is a prospective customer. Brand-scoped: every lead belongs to
// exactly one brand and is visible only through a BrandFilter.
type Lead struct {
	ID      string `json:"id"`
	BrandID string `json:"brand_id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Source  string `json:"source,omitempty"`
	Status  string `json:"status"`

	// AssignedTo is the identity reference of the handling account.
	// AssignedToName is the display name written alongside it; records
	// created before reference linking carry only the name.
	AssignedTo     string `json:"assigned_to,omitempty"`
	AssignedToName string `json:"assigned_to_name,omitempty"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResourceBrandID implements access.Resource.
func (l *Lead) ResourceBrandID() string { return l.BrandID }

// OwnerRef implements access.Resource: the assignee is the recorded owner.
func (l *Lead) OwnerRef() (string, string) { return l.AssignedTo, l.AssignedToName }

// ListQuery narrows a lead listing within the visibility filter.
type ListQuery struct {
	Status     string
	AssignedTo string
	Limit      int
	Offset     int
}

// Repository defines the interface for lead persistence. Every method taking
// a BrandFilter must conjoin it with its own predicates; running the query
// on the other predicates alone is forbidden.
type Repository interface {
	Create(ctx context.Context, l *Lead) error
	GetByID(ctx context.Context, filter access.BrandFilter, id string) (*Lead, error)
	List(ctx context.Context, filter access.BrandFilter, q ListQuery) ([]*Lead, error)
	Update(ctx context.Context, l *Lead) error
	Delete(ctx context.Context, id string) error
}
