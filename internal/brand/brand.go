package brand

import (
	"context"
	"errors"
	"time"
)

// Domain errors
var (
	ErrBrandNotFound      = errors.New("brand not found")
	ErrBrandAlreadyExists = errors.New("brand already exists")
)

// Brand is the isolation boundary. Every brand-scoped record (lead, batch,
// invoice, ...) references exactly one Brand.
type Brand struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Active reports whether the brand accepts new activity.
func (b *Brand) Active() bool { return b.Status == StatusActive }

// Repository defines the interface for brand storage
type Repository interface {
	Create(ctx context.Context, b *Brand) error
	GetByID(ctx context.Context, id string) (*Brand, error)
	GetByName(ctx context.Context, name string) (*Brand, error)
	Update(ctx context.Context, b *Brand) error
	List(ctx context.Context, limit, offset int) ([]*Brand, error)
}
