// Package store is the data boundary of the dashboard: an ordered
// collection of entities behind a small CRUD contract. Two
// implementations exist side by side — the fixture-seeded in-memory
// store the mock dashboard ships with, and a gorm-backed store for a
// real database.
package store

import (
	"context"
	"errors"

	"diamondadmin/internal/models"
)

// ErrNotFound signals a mutation targeting an id absent from the store.
var ErrNotFound = errors.New("not found")

// ResetMethod selects how a customer password reset is delivered.
type ResetMethod string

const (
	ResetByEmail ResetMethod = "email"
	ResetManual  ResetMethod = "manual"
)

var ResetMethodOptions = []string{string(ResetByEmail), string(ResetManual)}

type ProductStore interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (models.Product, error)
	// Create prepends; new items surface first in the default view.
	// The id must be assigned by the caller before the call.
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, p models.Product) (models.Product, error)
	// Delete is idempotent: removing an absent id is a no-op.
	Delete(ctx context.Context, id string) error
}

type CustomerStore interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id string) (models.Customer, error)
	Create(ctx context.Context, c models.Customer, passwordHash string) (models.Customer, error)
	Update(ctx context.Context, c models.Customer) (models.Customer, error)
	Delete(ctx context.Context, id string) error
	// ResetPassword stamps lastPasswordReset and nothing else. The hash
	// is empty for the email method; neither store retains it (passwords
	// are write-only on this entity).
	ResetPassword(ctx context.Context, id string, method ResetMethod, passwordHash string) (models.Customer, error)
}
