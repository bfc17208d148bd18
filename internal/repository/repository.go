// Package repository provides generic, specification-driven data access
// with unit-of-work persistence semantics.
package repository

import (
	"context"
	"errors"

	"appointment-booking-server/internal/models"
	"appointment-booking-server/internal/specification"
)

// ErrNotFound is returned when a lookup matches no entity.
var ErrNotFound = errors.New("entity not found")

// Repository is a generic data-access surface for one entity type. Reads
// execute immediately; Add, Update and Delete only stage the change on the
// owning unit of work until Complete is called.
type Repository[T any] interface {
	GetByID(ctx context.Context, id string) (*T, error)
	GetWithSpec(ctx context.Context, spec *specification.Specification[T]) (*T, error)
	ListAll(ctx context.Context) ([]T, error)
	ListWithSpec(ctx context.Context, spec *specification.Specification[T]) ([]T, error)
	CountWithSpec(ctx context.Context, spec *specification.Specification[T]) (int64, error)
	Add(entity *T)
	Update(entity *T)
	Delete(entity *T)
}

// UnitOfWork groups the typed repositories for one request and persists
// every staged change in a single Complete call. Complete reports the total
// number of affected rows; zero or fewer staged rows taking effect is a
// failure the caller surfaces as a bad request.
type UnitOfWork interface {
	Users() Repository[models.User]
	Appointments() Repository[models.Appointment]
	RefreshTokens() Repository[models.RefreshToken]
	Complete(ctx context.Context) (int64, error)
}

// Store creates request-scoped units of work. Handlers hold a Store and
// open one unit of work per request, so staged changes never leak between
// concurrent requests.
type Store interface {
	NewUnitOfWork() UnitOfWork
}
