package pets

import (
	"context"
	"errors"

	"pet-marketplace/internal/domain/users"
)

var ErrNotFound = errors.New("pet not found")

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListByOwner y ListAll devuelven en orden de alta (created_at asc).
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	ListAll(ctx context.Context) ([]Pet, error)
}

// OwnerDirectory resuelve la proyección de dueños; la implementa users.Service.
type OwnerDirectory interface {
	OwnerProjections(ctx context.Context, ids []string) (map[string]users.Owner, error)
}
