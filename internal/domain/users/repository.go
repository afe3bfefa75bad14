package users

import (
	"context"
	"errors"
)

var (
	// ErrNotFound lo devuelven los repos cuando no hay registro.
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken lo devuelven los repos si el email normalizado ya existe.
	// La verificación + inserción debe ser atómica en cada implementación.
	ErrEmailTaken = errors.New("email already registered")
)

type Repository interface {
	Create(ctx context.Context, u User) error
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
