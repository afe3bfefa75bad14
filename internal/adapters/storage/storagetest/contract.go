// Package storagetest tiene la batería de contrato que deben pasar todos
// los adaptadores de persistencia (memory, jsonfile, postgres).
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// base fijo truncado a microsegundos: Postgres no guarda más precisión.
var base = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func NewUser(email string) users.User {
	return users.User{
		ID:           uuid.NewString(),
		Name:         "Ana",
		Email:        email,
		PasswordHash: "$2a$04$abcdefghijklmnopqrstuv",
		Phone:        "555-0101",
		Address:      "742 Evergreen Terrace",
		UserType:     users.UserTypeAdopter,
		CreatedAt:    base,
	}
}

func NewPet(ownerID, name string, offset time.Duration) pets.Pet {
	at := base.Add(offset)
	return pets.Pet{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Type:      pets.TypeDog,
		Breed:     "Lab",
		Age:       "2",
		Gender:    pets.GenderMale,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

// RunUsers corre el contrato de users.Repository. newRepo debe devolver
// un repo vacío en cada llamada.
func RunUsers(t *testing.T, newRepo func(t *testing.T) users.Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("create and lookup", func(t *testing.T) {
		repo := newRepo(t)
		u := NewUser("ana@example.com")
		require.NoError(t, repo.Create(ctx, u))

		got, err := repo.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
		assert.Equal(t, u.PasswordHash, got.PasswordHash)
		assert.True(t, u.CreatedAt.Equal(got.CreatedAt))

		got, err = repo.GetByEmail(ctx, "ana@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, got.ID)
	})

	t.Run("missing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, users.ErrNotFound)
		_, err = repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, users.ErrNotFound)
	})

	t.Run("email unique", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, NewUser("dup@example.com")))
		err := repo.Create(ctx, NewUser("dup@example.com"))
		assert.ErrorIs(t, err, users.ErrEmailTaken)
	})

	t.Run("concurrent same email", func(t *testing.T) {
		repo := newRepo(t)
		const n = 6
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- repo.Create(ctx, NewUser("race@example.com"))
			}()
		}
		wg.Wait()
		close(errs)

		ok := 0
		for err := range errs {
			if err == nil {
				ok++
				continue
			}
			assert.ErrorIs(t, err, users.ErrEmailTaken)
		}
		assert.Equal(t, 1, ok)
	})
}

// RunPets corre el contrato de pets.Repository.
func RunPets(t *testing.T, newRepo func(t *testing.T) pets.Repository) {
	t.Helper()
	ctx := context.Background()

	t.Run("create get update", func(t *testing.T) {
		repo := newRepo(t)
		p := NewPet("owner-a", "Rex", 0)
		p.Price = 120.5
		p.Description = "friendly"
		require.NoError(t, repo.Create(ctx, p))

		got, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rex", got.Name)
		assert.Equal(t, 120.5, got.Price)
		assert.Equal(t, "friendly", got.Description)
		assert.Equal(t, pets.TypeDog, got.Type)
		assert.False(t, got.ForSale)

		got.ForSale = true
		got.Name = "Rex II"
		got.UpdatedAt = got.UpdatedAt.Add(time.Minute)
		require.NoError(t, repo.Update(ctx, got))

		again, err := repo.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, again.ForSale)
		assert.Equal(t, "Rex II", again.Name)
		assert.True(t, again.UpdatedAt.After(again.CreatedAt))
		assert.Equal(t, "owner-a", again.OwnerID)
	})

	t.Run("missing", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.GetByID(ctx, uuid.NewString())
		assert.ErrorIs(t, err, pets.ErrNotFound)
		err = repo.Update(ctx, NewPet("owner-a", "Ghost", 0))
		assert.ErrorIs(t, err, pets.ErrNotFound)
	})

	t.Run("lists keep insertion order", func(t *testing.T) {
		repo := newRepo(t)
		// se insertan desordenados; la lista sale por created_at asc
		require.NoError(t, repo.Create(ctx, NewPet("owner-a", "c", 2*time.Second)))
		require.NoError(t, repo.Create(ctx, NewPet("owner-b", "a", 0)))
		require.NoError(t, repo.Create(ctx, NewPet("owner-a", "b", time.Second)))

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"a", "b", "c"}, names(all))

		mine, err := repo.ListByOwner(ctx, "owner-a")
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, names(mine))

		none, err := repo.ListByOwner(ctx, "owner-z")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("empty catalog", func(t *testing.T) {
		repo := newRepo(t)
		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)
	})
}

func names(ps []pets.Pet) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
