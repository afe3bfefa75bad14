package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pet-marketplace/internal/adapters/storage/storagetest"
	"pet-marketplace/internal/domain/pets"
	"pet-marketplace/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestUsersRepo_Contract(t *testing.T) {
	storagetest.RunUsers(t, func(t *testing.T) users.Repository { return NewUsersRepo(openStore(t)) })
}

func TestPetsRepo_Contract(t *testing.T) {
	storagetest.RunPets(t, func(t *testing.T) pets.Repository { return NewPetsRepo(openStore(t)) })
}

func TestOpen_InitializesEmptyDocuments(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	_, err := Open(dir)
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[]}`, string(b))

	b, err = os.ReadFile(filepath.Join(dir, "pets.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"pets":[]}`, string(b))
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)
	u := storagetest.NewUser("ana@example.com")
	require.NoError(t, NewUsersRepo(s).Create(ctx, u))
	p := storagetest.NewPet(u.ID, "Rex", 0)
	require.NoError(t, NewPetsRepo(s).Create(ctx, p))

	reopened, err := Open(dir)
	require.NoError(t, err)

	got, err := NewUsersRepo(reopened).GetByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	mine, err := NewPetsRepo(reopened).ListByOwner(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Rex", mine[0].Name)

	// el archivo no deja temporales sueltos
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestStore_EmptyFileIsEmptyDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pets.json"), nil, 0o644))

	s, err := Open(dir)
	require.NoError(t, err)
	all, err := NewPetsRepo(s).ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestStore_CorruptFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o644))

	s, err := Open(dir)
	require.NoError(t, err)
	_, err = NewUsersRepo(s).GetByID(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, users.ErrNotFound)
}
