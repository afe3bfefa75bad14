package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-marketplace/internal/adapters/auth/jwtauth"
	"pet-marketplace/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAPI(t *testing.T, ttl time.Duration) *httptest.Server {
	t.Helper()
	tokens, err := jwtauth.New(jwtauth.Config{Secret: []byte("client-test"), TTL: ttl})
	require.NoError(t, err)
	h, err := router.NewRouter(router.Options{Tokens: tokens, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	s := NewSession(fileStore(t))
	require.NoError(t, s.Hydrate())
	c, err := New(baseURL, s, 5*time.Second)
	require.NoError(t, err)
	return c
}

func alice() RegisterInput {
	return RegisterInput{Name: "Alice", Email: "a@x.com", Password: "secret1", Phone: "1", Address: "Main St", UserType: "seller"}
}

func TestClient_RegisterPetAndBrowse(t *testing.T) {
	ts := newAPI(t, time.Hour)
	c := newClient(t, ts.URL)
	ctx := context.Background()

	u, err := c.Register(ctx, alice())
	require.NoError(t, err)
	assert.Equal(t, Authenticated, c.Session().State())
	assert.Equal(t, "seller", u.UserType)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)

	p, err := c.RegisterPet(ctx, PetInput{Name: "Rex", Type: "dog", Breed: "Lab", Age: "2", Gender: "male"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, p.OwnerID)
	assert.False(t, p.ForSale)

	mine, err := c.MyPets(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Rex", mine[0].Name)

	forSale := true
	updated, err := c.UpdatePet(ctx, p.ID, PetPatch{ForSale: &forSale})
	require.NoError(t, err)
	assert.True(t, updated.ForSale)

	// el catálogo es público: funciona tras logout
	require.NoError(t, c.Logout())
	all, err := c.AllPets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Owner)
	assert.Equal(t, Owner{Name: "Alice", Email: "a@x.com"}, *all[0].Owner)

	one, err := c.GetPet(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", one.Owner.Name)
}

func TestClient_ProtectedCallsRequireSession(t *testing.T) {
	ts := newAPI(t, time.Hour)
	ctx := context.Background()

	unresolved, err := New(ts.URL, NewSession(fileStore(t)), 0)
	require.NoError(t, err)
	_, err = unresolved.MyPets(ctx)
	assert.ErrorIs(t, err, ErrUnresolved)

	anon := newClient(t, ts.URL)
	_, err = anon.MyPets(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClient_LoginFailureSurfacesAPIError(t *testing.T) {
	ts := newAPI(t, time.Hour)
	c := newClient(t, ts.URL)
	ctx := context.Background()

	_, err := c.Register(ctx, alice())
	require.NoError(t, err)
	require.NoError(t, c.Logout())

	_, err = c.Login(ctx, "a@x.com", "wrong1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid credentials", apiErr.Message)
	assert.Equal(t, Anonymous, c.Session().State())

	_, err = c.Login(ctx, "A@X.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, Authenticated, c.Session().State())
}

func TestClient_ValidationFieldsSurface(t *testing.T) {
	ts := newAPI(t, time.Hour)
	c := newClient(t, ts.URL)
	ctx := context.Background()

	_, err := c.Register(ctx, alice())
	require.NoError(t, err)

	_, err = c.RegisterPet(ctx, PetInput{Name: "Nemo", Type: "fish", Breed: "Clown", Age: "1", Gender: "male"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "type", apiErr.Fields[0].Field)
	// un 400 no toca la sesión
	assert.Equal(t, Authenticated, c.Session().State())
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	ts := newAPI(t, time.Hour)
	ctx := context.Background()

	store := fileStore(t)
	s := NewSession(store)
	// token de otro servidor: firma inválida
	require.NoError(t, s.SignIn("forged.token.value", time.Now().Add(time.Hour), User{ID: "u1"}))
	c, err := New(ts.URL, s, 0)
	require.NoError(t, err)

	_, err = c.MyPets(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	assert.Equal(t, Anonymous, s.State())
	p, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, p)
}
