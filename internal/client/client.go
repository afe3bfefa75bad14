// Package client es el SDK del marketplace: habla con la API por HTTP y
// mantiene la sesión local del usuario.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pet-marketplace/internal/platform/httpclient"
)

// APIError es una respuesta {success:false} de la API.
type APIError struct {
	Status  int
	Message string
	Fields  []httpclient.FieldError
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	return e.Message
}

// Client adjunta el token de la sesión a cada llamada protegida.
type Client struct {
	http    *httpclient.Client
	session *Session
}

func New(baseURL string, session *Session, timeout time.Duration) (*Client, error) {
	hc, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, session: session}, nil
}

func (c *Client) Session() *Session { return c.session }

type authEnvelope struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) (User, error) {
	var out authEnvelope
	if err := c.public(ctx, http.MethodPost, "/api/auth/register", in, &out); err != nil {
		return User{}, err
	}
	return out.User, c.session.SignIn(out.Token, out.ExpiresAt, out.User)
}

func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var out authEnvelope
	body := map[string]string{"email": email, "password": password}
	if err := c.public(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return User{}, err
	}
	return out.User, c.session.SignIn(out.Token, out.ExpiresAt, out.User)
}

// Logout es solo local: el token no se revoca en el servidor.
func (c *Client) Logout() error {
	return c.session.SignOut()
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.protected(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

func (c *Client) RegisterPet(ctx context.Context, in PetInput) (Pet, error) {
	var out struct {
		Pet Pet `json:"pet"`
	}
	if err := c.protected(ctx, http.MethodPost, "/api/pets", in, &out); err != nil {
		return Pet{}, err
	}
	return out.Pet, nil
}

func (c *Client) UpdatePet(ctx context.Context, petID string, patch PetPatch) (Pet, error) {
	var out struct {
		Pet Pet `json:"pet"`
	}
	if err := c.protected(ctx, http.MethodPatch, "/api/pets/"+url.PathEscape(petID), patch, &out); err != nil {
		return Pet{}, err
	}
	return out.Pet, nil
}

func (c *Client) MyPets(ctx context.Context) ([]Pet, error) {
	var out struct {
		Pets []Pet `json:"pets"`
	}
	if err := c.protected(ctx, http.MethodGet, "/api/pets/user", nil, &out); err != nil {
		return nil, err
	}
	return out.Pets, nil
}

func (c *Client) AllPets(ctx context.Context) ([]Pet, error) {
	var out struct {
		Pets []Pet `json:"pets"`
	}
	if err := c.public(ctx, http.MethodGet, "/api/pets", nil, &out); err != nil {
		return nil, err
	}
	return out.Pets, nil
}

func (c *Client) GetPet(ctx context.Context, petID string) (Pet, error) {
	var out struct {
		Pet Pet `json:"pet"`
	}
	if err := c.public(ctx, http.MethodGet, "/api/pets/"+url.PathEscape(petID), nil, &out); err != nil {
		return Pet{}, err
	}
	return out.Pet, nil
}

func (c *Client) public(ctx context.Context, method, path string, in, out any) error {
	return apiError(c.http.Do(ctx, httpclient.Request{Method: method, Path: path, Body: in}, out))
}

// protected exige sesión; un 401 del servidor deja la sesión Anonymous.
func (c *Client) protected(ctx context.Context, method, path string, in, out any) error {
	if _, err := c.session.RequireAuthenticated(); err != nil {
		return err
	}
	token := c.session.Token()

	err := c.http.Do(ctx, httpclient.Request{Method: method, Path: path, Token: token, Body: in}, out)
	var se *httpclient.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized {
		c.session.expire(token)
	}
	return apiError(err)
}

func apiError(err error) error {
	var se *httpclient.StatusError
	if errors.As(err, &se) {
		return &APIError{Status: se.StatusCode, Message: se.Message, Fields: se.Fields}
	}
	return err
}
