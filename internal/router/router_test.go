package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-marketplace/internal/adapters/auth/jwtauth"
	"pet-marketplace/internal/adapters/storage/jsonfile"
	"pet-marketplace/internal/router"

	"golang.org/x/crypto/bcrypt"
)

func newServer(t *testing.T, stores router.Stores) *httptest.Server {
	t.Helper()

	tokens, err := jwtauth.New(jwtauth.Config{Secret: []byte("router-test"), TTL: time.Hour})
	if err != nil {
		t.Fatalf("jwtauth: %v", err)
	}
	h, err := router.NewRouter(router.Options{
		Tokens:     tokens,
		Stores:     stores,
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_Marketplace(t *testing.T) {
	ts := newServer(t, router.Stores{})

	// 1) Alta de vendedor y adoptante
	alice := register(t, ts.URL, map[string]any{
		"name": "Alice", "email": "a@x.com", "password": "secret1",
		"phone": "1", "address": "Main St", "userType": "seller",
	})
	bob := register(t, ts.URL, map[string]any{
		"name": "Bob", "email": "b@x.com", "password": "secret2",
		"phone": "2", "address": "Side St",
	})

	// 2) Email duplicado (sin importar mayúsculas) => 409
	{
		st, body := doReq(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
			"name": "Other", "email": "A@X.COM", "password": "secret1",
			"phone": "1", "address": "x",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate email, got %d body=%s", st, string(body))
		}
		assertMessage(t, body, "email already registered")
	}

	// 3) Login: password incorrecto y email inexistente responden igual
	{
		st1, body1 := doReq(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{"email": "a@x.com", "password": "nope99"})
		st2, body2 := doReq(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{"email": "ghost@x.com", "password": "nope99"})
		if st1 != http.StatusUnauthorized || st2 != http.StatusUnauthorized {
			t.Fatalf("expected 401/401, got %d/%d", st1, st2)
		}
		if string(body1) != string(body2) {
			t.Fatalf("login failures differ: %s vs %s", body1, body2)
		}

		st, body := doReq(t, ts.URL, "POST", "/api/auth/login", "", map[string]any{"email": " A@x.com ", "password": "secret1"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
	}

	// 4) /me con y sin token
	{
		st, body := doReq(t, ts.URL, "GET", "/api/auth/me", alice, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 me, got %d body=%s", st, string(body))
		}
		if strings.Contains(string(body), "password") {
			t.Fatalf("me leaks password: %s", body)
		}

		st, body = doReq(t, ts.URL, "GET", "/api/auth/me", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
		assertMessage(t, body, "no token provided")

		st, body = doReq(t, ts.URL, "GET", "/api/auth/me", "garbage.token.value", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 bad token, got %d", st)
		}
		assertMessage(t, body, "invalid or expired token")
	}

	// 5) Alice publica a Rex; un ownerId del cliente se ignora
	petID := createPet(t, ts.URL, alice, map[string]any{
		"name": "Rex", "type": "dog", "breed": "Lab", "age": "2", "gender": "male",
		"ownerId": "someone-else",
	})

	// 6) Tipo inválido => 400 con el campo señalado
	{
		st, body := doReq(t, ts.URL, "POST", "/api/pets", alice, map[string]any{
			"name": "Nemo", "type": "fish", "breed": "Clown", "age": "1", "gender": "male",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 invalid type, got %d body=%s", st, string(body))
		}
		var resp struct {
			Success bool `json:"success"`
			Errors  []struct {
				Field string `json:"field"`
			} `json:"errors"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Success || len(resp.Errors) != 1 || resp.Errors[0].Field != "type" {
			t.Fatalf("expected single type violation, body=%s", string(body))
		}
	}

	// 7) Publicar sin token => 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/pets", "", map[string]any{"name": "x"})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 create pet without token, got %d", st)
		}
	}

	// 8) Mis mascotas: Alice ve a Rex, Bob no ve nada
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pets/user", alice, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 my pets, got %d body=%s", st, string(body))
		}
		mine := decodePets(t, body)
		if len(mine) != 1 || mine[0].Name != "Rex" || mine[0].OwnerID == "someone-else" {
			t.Fatalf("unexpected my pets: %s", string(body))
		}

		_, body = doReq(t, ts.URL, "GET", "/api/pets/user", bob, nil)
		if got := decodePets(t, body); len(got) != 0 {
			t.Fatalf("bob should own no pets, got %s", string(body))
		}
	}

	// 9) Catálogo público con proyección del dueño, incluso con token vencido
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pets", "stale.token.here", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 catalog, got %d body=%s", st, string(body))
		}
		all := decodePets(t, body)
		if len(all) != 1 || all[0].Owner == nil || all[0].Owner.Name != "Alice" || all[0].Owner.Email != "a@x.com" {
			t.Fatalf("unexpected catalog: %s", string(body))
		}
		if strings.Contains(string(body), "password") || strings.Contains(string(body), "phone") {
			t.Fatalf("catalog leaks owner data: %s", body)
		}
	}

	// 10) Solo el dueño edita
	{
		st, _ := doReq(t, ts.URL, "PATCH", "/api/pets/"+petID, bob, map[string]any{"forSale": true})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 patch by non-owner, got %d", st)
		}

		st, body := doReq(t, ts.URL, "PATCH", "/api/pets/"+petID, alice, map[string]any{"forSale": true, "price": 100})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch by owner, got %d body=%s", st, string(body))
		}
		var resp struct {
			Pet petView `json:"pet"`
		}
		_ = json.Unmarshal(body, &resp)
		if !resp.Pet.ForSale || resp.Pet.Price != 100 || !resp.Pet.UpdatedAt.After(resp.Pet.CreatedAt) {
			t.Fatalf("unexpected patched pet: %s", string(body))
		}
	}

	// 11) Detalle y 404
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pets/"+petID, "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d body=%s", st, string(body))
		}
		st, body = doReq(t, ts.URL, "GET", "/api/pets/does-not-exist", "", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", st)
		}
		assertMessage(t, body, "pet not found")
	}
}

func TestHTTP_RegisterValidation_ReportsEveryField(t *testing.T) {
	ts := newServer(t, router.Stores{})

	st, body := doReq(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"email": "bad", "password": "123", "userType": "buyer",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
	for _, f := range []string{`"name"`, `"email"`, `"password"`, `"phone"`, `"address"`, `"userType"`} {
		if !strings.Contains(string(body), f) {
			t.Fatalf("missing violation %s in %s", f, string(body))
		}
	}
}

func TestHTTP_Register_ShortMultibytePassword(t *testing.T) {
	ts := newServer(t, router.Stores{})

	st, body := doReq(t, ts.URL, "POST", "/api/auth/register", "", map[string]any{
		"name": "Ana", "email": "ana@example.com", "password": "ñññ",
		"phone": "555-0101", "address": "742 Evergreen Terrace",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), `"field":"password"`) {
		t.Fatalf("expected password violation, got %s", string(body))
	}
	if strings.Contains(string(body), `"token"`) {
		t.Fatalf("no token expected on rejected register: %s", string(body))
	}
}

func TestHTTP_SwaggerDocIsServed(t *testing.T) {
	ts := newServer(t, router.Stores{})

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}
	for _, want := range []string{`"Pet Marketplace API"`, `"/api/pets"`, `"/api/auth/register"`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("doc.json missing %s", want)
		}
	}
}

func TestHTTP_InvalidJSONAndUnknownRoutes(t *testing.T) {
	ts := newServer(t, router.Stores{})

	req, _ := http.NewRequest("POST", ts.URL+"/api/auth/login", strings.NewReader("{nope"))
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 invalid json, got %d", res.StatusCode)
	}
	assertMessage(t, body, "invalid json")

	st, body := doReq(t, ts.URL, "GET", "/api/nothing", "", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 unknown route, got %d", st)
	}
	assertMessage(t, body, "route not found")

	st, _ = doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
}

func TestHTTP_JSONStore_PersistsAcrossRouters(t *testing.T) {
	dir := t.TempDir()
	open := func() router.Stores {
		s, err := jsonfile.Open(dir)
		if err != nil {
			t.Fatalf("jsonfile: %v", err)
		}
		return router.Stores{Users: jsonfile.NewUsersRepo(s), Pets: jsonfile.NewPetsRepo(s)}
	}

	first := newServer(t, open())
	token := register(t, first.URL, map[string]any{
		"name": "Alice", "email": "a@x.com", "password": "secret1",
		"phone": "1", "address": "Main St",
	})
	createPet(t, first.URL, token, map[string]any{
		"name": "Rex", "type": "dog", "breed": "Lab", "age": "2", "gender": "male",
	})

	// mismo secreto => el token sigue valiendo contra el segundo proceso
	second := newServer(t, open())
	st, body := doReq(t, second.URL, "GET", "/api/pets/user", token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", st, string(body))
	}
	if got := decodePets(t, body); len(got) != 1 || got[0].Name != "Rex" {
		t.Fatalf("expected Rex after reopen, got %s", string(body))
	}
}

// -------------------------
// Helpers
// -------------------------

type petView struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ForSale   bool      `json:"forSale"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Owner     *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"owner"`
}

func decodePets(t *testing.T, body []byte) []petView {
	t.Helper()
	var resp struct {
		Success bool      `json:"success"`
		Pets    []petView `json:"pets"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode pets: %v body=%s", err, string(body))
	}
	if !resp.Success {
		t.Fatalf("expected success body=%s", string(body))
	}
	return resp.Pets
}

func assertMessage(t *testing.T, body []byte, want string) {
	t.Helper()
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Success || resp.Message != want {
		t.Fatalf("expected failure %q, got body=%s", want, string(body))
	}
}

func register(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/auth/register", "", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" {
		t.Fatalf("register: missing token body=%s", string(body))
	}
	return resp.Token
}

func createPet(t *testing.T, baseURL, token string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/api/pets", token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		Pet struct {
			ID string `json:"id"`
		} `json:"pet"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Pet.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.Pet.ID
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
