package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pet-marketplace/internal/adapters/auth/jwtauth"
	"pet-marketplace/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAPI(t *testing.T) string {
	t.Helper()
	tokens, err := jwtauth.New(jwtauth.Config{Secret: []byte("petctl-test"), TTL: time.Hour})
	require.NoError(t, err)
	h, err := router.NewRouter(router.Options{Tokens: tokens, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts.URL
}

type harness struct {
	base   []string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	return &harness{
		base:   []string{"-api", newAPI(t), "-session", filepath.Join(t.TempDir(), "session.json")},
		stdout: new(bytes.Buffer),
		stderr: new(bytes.Buffer),
	}
}

func (h *harness) run(stdin string, args ...string) error {
	h.stdout.Reset()
	h.stderr.Reset()
	return run(append(append([]string{}, h.base...), args...), bytes.NewBufferString(stdin), h.stdout, h.stderr)
}

func TestRun_RegisterAddAndList(t *testing.T) {
	h := newHarness(t)

	err := h.run("", "register", "-name", "Alice", "-email", "a@x.com", "-password", "secret1",
		"-phone", "1", "-address", "Main St", "-type", "seller")
	require.NoError(t, err)
	assert.Contains(t, h.stdout.String(), "Registered Alice <a@x.com> as seller")

	require.NoError(t, h.run("", "me"))
	assert.Contains(t, h.stdout.String(), "Alice <a@x.com>")

	require.NoError(t, h.run("", "pets", "add", "-name", "Rex", "-type", "dog", "-breed", "Lab", "-age", "2", "-gender", "male"))
	assert.Contains(t, h.stdout.String(), "Registered Rex (dog)")

	require.NoError(t, h.run("", "pets", "mine"))
	assert.Contains(t, h.stdout.String(), "Rex")

	require.NoError(t, h.run("", "logout"))

	// el catálogo sigue siendo visible sin sesión
	require.NoError(t, h.run("", "pets", "all"))
	assert.Contains(t, h.stdout.String(), "Alice <a@x.com>")

	err = h.run("", "pets", "mine")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestRun_LoginPromptsForPassword(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("", "register", "-name", "Alice", "-email", "a@x.com", "-password", "secret1",
		"-phone", "1", "-address", "Main St"))
	require.NoError(t, h.run("", "logout"))

	require.NoError(t, h.run("secret1\n", "login", "-email", "a@x.com"))
	assert.Contains(t, h.stdout.String(), "Password: ")
	assert.Contains(t, h.stdout.String(), "Logged in as Alice")

	err := h.run("nope99\n", "login", "-email", "a@x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestRun_ValidationDetails(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("", "register", "-name", "Alice", "-email", "a@x.com", "-password", "secret1",
		"-phone", "1", "-address", "Main St"))

	err := h.run("", "pets", "add", "-name", "Nemo", "-type", "fish", "-breed", "Clown", "-age", "1", "-gender", "male")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type:")
}

func TestRun_Usage(t *testing.T) {
	h := newHarness(t)

	err := h.run("")
	require.Error(t, err)
	assert.Contains(t, h.stdout.String(), "Usage: petctl")

	err = h.run("", "adopt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}
