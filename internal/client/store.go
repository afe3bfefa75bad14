package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Persisted es lo que sobrevive entre ejecuciones: token + usuario cacheado.
type Persisted struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// SessionStore guarda la sesión local. Load devuelve (nil, nil) si no hay nada.
type SessionStore interface {
	Load() (*Persisted, error)
	Save(p Persisted) error
	Clear() error
}

// FileStore persiste la sesión en un JSON con permisos 0600.
type FileStore struct {
	Path string
}

// DefaultSessionPath: $PETCTL_SESSION o <UserConfigDir>/petctl/session.json.
func DefaultSessionPath() (string, error) {
	if p := os.Getenv("PETCTL_SESSION"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("session path: %w", err)
	}
	return filepath.Join(dir, "petctl", "session.json"), nil
}

func (s FileStore) Load() (*Persisted, error) {
	b, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var p Persisted
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &p, nil
}

func (s FileStore) Save(p Persisted) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("session dir: %w", err)
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return os.Rename(tmp, s.Path)
}

func (s FileStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
