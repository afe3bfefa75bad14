// Package jsonfile persiste usuarios y mascotas en dos archivos JSON
// (users.json y pets.json) dentro de un directorio de datos.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	usersFile = "users.json"
	petsFile  = "pets.json"
)

// Store serializa todos los read-modify-write de ambos archivos con un
// único mutex. Un solo proceso debe usar el directorio a la vez.
type Store struct {
	mu  sync.Mutex
	dir string
}

// Open crea el directorio y los archivos vacíos si no existen.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("jsonfile: data dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create data dir: %w", err)
	}

	s := &Store{dir: dir}
	if err := s.initFile(usersFile, usersDoc{Users: []userRecord{}}); err != nil {
		return nil, err
	}
	if err := s.initFile(petsFile, petsDoc{Pets: []petRecord{}}); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) initFile(name string, empty any) error {
	path := filepath.Join(s.dir, name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("jsonfile: stat %s: %w", name, err)
	}
	return writeJSON(path, empty)
}

// readJSON carga el documento; un archivo vacío cuenta como documento vacío.
func readJSON(path string, dst any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("jsonfile: read %s: %w", filepath.Base(path), err)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("jsonfile: decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// writeJSON escribe en un temporal del mismo directorio y renombra,
// así un corte a mitad de escritura no deja el archivo truncado.
func writeJSON(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("jsonfile: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op después del rename

	if _, err := tmp.Write(append(b, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: sync %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("jsonfile: replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *Store) loadUsers() (usersDoc, error) {
	doc := usersDoc{Users: []userRecord{}}
	err := readJSON(filepath.Join(s.dir, usersFile), &doc)
	return doc, err
}

func (s *Store) saveUsers(doc usersDoc) error {
	return writeJSON(filepath.Join(s.dir, usersFile), doc)
}

func (s *Store) loadPets() (petsDoc, error) {
	doc := petsDoc{Pets: []petRecord{}}
	err := readJSON(filepath.Join(s.dir, petsFile), &doc)
	return doc, err
}

func (s *Store) savePets(doc petsDoc) error {
	return writeJSON(filepath.Join(s.dir, petsFile), doc)
}
