package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// BatchReader es opcional: los repos que pueden traer varios usuarios en
// una sola consulta (postgres) lo implementan y se evita el N+1.
type BatchReader interface {
	ListByIDs(ctx context.Context, ids []string) ([]User, error)
}

// OwnerProjections resuelve nombre+email de cada id. Los ids que no existen
// se omiten del mapa (mascota huérfana => sin owner).
func (s *Service) OwnerProjections(ctx context.Context, ids []string) (map[string]Owner, error) {
	uniq := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		uniq = append(uniq, id)
	}

	out := make(map[string]Owner, len(uniq))
	if len(uniq) == 0 {
		return out, nil
	}

	if br, ok := s.repo.(BatchReader); ok {
		found, err := br.ListByIDs(ctx, uniq)
		if err != nil {
			return nil, fmt.Errorf("owners: %w", err)
		}
		for _, u := range found {
			out[u.ID] = u.Owner()
		}
		return out, nil
	}

	for _, id := range uniq {
		u, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("owner %s: %w", id, err)
		}
		out[id] = u.Owner()
	}
	return out, nil
}
