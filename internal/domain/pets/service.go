package pets

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"pet-marketplace/internal/platform/apperr"

	"github.com/google/uuid"
)

type Service struct {
	repo   Repository
	owners OwnerDirectory
	now    func() time.Time
}

func NewService(repo Repository, owners OwnerDirectory) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		now:    time.Now,
	}
}

// CreateInput no tiene OwnerID: el dueño siempre es quien llama.
type CreateInput struct {
	Name        string
	Type        string
	Breed       string
	Age         string
	Gender      string
	Description string
	Price       *float64
	ForSale     *bool
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name        *string
	Type        *string
	Breed       *string
	Age         *string
	Gender      *string
	Description *string
	Price       *float64
	ForSale     *bool
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validate revisa todos los campos y reporta cada violación, no solo la primera.
func validate(p Pet) error {
	var v apperr.Validator
	v.Check(p.Name != "", "name", "name is required")
	switch {
	case p.Type == "":
		v.Add("type", "type is required")
	case !p.Type.Valid():
		v.Add("type", "type must be one of dog, cat, bird, rabbit, other")
	}
	v.Check(p.Breed != "", "breed", "breed is required")
	v.Check(p.Age != "", "age", "age is required")
	switch {
	case p.Gender == "":
		v.Add("gender", "gender is required")
	case !p.Gender.Valid():
		v.Add("gender", "gender must be one of male, female")
	}
	v.Check(p.Price >= 0 && !math.IsNaN(p.Price) && !math.IsInf(p.Price, 0), "price", "price must be a number >= 0")
	return v.Err()
}

func (s *Service) Register(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return Pet{}, apperr.Unauthorized("no token provided")
	}

	now := s.now().UTC()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Type:        Type(normalizeEnum(in.Type)),
		Breed:       strings.TrimSpace(in.Breed),
		Age:         strings.TrimSpace(in.Age),
		Gender:      Gender(normalizeEnum(in.Gender)),
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.ForSale != nil {
		p.ForSale = *in.ForSale
	}

	if err := validate(p); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, apperr.Internal(fmt.Errorf("create pet: %w", err))
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return []Pet{}, nil
	}
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list pets by owner: %w", err))
	}
	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Listing, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("list pets: %w", err))
	}
	return s.withOwners(ctx, items)
}

func (s *Service) Get(ctx context.Context, petID string) (Listing, error) {
	p, err := s.getPet(ctx, petID)
	if err != nil {
		return Listing{}, err
	}
	out, err := s.withOwners(ctx, []Pet{p})
	if err != nil {
		return Listing{}, err
	}
	return out[0], nil
}

// Update aplica un PATCH. Solo el dueño puede editar; updatedAt siempre se renueva.
func (s *Service) Update(ctx context.Context, callerID, petID string, in UpdateInput) (Pet, error) {
	current, err := s.getPet(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if current.OwnerID != strings.TrimSpace(callerID) {
		return Pet{}, apperr.Forbidden("only the owner can edit this pet")
	}

	next := current
	if in.Name != nil {
		next.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		next.Type = Type(normalizeEnum(*in.Type))
	}
	if in.Breed != nil {
		next.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age != nil {
		next.Age = strings.TrimSpace(*in.Age)
	}
	if in.Gender != nil {
		next.Gender = Gender(normalizeEnum(*in.Gender))
	}
	if in.Description != nil {
		next.Description = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		next.Price = *in.Price
	}
	if in.ForSale != nil {
		next.ForSale = *in.ForSale
	}

	if err := validate(next); err != nil {
		return Pet{}, err
	}

	next.UpdatedAt = s.now().UTC()
	if !next.UpdatedAt.After(current.UpdatedAt) {
		// reloj con baja resolución: updatedAt debe avanzar igual
		next.UpdatedAt = current.UpdatedAt.Add(time.Microsecond)
	}

	if err := s.repo.Update(ctx, next); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, apperr.NotFound(ErrNotFound.Error())
		}
		return Pet{}, apperr.Internal(fmt.Errorf("update pet: %w", err))
	}
	return next, nil
}

func (s *Service) getPet(ctx context.Context, petID string) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Pet{}, apperr.NotFound(ErrNotFound.Error())
	}
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, apperr.NotFound(ErrNotFound.Error())
		}
		return Pet{}, apperr.Internal(fmt.Errorf("get pet: %w", err))
	}
	return p, nil
}

func (s *Service) withOwners(ctx context.Context, items []Pet) ([]Listing, error) {
	ids := make([]string, 0, len(items))
	for _, p := range items {
		ids = append(ids, p.OwnerID)
	}

	owners, err := s.owners.OwnerProjections(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("resolve owners: %w", err))
	}

	out := make([]Listing, 0, len(items))
	for _, p := range items {
		l := Listing{Pet: p}
		if o, ok := owners[p.OwnerID]; ok {
			o := o
			l.Owner = &o
		}
		out = append(out, l)
	}
	return out, nil
}
