package jsonfile

import (
	"context"
	"sort"
	"time"

	"pet-marketplace/internal/domain/pets"
)

type petsDoc struct {
	Pets []petRecord `json:"pets"`
}

type petRecord struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Breed       string    `json:"breed"`
	Age         string    `json:"age"`
	Gender      string    `json:"gender"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ForSale     bool      `json:"forSale"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toPetRecord(p pets.Pet) petRecord {
	return petRecord{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Type:        string(p.Type),
		Breed:       p.Breed,
		Age:         p.Age,
		Gender:      string(p.Gender),
		Description: p.Description,
		Price:       p.Price,
		ForSale:     p.ForSale,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r petRecord) toDomain() pets.Pet {
	return pets.Pet{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Type:        pets.Type(r.Type),
		Breed:       r.Breed,
		Age:         r.Age,
		Gender:      pets.Gender(r.Gender),
		Description: r.Description,
		Price:       r.Price,
		ForSale:     r.ForSale,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type PetsRepo struct {
	s *Store
}

func NewPetsRepo(s *Store) *PetsRepo {
	return &PetsRepo{s: s}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, err := r.s.loadPets()
	if err != nil {
		return err
	}
	doc.Pets = append(doc.Pets, toPetRecord(p))
	return r.s.savePets(doc)
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, err := r.s.loadPets()
	if err != nil {
		return err
	}
	for i, rec := range doc.Pets {
		if rec.ID != p.ID {
			continue
		}
		next := toPetRecord(p)
		next.OwnerID = rec.OwnerID
		next.CreatedAt = rec.CreatedAt
		doc.Pets[i] = next
		return r.s.savePets(doc)
	}
	return pets.ErrNotFound
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	items, err := r.list(ctx, func(rec petRecord) bool { return rec.ID == id })
	if err != nil {
		return pets.Pet{}, err
	}
	if len(items) == 0 {
		return pets.Pet{}, pets.ErrNotFound
	}
	return items[0], nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	return r.list(ctx, func(rec petRecord) bool { return rec.OwnerID == ownerID })
}

func (r *PetsRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, func(petRecord) bool { return true })
}

func (r *PetsRepo) list(ctx context.Context, keep func(petRecord) bool) ([]pets.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, err := r.s.loadPets()
	if err != nil {
		return nil, err
	}
	out := make([]pets.Pet, 0, len(doc.Pets))
	for _, rec := range doc.Pets {
		if keep(rec) {
			out = append(out, rec.toDomain())
		}
	}
	// el archivo ya está en orden de alta; SliceStable respeta empates
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
