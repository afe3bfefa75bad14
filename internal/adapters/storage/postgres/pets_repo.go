package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pet-marketplace/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner_id,
			name, type, breed, age, gender,
			description, price, for_sale,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.OwnerID,
		p.Name,
		string(p.Type),
		p.Breed,
		p.Age,
		string(p.Gender),
		p.Description,
		p.Price,
		p.ForSale,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

// Update no toca owner_id ni created_at.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			type = $3,
			breed = $4,
			age = $5,
			gender = $6,
			description = $7,
			price = $8,
			for_sale = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		string(p.Type),
		p.Breed,
		p.Age,
		string(p.Gender),
		p.Description,
		p.Price,
		p.ForSale,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	p, err := scanPet(r.db.QueryRowContext(ctx, selectPets+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return []pets.Pet{}, nil
	}
	return r.query(ctx, selectPets+` WHERE owner_id = $1 ORDER BY created_at ASC, id ASC`, ownerID)
}

func (r *PetsRepo) ListAll(ctx context.Context) ([]pets.Pet, error) {
	return r.query(ctx, selectPets+` ORDER BY created_at ASC, id ASC`)
}

const selectPets = `
	SELECT
		id, owner_id,
		name, type, breed, age, gender,
		description, price, for_sale,
		created_at, updated_at
	FROM pets`

func (r *PetsRepo) query(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var typ, gender string
	if err := row.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&typ,
		&p.Breed,
		&p.Age,
		&gender,
		&p.Description,
		&p.Price,
		&p.ForSale,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Type = pets.Type(typ)
	p.Gender = pets.Gender(gender)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}
