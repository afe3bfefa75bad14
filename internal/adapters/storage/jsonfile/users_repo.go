package jsonfile

import (
	"context"
	"time"

	"pet-marketplace/internal/domain/users"
)

type usersDoc struct {
	Users []userRecord `json:"users"`
}

type userRecord struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	UserType     string    `json:"userType"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toUserRecord(u users.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Phone:        u.Phone,
		Address:      u.Address,
		UserType:     string(u.UserType),
		CreatedAt:    u.CreatedAt,
	}
}

func (r userRecord) toDomain() users.User {
	return users.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Phone:        r.Phone,
		Address:      r.Address,
		UserType:     users.UserType(r.UserType),
		CreatedAt:    r.CreatedAt,
	}
}

type UsersRepo struct {
	s *Store
}

func NewUsersRepo(s *Store) *UsersRepo {
	return &UsersRepo{s: s}
}

// Create lee, verifica el email y escribe sin soltar el lock del store.
func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, err := r.s.loadUsers()
	if err != nil {
		return err
	}
	u.Email = users.NormalizeEmail(u.Email)
	for _, rec := range doc.Users {
		if users.NormalizeEmail(rec.Email) == u.Email {
			return users.ErrEmailTaken
		}
	}
	doc.Users = append(doc.Users, toUserRecord(u))
	return r.s.saveUsers(doc)
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.find(ctx, func(rec userRecord) bool { return rec.ID == id })
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	email = users.NormalizeEmail(email)
	return r.find(ctx, func(rec userRecord) bool { return users.NormalizeEmail(rec.Email) == email })
}

func (r *UsersRepo) find(ctx context.Context, match func(userRecord) bool) (users.User, error) {
	if err := ctx.Err(); err != nil {
		return users.User{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	doc, err := r.s.loadUsers()
	if err != nil {
		return users.User{}, err
	}
	for _, rec := range doc.Users {
		if match(rec) {
			return rec.toDomain(), nil
		}
	}
	return users.User{}, users.ErrNotFound
}
