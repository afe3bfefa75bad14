package users

import (
	"strings"
	"time"
)

// UserType define el rol comercial del usuario.
// @Enum adopter, seller, both
type UserType string

const (
	UserTypeAdopter UserType = "adopter"
	UserTypeSeller  UserType = "seller"
	UserTypeBoth    UserType = "both"
)

func (t UserType) Valid() bool {
	switch t {
	case UserTypeAdopter, UserTypeSeller, UserTypeBoth:
		return true
	}
	return false
}

// User es el registro persistido. PasswordHash nunca sale del paquete
// hacia las respuestas HTTP: se expone siempre vía Public().
type User struct {
	ID           string
	Name         string
	Email        string // normalizado (trim + lower)
	PasswordHash string
	Phone        string
	Address      string
	UserType     UserType
	CreatedAt    time.Time
}

// PublicUser es la proyección pública (sin credenciales).
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	UserType  UserType  `json:"userType" enums:"adopter,seller,both"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		UserType:  u.UserType,
		CreatedAt: u.CreatedAt,
	}
}

// Owner es la proyección mínima que acompaña a un listado de mascotas.
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u User) Owner() Owner {
	return Owner{Name: u.Name, Email: u.Email}
}

// NormalizeEmail es la forma canónica usada para unicidad y login.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
