package client

import "time"

// User es la proyección pública que devuelve la API (sin password).
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	UserType  string    `json:"userType"`
	CreatedAt time.Time `json:"createdAt"`
}

type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Pet cubre tanto /api/pets/user (Owner nil) como el catálogo.
type Pet struct {
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
	Owner       *Owner    `json:"owner,omitempty"`
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	UserType string `json:"userType,omitempty"`
}

type PetInput struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Breed       string   `json:"breed"`
	Age         string   `json:"age"`
	Gender      string   `json:"gender"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ForSale     *bool    `json:"forSale,omitempty"`
}

type PetPatch struct {
	Name        *string  `json:"name,omitempty"`
	Type        *string  `json:"type,omitempty"`
	Breed       *string  `json:"breed,omitempty"`
	Age         *string  `json:"age,omitempty"`
	Gender      *string  `json:"gender,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ForSale     *bool    `json:"forSale,omitempty"`
}
