package pets

import (
	"time"

	"pet-marketplace/internal/domain/users"
)

// Type define las especies aceptadas en el marketplace.
// @Enum dog, cat, bird, rabbit, other
type Type string

const (
	TypeDog    Type = "dog"
	TypeCat    Type = "cat"
	TypeBird   Type = "bird"
	TypeRabbit Type = "rabbit"
	TypeOther  Type = "other"
)

func (t Type) Valid() bool {
	switch t {
	case TypeDog, TypeCat, TypeBird, TypeRabbit, TypeOther:
		return true
	}
	return false
}

// Gender define el sexo de la mascota.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Pet es una publicación de mascota; siempre tiene exactamente un dueño.
type Pet struct {
	ID      string
	OwnerID string

	Name   string
	Type   Type
	Breed  string
	Age    string // texto libre ("2", "8 months", ...)
	Gender Gender

	Description string
	Price       float64
	ForSale     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Listing es una mascota con la proyección mínima de su dueño.
// Owner es nil si el dueño ya no existe.
type Listing struct {
	Pet   Pet
	Owner *users.Owner
}
