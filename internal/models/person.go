package models

import (
	"time"

	"github.com/google/uuid"
)

// Placeholder values assigned on create. The API intentionally overwrites
// whatever birth date and photo the caller supplies.
var (
	PlaceholderBirthDate = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	PlaceholderPhoto     = "https://randomuser.me/api/portraits/lego/1.jpg"
)

// Person represents a stored person record
type Person struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	BirthDate time.Time `json:"birthDate"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPerson creates a new Person with a generated UUID and placeholder
// birth date and photo
func NewPerson(firstName, lastName string) *Person {
	return &Person{
		ID:        uuid.New().String(),
		FirstName: firstName,
		LastName:  lastName,
		BirthDate: PlaceholderBirthDate,
		Photo:     PlaceholderPhoto,
	}
}

// PersonEntity is the response shape exposed by the API, decoupled from the
// storage schema
type PersonEntity struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	BirthDate time.Time `json:"birthDate"`
	Photo     string    `json:"photo"`
}

// ToEntity converts a stored record into its response shape
func (p *Person) ToEntity() *PersonEntity {
	return &PersonEntity{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		BirthDate: p.BirthDate,
		Photo:     p.Photo,
	}
}

// CreatePersonRequest is the payload for creating a person. BirthDate and
// Photo are accepted but replaced with the placeholders.
type CreatePersonRequest struct {
	FirstName string     `json:"firstname" binding:"required"`
	LastName  string     `json:"lastname" binding:"required"`
	BirthDate *time.Time `json:"birthDate"`
	Photo     string     `json:"photo"`
}

// UpdatePersonRequest carries a partial update; nil fields are left untouched
type UpdatePersonRequest struct {
	FirstName *string    `json:"firstname"`
	LastName  *string    `json:"lastname"`
	BirthDate *time.Time `json:"birthDate"`
	Photo     *string    `json:"photo"`
}
