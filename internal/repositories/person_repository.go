package repositories

import (
	"database/sql"

	"github.com/peopleapp/people-api/internal/models"
)

type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Create inserts a new person
func (r *PersonRepository) Create(person *models.Person) error {
	query := `
		INSERT INTO people (
			id, first_name, last_name, birth_date, photo
		) VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, person.ID, person.FirstName, person.LastName, person.BirthDate, person.Photo)
	return err
}

// GetAll retrieves every person ordered by creation time
func (r *PersonRepository) GetAll() ([]*models.Person, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, photo, created_at, updated_at
		FROM people ORDER BY created_at
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []*models.Person
	for rows.Next() {
		person := &models.Person{}
		err := rows.Scan(
			&person.ID, &person.FirstName, &person.LastName, &person.BirthDate,
			&person.Photo, &person.CreatedAt, &person.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	return people, rows.Err()
}

// GetByID retrieves a person by ID. A missing row is reported as a nil
// person with a nil error.
func (r *PersonRepository) GetByID(id string) (*models.Person, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, photo, created_at, updated_at
		FROM people WHERE id = ?
	`

	person := &models.Person{}
	err := r.db.QueryRow(query, id).Scan(
		&person.ID, &person.FirstName, &person.LastName, &person.BirthDate,
		&person.Photo, &person.CreatedAt, &person.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return person, nil
}

// GetRandom retrieves one person selected uniformly by the store, or nil
// when the table is empty
func (r *PersonRepository) GetRandom() (*models.Person, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, photo, created_at, updated_at
		FROM people ORDER BY RANDOM() LIMIT 1
	`

	person := &models.Person{}
	err := r.db.QueryRow(query).Scan(
		&person.ID, &person.FirstName, &person.LastName, &person.BirthDate,
		&person.Photo, &person.CreatedAt, &person.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return person, nil
}

// FindByName retrieves a person by case-insensitive first and last name, or
// nil when no such person exists
func (r *PersonRepository) FindByName(firstName, lastName string) (*models.Person, error) {
	query := `
		SELECT id, first_name, last_name, birth_date, photo, created_at, updated_at
		FROM people WHERE LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)
	`

	person := &models.Person{}
	err := r.db.QueryRow(query, firstName, lastName).Scan(
		&person.ID, &person.FirstName, &person.LastName, &person.BirthDate,
		&person.Photo, &person.CreatedAt, &person.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return person, nil
}

// Update updates an existing person
func (r *PersonRepository) Update(person *models.Person) error {
	query := `
		UPDATE people SET
			first_name = ?, last_name = ?, birth_date = ?, photo = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query, person.FirstName, person.LastName, person.BirthDate, person.Photo, person.ID)
	return err
}

// Delete deletes a person by ID
func (r *PersonRepository) Delete(id string) error {
	query := `DELETE FROM people WHERE id = ?`
	_, err := r.db.Exec(query, id)
	return err
}
