package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/peopleapp/people-api/internal/models"
	"github.com/peopleapp/people-api/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var personColumns = []string{"id", "first_name", "last_name", "birth_date", "photo", "created_at", "updated_at"}

func newStoreService(t *testing.T) (*PersonService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPersonService(repositories.NewPersonRepository(db)), mock
}

func personRow(id, firstName, lastName string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(personColumns).
		AddRow(id, firstName, lastName, models.PlaceholderBirthDate, models.PlaceholderPhoto, now, now)
}

func TestPersonServiceFindAll(t *testing.T) {
	t.Run("Returns entities", func(t *testing.T) {
		service, mock := newStoreService(t)
		rows := sqlmock.NewRows(personColumns).
			AddRow("id-1", "John", "Doe", models.PlaceholderBirthDate, models.PlaceholderPhoto, time.Now(), time.Now()).
			AddRow("id-2", "Jane", "Smith", models.PlaceholderBirthDate, models.PlaceholderPhoto, time.Now(), time.Now())
		mock.ExpectQuery(regexp.QuoteMeta("FROM people ORDER BY created_at")).WillReturnRows(rows)

		people, err := service.FindAll()

		assert.NoError(t, err)
		assert.Len(t, people, 2)
		assert.Equal(t, "John", people[0].FirstName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty table fails with not found", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM people ORDER BY created_at")).
			WillReturnRows(sqlmock.NewRows(personColumns))

		_, err := service.FindAll()

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Storage failure is unprocessable", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM people ORDER BY created_at")).
			WillReturnError(errors.New("database is locked"))

		_, err := service.FindAll()

		assert.ErrorIs(t, err, ErrUnprocessable)
	})
}

func TestPersonServiceFindRandom(t *testing.T) {
	t.Run("Returns one entity", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY RANDOM() LIMIT 1")).
			WillReturnRows(personRow("id-1", "John", "Doe"))

		person, err := service.FindRandom()

		assert.NoError(t, err)
		assert.Equal(t, "id-1", person.ID)
	})

	t.Run("Empty table fails with not found", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY RANDOM() LIMIT 1")).
			WillReturnRows(sqlmock.NewRows(personColumns))

		_, err := service.FindRandom()

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPersonServiceFindOne(t *testing.T) {
	t.Run("Existing id", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM people WHERE id = ?")).
			WithArgs("id-1").
			WillReturnRows(personRow("id-1", "John", "Doe"))

		person, err := service.FindOne("id-1")

		assert.NoError(t, err)
		assert.Equal(t, "John", person.FirstName)
		assert.Equal(t, models.PlaceholderPhoto, person.Photo)
	})

	t.Run("Missing id fails with not found", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM people WHERE id = ?")).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(personColumns))

		_, err := service.FindOne("missing")

		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPersonServiceCreate(t *testing.T) {
	findByName := regexp.QuoteMeta("LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)")

	t.Run("Stores person with placeholders", func(t *testing.T) {
		service, mock := newStoreService(t)
		birthDate := time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(findByName).
			WithArgs("Jane", "Doe").
			WillReturnRows(sqlmock.NewRows(personColumns))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO people")).
			WithArgs(sqlmock.AnyArg(), "Jane", "Doe", models.PlaceholderBirthDate, models.PlaceholderPhoto).
			WillReturnResult(sqlmock.NewResult(1, 1))

		person, err := service.Create(&models.CreatePersonRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			BirthDate: &birthDate,
			Photo:     "https://example.com/jane.jpg",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, person.ID)
		assert.Equal(t, models.PlaceholderBirthDate, person.BirthDate)
		assert.Equal(t, models.PlaceholderPhoto, person.Photo)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Existing name conflicts", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(findByName).
			WithArgs("Jane", "Doe").
			WillReturnRows(personRow("id-9", "Jane", "Doe"))

		_, err := service.Create(&models.CreatePersonRequest{FirstName: "Jane", LastName: "Doe"})

		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("Duplicate key from the store conflicts", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(findByName).
			WithArgs("Jane", "Doe").
			WillReturnRows(sqlmock.NewRows(personColumns))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO people")).
			WillReturnError(errors.New("UNIQUE constraint failed: people.first_name"))

		_, err := service.Create(&models.CreatePersonRequest{FirstName: "Jane", LastName: "Doe"})

		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("Other storage failure is unprocessable", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(findByName).
			WithArgs("Jane", "Doe").
			WillReturnRows(sqlmock.NewRows(personColumns))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO people")).
			WillReturnError(errors.New("disk I/O error"))

		_, err := service.Create(&models.CreatePersonRequest{FirstName: "Jane", LastName: "Doe"})

		assert.ErrorIs(t, err, ErrUnprocessable)
	})
}

func TestPersonServiceUpdate(t *testing.T) {
	getByID := regexp.QuoteMeta("FROM people WHERE id = ?")
	findByName := regexp.QuoteMeta("LOWER(first_name) = LOWER(?) AND LOWER(last_name) = LOWER(?)")

	t.Run("Merges provided fields", func(t *testing.T) {
		service, mock := newStoreService(t)
		lastName := "Dorian"
		mock.ExpectQuery(getByID).WithArgs("id-1").WillReturnRows(personRow("id-1", "John", "Doe"))
		mock.ExpectQuery(findByName).
			WithArgs("John", "Dorian").
			WillReturnRows(sqlmock.NewRows(personColumns))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE people SET")).
			WithArgs("John", "Dorian", models.PlaceholderBirthDate, models.PlaceholderPhoto, "id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		person, err := service.Update("id-1", &models.UpdatePersonRequest{LastName: &lastName})

		assert.NoError(t, err)
		assert.Equal(t, "John", person.FirstName)
		assert.Equal(t, "Dorian", person.LastName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing id fails with not found", func(t *testing.T) {
		service, mock := newStoreService(t)
		lastName := "Dorian"
		mock.ExpectQuery(getByID).WithArgs("missing").WillReturnRows(sqlmock.NewRows(personColumns))

		_, err := service.Update("missing", &models.UpdatePersonRequest{LastName: &lastName})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Name held by another person conflicts", func(t *testing.T) {
		service, mock := newStoreService(t)
		firstName := "Jane"
		lastName := "Smith"
		mock.ExpectQuery(getByID).WithArgs("id-1").WillReturnRows(personRow("id-1", "John", "Doe"))
		mock.ExpectQuery(findByName).
			WithArgs("Jane", "Smith").
			WillReturnRows(personRow("id-2", "Jane", "Smith"))

		_, err := service.Update("id-1", &models.UpdatePersonRequest{FirstName: &firstName, LastName: &lastName})

		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("Keeping own name succeeds", func(t *testing.T) {
		service, mock := newStoreService(t)
		photo := "https://example.com/new.jpg"
		mock.ExpectQuery(getByID).WithArgs("id-1").WillReturnRows(personRow("id-1", "John", "Doe"))
		mock.ExpectQuery(findByName).
			WithArgs("John", "Doe").
			WillReturnRows(personRow("id-1", "John", "Doe"))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE people SET")).
			WithArgs("John", "Doe", models.PlaceholderBirthDate, photo, "id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		person, err := service.Update("id-1", &models.UpdatePersonRequest{Photo: &photo})

		assert.NoError(t, err)
		assert.Equal(t, photo, person.Photo)
	})
}

func TestPersonServiceDelete(t *testing.T) {
	getByID := regexp.QuoteMeta("FROM people WHERE id = ?")

	t.Run("Removes the person", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(getByID).WithArgs("id-1").WillReturnRows(personRow("id-1", "John", "Doe"))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM people WHERE id = ?")).
			WithArgs("id-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, service.Delete("id-1"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing id fails with not found", func(t *testing.T) {
		service, mock := newStoreService(t)
		mock.ExpectQuery(getByID).WithArgs("missing").WillReturnRows(sqlmock.NewRows(personColumns))

		assert.ErrorIs(t, service.Delete("missing"), ErrNotFound)
	})
}
