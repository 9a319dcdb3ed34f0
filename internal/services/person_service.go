package services

import (
	"strings"

	"github.com/peopleapp/people-api/internal/models"
	"github.com/peopleapp/people-api/internal/repositories"
	"github.com/peopleapp/people-api/pkg/logger"
)

// PeopleService is implemented by both the store-backed and the in-memory
// variants.
type PeopleService interface {
	FindAll() ([]*models.PersonEntity, error)
	FindRandom() (*models.PersonEntity, error)
	FindOne(id string) (*models.PersonEntity, error)
	Create(req *models.CreatePersonRequest) (*models.PersonEntity, error)
	Update(id string, req *models.UpdatePersonRequest) (*models.PersonEntity, error)
	Delete(id string) error
}

// PersonService serves people from the SQLite store through PersonRepository
type PersonService struct {
	personRepo *repositories.PersonRepository
}

func NewPersonService(personRepo *repositories.PersonRepository) *PersonService {
	return &PersonService{
		personRepo: personRepo,
	}
}

// FindAll returns every stored person
func (s *PersonService) FindAll() ([]*models.PersonEntity, error) {
	people, err := s.personRepo.GetAll()
	if err != nil {
		return nil, translateStorageError(err)
	}
	if len(people) == 0 {
		return nil, ErrNotFound
	}

	entities := make([]*models.PersonEntity, 0, len(people))
	for _, person := range people {
		entities = append(entities, person.ToEntity())
	}
	return entities, nil
}

// FindRandom returns one person selected uniformly by the store
func (s *PersonService) FindRandom() (*models.PersonEntity, error) {
	person, err := s.personRepo.GetRandom()
	if err != nil {
		return nil, translateStorageError(err)
	}
	if person == nil {
		return nil, ErrNotFound
	}
	return person.ToEntity(), nil
}

// FindOne returns the person with the given ID
func (s *PersonService) FindOne(id string) (*models.PersonEntity, error) {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return nil, translateStorageError(err)
	}
	if person == nil {
		return nil, ErrNotFound
	}
	return person.ToEntity(), nil
}

// Create stores a new person. The caller-supplied birth date and photo are
// replaced with the placeholders.
func (s *PersonService) Create(req *models.CreatePersonRequest) (*models.PersonEntity, error) {
	existing, err := s.personRepo.FindByName(req.FirstName, req.LastName)
	if err != nil {
		return nil, translateStorageError(err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	person := models.NewPerson(req.FirstName, req.LastName)
	if err := s.personRepo.Create(person); err != nil {
		return nil, translateStorageError(err)
	}
	return person.ToEntity(), nil
}

// Update merges the provided fields into the stored person. A name that
// collides with a different person is rejected; keeping the person's own
// name is allowed.
func (s *PersonService) Update(id string, req *models.UpdatePersonRequest) (*models.PersonEntity, error) {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return nil, translateStorageError(err)
	}
	if person == nil {
		return nil, ErrNotFound
	}

	if req.FirstName != nil {
		person.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		person.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		person.BirthDate = *req.BirthDate
	}
	if req.Photo != nil {
		person.Photo = *req.Photo
	}

	existing, err := s.personRepo.FindByName(person.FirstName, person.LastName)
	if err != nil {
		return nil, translateStorageError(err)
	}
	if existing != nil && existing.ID != id {
		return nil, ErrConflict
	}

	if err := s.personRepo.Update(person); err != nil {
		return nil, translateStorageError(err)
	}
	return person.ToEntity(), nil
}

// Delete removes the person with the given ID
func (s *PersonService) Delete(id string) error {
	person, err := s.personRepo.GetByID(id)
	if err != nil {
		return translateStorageError(err)
	}
	if person == nil {
		return ErrNotFound
	}
	if err := s.personRepo.Delete(id); err != nil {
		return translateStorageError(err)
	}
	return nil
}

// translateStorageError maps storage failures onto the service error kinds.
// SQLite reports duplicate keys as a UNIQUE constraint violation; everything
// else is unprocessable.
func translateStorageError(err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrConflict
	}
	logger.WithError(err).Error("storage operation failed")
	return ErrUnprocessable
}
