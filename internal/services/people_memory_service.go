package services

import (
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/peopleapp/people-api/internal/models"
)

// MemoryPeopleService keeps the people list in an owned slice inside the
// service instance, seeded at construction. It lets the API run without a
// database; records created here do not survive a restart.
//
// The mutex is there because gin serves requests on concurrent goroutines;
// no further coordination is attempted.
type MemoryPeopleService struct {
	mu     sync.Mutex
	people []*models.PersonEntity
}

// DefaultSeed returns the static list loaded when the memory backend starts
func DefaultSeed() []*models.PersonEntity {
	return []*models.PersonEntity{
		{ID: "1", FirstName: "John", LastName: "Doe", BirthDate: models.PlaceholderBirthDate, Photo: models.PlaceholderPhoto},
		{ID: "2", FirstName: "Jane", LastName: "Smith", BirthDate: models.PlaceholderBirthDate, Photo: models.PlaceholderPhoto},
		{ID: "3", FirstName: "Richard", LastName: "Roe", BirthDate: models.PlaceholderBirthDate, Photo: models.PlaceholderPhoto},
	}
}

func NewMemoryPeopleService(seed []*models.PersonEntity) *MemoryPeopleService {
	people := make([]*models.PersonEntity, 0, len(seed))
	for _, person := range seed {
		people = append(people, clonePerson(person))
	}
	return &MemoryPeopleService{people: people}
}

// FindAll returns every person in insertion order
func (s *MemoryPeopleService) FindAll() ([]*models.PersonEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.people) == 0 {
		return nil, ErrNotFound
	}

	entities := make([]*models.PersonEntity, 0, len(s.people))
	for _, person := range s.people {
		entities = append(entities, clonePerson(person))
	}
	return entities, nil
}

// FindRandom returns one uniformly selected person
func (s *MemoryPeopleService) FindRandom() (*models.PersonEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.people) == 0 {
		return nil, ErrNotFound
	}
	return clonePerson(s.people[rand.Intn(len(s.people))]), nil
}

// FindOne returns the person with the given ID
func (s *MemoryPeopleService) FindOne(id string) (*models.PersonEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, person := range s.people {
		if person.ID == id {
			return clonePerson(person), nil
		}
	}
	return nil, ErrNotFound
}

// Create appends a new person with a timestamp-derived ID. The caller's
// birth date and photo are replaced with the placeholders.
func (s *MemoryPeopleService) Create(req *models.CreatePersonRequest) (*models.PersonEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByName(req.FirstName, req.LastName, "") != nil {
		return nil, ErrConflict
	}

	person := &models.PersonEntity{
		ID:        strconv.FormatInt(time.Now().UnixNano(), 10),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: models.PlaceholderBirthDate,
		Photo:     models.PlaceholderPhoto,
	}
	s.people = append(s.people, person)
	return clonePerson(person), nil
}

// Update merges the provided fields into the stored person
func (s *MemoryPeopleService) Update(id string, req *models.UpdatePersonRequest) (*models.PersonEntity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var person *models.PersonEntity
	for _, candidate := range s.people {
		if candidate.ID == id {
			person = candidate
			break
		}
	}
	if person == nil {
		return nil, ErrNotFound
	}

	firstName := person.FirstName
	lastName := person.LastName
	if req.FirstName != nil {
		firstName = *req.FirstName
	}
	if req.LastName != nil {
		lastName = *req.LastName
	}
	if s.findByName(firstName, lastName, id) != nil {
		return nil, ErrConflict
	}

	person.FirstName = firstName
	person.LastName = lastName
	if req.BirthDate != nil {
		person.BirthDate = *req.BirthDate
	}
	if req.Photo != nil {
		person.Photo = *req.Photo
	}
	return clonePerson(person), nil
}

// Delete removes the person with the given ID
func (s *MemoryPeopleService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, person := range s.people {
		if person.ID == id {
			s.people = slices.Delete(s.people, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

// findByName scans for a case-insensitive name match, skipping excludeID.
// Callers must hold the mutex.
func (s *MemoryPeopleService) findByName(firstName, lastName, excludeID string) *models.PersonEntity {
	for _, person := range s.people {
		if person.ID == excludeID {
			continue
		}
		if strings.EqualFold(person.FirstName, firstName) && strings.EqualFold(person.LastName, lastName) {
			return person
		}
	}
	return nil
}

func clonePerson(p *models.PersonEntity) *models.PersonEntity {
	clone := *p
	return &clone
}
