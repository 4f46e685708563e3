package person

import (
	"context"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/pkg/geo"
)

type Service interface {
	Create(ctx context.Context, person Person) (Person, error)
	Get(ctx context.Context, id int64) (Person, error)
	List(ctx context.Context, page rest.PageRequest) ([]Person, int64, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Person, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, person Person) (Person, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo         Repo
	localityRepo geo.LocalityRepo
	countryRepo  geo.CountryRepo
	metrics      *metrics.Metrics
}

func NewService(repo Repo, localityRepo geo.LocalityRepo, countryRepo geo.CountryRepo, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{repo: repo, localityRepo: localityRepo, countryRepo: countryRepo, metrics: m}
}

func (s ServiceImpl) Create(ctx context.Context, person Person) (Person, error) {
	if err := validate(person); err != nil {
		return Person{}, err
	}
	if err := s.checkReferences(ctx, person); err != nil {
		return Person{}, err
	}
	id, err := s.repo.Store(ctx, person)
	if err != nil {
		return Person{}, err
	}
	person.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("person")
	}
	return person, nil
}

func (s ServiceImpl) Get(ctx context.Context, id int64) (Person, error) {
	return s.repo.FindByID(ctx, id)
}

func (s ServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]Person, int64, error) {
	persons, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return persons, total, nil
}

func (s ServiceImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Person, error) {
	return s.repo.Search(ctx, keyword, page)
}

func (s ServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s ServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s ServiceImpl) Update(ctx context.Context, person Person) (Person, error) {
	if person.ID == 0 {
		return Person{}, apperr.Invalidf("person ID is required")
	}
	if err := validate(person); err != nil {
		return Person{}, err
	}
	if err := s.checkReferences(ctx, person); err != nil {
		return Person{}, err
	}
	updated, err := s.repo.Update(ctx, person)
	if err != nil {
		return Person{}, err
	}
	if !updated {
		return Person{}, apperr.NotFoundf("Person not found with ID: %d", person.ID)
	}
	return person, nil
}

func (s ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Person not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("person")
	}
	return nil
}

func (s ServiceImpl) checkReferences(ctx context.Context, person Person) error {
	if person.BirthLocalityID != nil {
		exists, err := s.localityRepo.Exists(ctx, *person.BirthLocalityID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFoundf("Locality not found with ID: %d", *person.BirthLocalityID)
		}
	}
	if person.NationalityID != nil {
		exists, err := s.countryRepo.Exists(ctx, *person.NationalityID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFoundf("Country not found with ID: %d", *person.NationalityID)
		}
	}
	return nil
}

func validate(person Person) error {
	if person.FirstName == "" || person.LastName == "" {
		return apperr.Invalidf("first name and last name are required")
	}
	if len(person.FirstName) > 100 || len(person.LastName) > 100 {
		return apperr.Invalidf("names cannot exceed 100 characters")
	}
	if len(person.FirstNameAr) > 100 || len(person.LastNameAr) > 100 {
		return apperr.Invalidf("names cannot exceed 100 characters")
	}
	if person.Gender != GenderMale && person.Gender != GenderFemale {
		return apperr.Invalidf("gender must be %q or %q", GenderMale, GenderFemale)
	}
	if person.BirthLocalityID != nil && *person.BirthLocalityID <= 0 {
		return apperr.Invalidf("birth locality ID must be positive")
	}
	if person.NationalityID != nil && *person.NationalityID <= 0 {
		return apperr.Invalidf("nationality ID must be positive")
	}
	return nil
}
