package geo

import (
	"context"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
)

type CountryService interface {
	Create(ctx context.Context, country Country) (Country, error)
	Get(ctx context.Context, id int64) (Country, error)
	GetByCode(ctx context.Context, code string) (Country, error)
	List(ctx context.Context) ([]Country, error)
	Search(ctx context.Context, keyword string) ([]Country, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, country Country) (Country, error)
	Delete(ctx context.Context, id int64) error
}

type StateService interface {
	Create(ctx context.Context, state State) (State, error)
	Get(ctx context.Context, id int64) (State, error)
	List(ctx context.Context) ([]State, error)
	ListByCountry(ctx context.Context, countryID int64) ([]State, error)
	Search(ctx context.Context, keyword string) ([]State, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, state State) (State, error)
	Delete(ctx context.Context, id int64) error
}

type LocalityService interface {
	Create(ctx context.Context, locality Locality) (Locality, error)
	Get(ctx context.Context, id int64) (Locality, error)
	List(ctx context.Context) ([]Locality, error)
	ListByState(ctx context.Context, stateID int64) ([]Locality, error)
	Search(ctx context.Context, keyword string) ([]Locality, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, locality Locality) (Locality, error)
	Delete(ctx context.Context, id int64) error
}

func validateDesignations(ar, en, fr string) error {
	if ar == "" || en == "" || fr == "" {
		return apperr.Invalidf("designations in all three languages are required")
	}
	for _, designation := range []string{ar, en, fr} {
		if len(designation) > 255 {
			return apperr.Invalidf("designation exceeds 255 characters")
		}
	}
	return nil
}

type CountryServiceImpl struct {
	repo    CountryRepo
	metrics *metrics.Metrics
}

func NewCountryService(repo CountryRepo, m *metrics.Metrics) *CountryServiceImpl {
	return &CountryServiceImpl{repo: repo, metrics: m}
}

func validateCountry(country Country) error {
	if err := validateDesignations(country.DesignationAr, country.DesignationEn, country.DesignationFr); err != nil {
		return err
	}
	if len(country.Code) < 2 || len(country.Code) > 3 {
		return apperr.Invalidf("country code must be 2 or 3 letters")
	}
	for _, c := range country.Code {
		if c < 'A' || c > 'Z' {
			return apperr.Invalidf("country code must be 2 or 3 letters")
		}
	}
	return nil
}

func (s *CountryServiceImpl) Create(ctx context.Context, country Country) (Country, error) {
	country.Code = strings.ToUpper(country.Code)
	if err := validateCountry(country); err != nil {
		return Country{}, err
	}
	id, err := s.repo.Store(ctx, country)
	if err != nil {
		return Country{}, err
	}
	country.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("country")
	}
	return country, nil
}

func (s *CountryServiceImpl) Get(ctx context.Context, id int64) (Country, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CountryServiceImpl) GetByCode(ctx context.Context, code string) (Country, error) {
	return s.repo.FindByCode(ctx, strings.ToUpper(code))
}

func (s *CountryServiceImpl) List(ctx context.Context) ([]Country, error) {
	return s.repo.FindAll(ctx)
}

func (s *CountryServiceImpl) Search(ctx context.Context, keyword string) ([]Country, error) {
	return s.repo.Search(ctx, keyword)
}

func (s *CountryServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *CountryServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *CountryServiceImpl) Update(ctx context.Context, country Country) (Country, error) {
	country.Code = strings.ToUpper(country.Code)
	if err := validateCountry(country); err != nil {
		return Country{}, err
	}
	updated, err := s.repo.Update(ctx, country)
	if err != nil {
		return Country{}, err
	}
	if !updated {
		return Country{}, apperr.NotFoundf("Country not found with ID: %d", country.ID)
	}
	return country, nil
}

func (s *CountryServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Country not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("country")
	}
	return nil
}

type StateServiceImpl struct {
	repo        StateRepo
	countryRepo CountryRepo
	metrics     *metrics.Metrics
}

func NewStateService(repo StateRepo, countryRepo CountryRepo, m *metrics.Metrics) *StateServiceImpl {
	return &StateServiceImpl{repo: repo, countryRepo: countryRepo, metrics: m}
}

func (s *StateServiceImpl) checkCountry(ctx context.Context, countryID int64) error {
	if countryID == 0 {
		return apperr.Invalidf("country id is required")
	}
	exists, err := s.countryRepo.Exists(ctx, countryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundf("Country not found with ID: %d", countryID)
	}
	return nil
}

func (s *StateServiceImpl) Create(ctx context.Context, state State) (State, error) {
	if err := validateDesignations(state.DesignationAr, state.DesignationEn, state.DesignationFr); err != nil {
		return State{}, err
	}
	if err := s.checkCountry(ctx, state.CountryID); err != nil {
		return State{}, err
	}
	id, err := s.repo.Store(ctx, state)
	if err != nil {
		return State{}, err
	}
	state.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("state")
	}
	return state, nil
}

func (s *StateServiceImpl) Get(ctx context.Context, id int64) (State, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *StateServiceImpl) List(ctx context.Context) ([]State, error) {
	return s.repo.FindAll(ctx)
}

func (s *StateServiceImpl) ListByCountry(ctx context.Context, countryID int64) ([]State, error) {
	if err := s.checkCountry(ctx, countryID); err != nil {
		return nil, err
	}
	return s.repo.FindByCountry(ctx, countryID)
}

func (s *StateServiceImpl) Search(ctx context.Context, keyword string) ([]State, error) {
	return s.repo.Search(ctx, keyword)
}

func (s *StateServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *StateServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *StateServiceImpl) Update(ctx context.Context, state State) (State, error) {
	if err := validateDesignations(state.DesignationAr, state.DesignationEn, state.DesignationFr); err != nil {
		return State{}, err
	}
	if err := s.checkCountry(ctx, state.CountryID); err != nil {
		return State{}, err
	}
	updated, err := s.repo.Update(ctx, state)
	if err != nil {
		return State{}, err
	}
	if !updated {
		return State{}, apperr.NotFoundf("State not found with ID: %d", state.ID)
	}
	return state, nil
}

func (s *StateServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("State not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("state")
	}
	return nil
}

type LocalityServiceImpl struct {
	repo      LocalityRepo
	stateRepo StateRepo
	metrics   *metrics.Metrics
}

func NewLocalityService(repo LocalityRepo, stateRepo StateRepo, m *metrics.Metrics) *LocalityServiceImpl {
	return &LocalityServiceImpl{repo: repo, stateRepo: stateRepo, metrics: m}
}

func (s *LocalityServiceImpl) checkState(ctx context.Context, stateID int64) error {
	if stateID == 0 {
		return apperr.Invalidf("state id is required")
	}
	exists, err := s.stateRepo.Exists(ctx, stateID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundf("State not found with ID: %d", stateID)
	}
	return nil
}

func (s *LocalityServiceImpl) Create(ctx context.Context, locality Locality) (Locality, error) {
	if err := validateDesignations(locality.DesignationAr, locality.DesignationEn, locality.DesignationFr); err != nil {
		return Locality{}, err
	}
	if err := s.checkState(ctx, locality.StateID); err != nil {
		return Locality{}, err
	}
	id, err := s.repo.Store(ctx, locality)
	if err != nil {
		return Locality{}, err
	}
	locality.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("locality")
	}
	return locality, nil
}

func (s *LocalityServiceImpl) Get(ctx context.Context, id int64) (Locality, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *LocalityServiceImpl) List(ctx context.Context) ([]Locality, error) {
	return s.repo.FindAll(ctx)
}

func (s *LocalityServiceImpl) ListByState(ctx context.Context, stateID int64) ([]Locality, error) {
	if err := s.checkState(ctx, stateID); err != nil {
		return nil, err
	}
	return s.repo.FindByState(ctx, stateID)
}

func (s *LocalityServiceImpl) Search(ctx context.Context, keyword string) ([]Locality, error) {
	return s.repo.Search(ctx, keyword)
}

func (s *LocalityServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *LocalityServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *LocalityServiceImpl) Update(ctx context.Context, locality Locality) (Locality, error) {
	if err := validateDesignations(locality.DesignationAr, locality.DesignationEn, locality.DesignationFr); err != nil {
		return Locality{}, err
	}
	if err := s.checkState(ctx, locality.StateID); err != nil {
		return Locality{}, err
	}
	updated, err := s.repo.Update(ctx, locality)
	if err != nil {
		return Locality{}, err
	}
	if !updated {
		return Locality{}, apperr.NotFoundf("Locality not found with ID: %d", locality.ID)
	}
	return locality, nil
}

func (s *LocalityServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Locality not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("locality")
	}
	return nil
}
