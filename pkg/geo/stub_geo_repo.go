package geo

import (
	"context"
	"sort"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
)

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

type StubCountryRepo struct {
	countries map[int64]Country
	nextID    int64
}

func NewStubCountryRepo() *StubCountryRepo {
	return &StubCountryRepo{countries: make(map[int64]Country), nextID: 1}
}

func (s *StubCountryRepo) Cleanup() {
	s.countries = make(map[int64]Country)
	s.nextID = 1
}

func (s *StubCountryRepo) Store(_ context.Context, country Country) (int64, error) {
	for _, existing := range s.countries {
		if existing.Code == country.Code {
			return 0, apperr.Conflictf("country code already exists: %s", country.Code)
		}
	}
	country.ID = s.nextID
	s.countries[country.ID] = country
	s.nextID++
	return country.ID, nil
}

func (s *StubCountryRepo) FindByID(_ context.Context, id int64) (Country, error) {
	country, ok := s.countries[id]
	if !ok {
		return Country{}, apperr.NotFoundf("country %d not found", id)
	}
	return country, nil
}

func (s *StubCountryRepo) FindByCode(_ context.Context, code string) (Country, error) {
	for _, country := range s.countries {
		if country.Code == code {
			return country, nil
		}
	}
	return Country{}, apperr.NotFoundf("country %s not found", code)
}

func (s *StubCountryRepo) FindAll(_ context.Context) ([]Country, error) {
	all := make([]Country, 0, len(s.countries))
	for _, country := range s.countries {
		all = append(all, country)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Code < all[j].Code })
	return all, nil
}

func (s *StubCountryRepo) Search(ctx context.Context, keyword string) ([]Country, error) {
	all, _ := s.FindAll(ctx)
	matches := make([]Country, 0)
	for _, country := range all {
		if containsFold(country.Code, keyword) ||
			containsFold(country.DesignationAr, keyword) ||
			containsFold(country.DesignationEn, keyword) ||
			containsFold(country.DesignationFr, keyword) {
			matches = append(matches, country)
		}
	}
	return matches, nil
}

func (s *StubCountryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.countries)), nil
}

func (s *StubCountryRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.countries[id]
	return ok, nil
}

func (s *StubCountryRepo) Update(_ context.Context, country Country) (bool, error) {
	if _, ok := s.countries[country.ID]; !ok {
		return false, nil
	}
	s.countries[country.ID] = country
	return true, nil
}

func (s *StubCountryRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.countries[id]; !ok {
		return false, nil
	}
	delete(s.countries, id)
	return true, nil
}

type StubStateRepo struct {
	states map[int64]State
	nextID int64
}

func NewStubStateRepo() *StubStateRepo {
	return &StubStateRepo{states: make(map[int64]State), nextID: 1}
}

func (s *StubStateRepo) Cleanup() {
	s.states = make(map[int64]State)
	s.nextID = 1
}

func (s *StubStateRepo) Store(_ context.Context, state State) (int64, error) {
	state.ID = s.nextID
	s.states[state.ID] = state
	s.nextID++
	return state.ID, nil
}

func (s *StubStateRepo) FindByID(_ context.Context, id int64) (State, error) {
	state, ok := s.states[id]
	if !ok {
		return State{}, apperr.NotFoundf("state %d not found", id)
	}
	return state, nil
}

func (s *StubStateRepo) FindAll(_ context.Context) ([]State, error) {
	return s.sorted(), nil
}

func (s *StubStateRepo) FindByCountry(_ context.Context, countryID int64) ([]State, error) {
	matches := make([]State, 0)
	for _, state := range s.sorted() {
		if state.CountryID == countryID {
			matches = append(matches, state)
		}
	}
	return matches, nil
}

func (s *StubStateRepo) Search(_ context.Context, keyword string) ([]State, error) {
	matches := make([]State, 0)
	for _, state := range s.sorted() {
		if containsFold(state.Code, keyword) ||
			containsFold(state.DesignationAr, keyword) ||
			containsFold(state.DesignationEn, keyword) ||
			containsFold(state.DesignationFr, keyword) {
			matches = append(matches, state)
		}
	}
	return matches, nil
}

func (s *StubStateRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.states)), nil
}

func (s *StubStateRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.states[id]
	return ok, nil
}

func (s *StubStateRepo) Update(_ context.Context, state State) (bool, error) {
	if _, ok := s.states[state.ID]; !ok {
		return false, nil
	}
	s.states[state.ID] = state
	return true, nil
}

func (s *StubStateRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.states[id]; !ok {
		return false, nil
	}
	delete(s.states, id)
	return true, nil
}

func (s *StubStateRepo) sorted() []State {
	all := make([]State, 0, len(s.states))
	for _, state := range s.states {
		all = append(all, state)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

type StubLocalityRepo struct {
	localities map[int64]Locality
	nextID     int64
}

func NewStubLocalityRepo() *StubLocalityRepo {
	return &StubLocalityRepo{localities: make(map[int64]Locality), nextID: 1}
}

func (s *StubLocalityRepo) Cleanup() {
	s.localities = make(map[int64]Locality)
	s.nextID = 1
}

func (s *StubLocalityRepo) Store(_ context.Context, locality Locality) (int64, error) {
	locality.ID = s.nextID
	s.localities[locality.ID] = locality
	s.nextID++
	return locality.ID, nil
}

func (s *StubLocalityRepo) FindByID(_ context.Context, id int64) (Locality, error) {
	locality, ok := s.localities[id]
	if !ok {
		return Locality{}, apperr.NotFoundf("locality %d not found", id)
	}
	return locality, nil
}

func (s *StubLocalityRepo) FindAll(_ context.Context) ([]Locality, error) {
	return s.sorted(), nil
}

func (s *StubLocalityRepo) FindByState(_ context.Context, stateID int64) ([]Locality, error) {
	matches := make([]Locality, 0)
	for _, locality := range s.sorted() {
		if locality.StateID == stateID {
			matches = append(matches, locality)
		}
	}
	return matches, nil
}

func (s *StubLocalityRepo) Search(_ context.Context, keyword string) ([]Locality, error) {
	matches := make([]Locality, 0)
	for _, locality := range s.sorted() {
		if containsFold(locality.PostalCode, keyword) ||
			containsFold(locality.DesignationAr, keyword) ||
			containsFold(locality.DesignationEn, keyword) ||
			containsFold(locality.DesignationFr, keyword) {
			matches = append(matches, locality)
		}
	}
	return matches, nil
}

func (s *StubLocalityRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.localities)), nil
}

func (s *StubLocalityRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.localities[id]
	return ok, nil
}

func (s *StubLocalityRepo) Update(_ context.Context, locality Locality) (bool, error) {
	if _, ok := s.localities[locality.ID]; !ok {
		return false, nil
	}
	s.localities[locality.ID] = locality
	return true, nil
}

func (s *StubLocalityRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.localities[id]; !ok {
		return false, nil
	}
	delete(s.localities, id)
	return true, nil
}

func (s *StubLocalityRepo) sorted() []Locality {
	all := make([]Locality, 0, len(s.localities))
	for _, locality := range s.localities {
		all = append(all, locality)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
