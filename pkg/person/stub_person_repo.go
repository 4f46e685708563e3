package person

import (
	"context"
	"sort"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubRepo struct {
	persons map[int64]Person
	nextID  int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{persons: make(map[int64]Person), nextID: 1}
}

func (r *StubRepo) Cleanup() {
	r.persons = make(map[int64]Person)
	r.nextID = 1
}

func (r *StubRepo) Store(_ context.Context, person Person) (int64, error) {
	person.ID = r.nextID
	r.nextID++
	r.persons[person.ID] = person
	return person.ID, nil
}

func (r *StubRepo) FindByID(_ context.Context, id int64) (Person, error) {
	person, ok := r.persons[id]
	if !ok {
		return Person{}, apperr.NotFoundf("Person not found with ID: %d", id)
	}
	return person, nil
}

func (r *StubRepo) FindAll(_ context.Context, page rest.PageRequest) ([]Person, error) {
	return paginate(r.sorted(), page), nil
}

func (r *StubRepo) Search(_ context.Context, keyword string, page rest.PageRequest) ([]Person, error) {
	keyword = strings.ToLower(keyword)
	matches := make([]Person, 0)
	for _, person := range r.sorted() {
		if strings.Contains(strings.ToLower(person.FirstName), keyword) ||
			strings.Contains(strings.ToLower(person.LastName), keyword) ||
			strings.Contains(person.FirstNameAr, keyword) ||
			strings.Contains(person.LastNameAr, keyword) {
			matches = append(matches, person)
		}
	}
	return paginate(matches, page), nil
}

func (r *StubRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.persons)), nil
}

func (r *StubRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := r.persons[id]
	return ok, nil
}

func (r *StubRepo) Update(_ context.Context, person Person) (bool, error) {
	if _, ok := r.persons[person.ID]; !ok {
		return false, nil
	}
	r.persons[person.ID] = person
	return true, nil
}

func (r *StubRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.persons[id]; !ok {
		return false, nil
	}
	delete(r.persons, id)
	return true, nil
}

func (r *StubRepo) sorted() []Person {
	persons := make([]Person, 0, len(r.persons))
	for _, person := range r.persons {
		persons = append(persons, person)
	}
	sort.Slice(persons, func(i, j int) bool { return persons[i].ID < persons[j].ID })
	return persons
}

func paginate(persons []Person, page rest.PageRequest) []Person {
	start := page.Offset()
	if start >= len(persons) {
		return []Person{}
	}
	end := start + page.Size
	if end > len(persons) {
		end = len(persons)
	}
	return persons[start:end]
}
