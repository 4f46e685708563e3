package rubric

import (
	"context"
	"sort"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubRepo struct {
	nextID int64
	data   map[int64]Rubric
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int64]Rubric{}}
}

func (s *StubRepo) Store(ctx context.Context, rubric Rubric) (int64, error) {
	s.nextID++
	rubric.ID = s.nextID
	s.data[rubric.ID] = rubric
	return rubric.ID, nil
}

func (s *StubRepo) FindByID(ctx context.Context, id int64) (Rubric, error) {
	rubric, ok := s.data[id]
	if !ok {
		return Rubric{}, apperr.NotFoundf("Rubric not found with ID: %d", id)
	}
	return rubric, nil
}

func (s *StubRepo) all() []Rubric {
	rubrics := make([]Rubric, 0, len(s.data))
	for _, rubric := range s.data {
		rubrics = append(rubrics, rubric)
	}
	sort.Slice(rubrics, func(i, j int) bool { return rubrics[i].ID < rubrics[j].ID })
	return rubrics
}

func (s *StubRepo) FindAll(ctx context.Context, page rest.PageRequest) ([]Rubric, error) {
	all := s.all()
	start := page.Offset()
	if start >= len(all) {
		return nil, nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *StubRepo) FindByDomain(ctx context.Context, domainID int64, page rest.PageRequest) ([]Rubric, error) {
	var matching []Rubric
	for _, rubric := range s.all() {
		if rubric.DomainID == domainID {
			matching = append(matching, rubric)
		}
	}
	return matching, nil
}

func (s *StubRepo) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Rubric, error) {
	var matching []Rubric
	for _, rubric := range s.all() {
		text := strings.ToLower(rubric.Code + " " + rubric.DesignationAr + " " + rubric.DesignationEn + " " + rubric.DesignationFr)
		if strings.Contains(text, strings.ToLower(keyword)) {
			matching = append(matching, rubric)
		}
	}
	return matching, nil
}

func (s *StubRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.data)), nil
}

func (s *StubRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := s.data[id]
	return ok, nil
}

func (s *StubRepo) ExistsByDesignationFr(ctx context.Context, domainID int64, designationFr string, excludeID int64) (bool, error) {
	for _, rubric := range s.data {
		if rubric.DomainID == domainID && rubric.DesignationFr == designationFr && rubric.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Update(ctx context.Context, rubric Rubric) (bool, error) {
	if _, ok := s.data[rubric.ID]; !ok {
		return false, nil
	}
	s.data[rubric.ID] = rubric
	return true, nil
}

func (s *StubRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepo) Cleanup() {
	s.data = map[int64]Rubric{}
	s.nextID = 0
}
