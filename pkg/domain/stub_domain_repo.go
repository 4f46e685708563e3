package domain

import (
	"context"
	"sort"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubRepo struct {
	nextID int64
	data   map[int64]Domain
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int64]Domain{}}
}

func (s *StubRepo) Store(ctx context.Context, domain Domain) (int64, error) {
	s.nextID++
	domain.ID = s.nextID
	s.data[domain.ID] = domain
	return domain.ID, nil
}

func (s *StubRepo) FindByID(ctx context.Context, id int64) (Domain, error) {
	domain, ok := s.data[id]
	if !ok {
		return Domain{}, apperr.NotFoundf("Domain not found with ID: %d", id)
	}
	return domain, nil
}

func (s *StubRepo) FindAll(ctx context.Context, page rest.PageRequest) ([]Domain, error) {
	all, _ := s.FindAllUnpaged(ctx)
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

func (s *StubRepo) FindAllUnpaged(ctx context.Context) ([]Domain, error) {
	domains := make([]Domain, 0, len(s.data))
	for _, domain := range s.data {
		domains = append(domains, domain)
	}
	sort.Slice(domains, func(i, j int) bool { return domains[i].ID < domains[j].ID })
	return domains, nil
}

func (s *StubRepo) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Domain, error) {
	all, _ := s.FindAllUnpaged(ctx)
	var matching []Domain
	for _, domain := range all {
		text := strings.ToLower(domain.DesignationAr + " " + domain.DesignationEn + " " + domain.DesignationFr)
		if strings.Contains(text, strings.ToLower(keyword)) {
			matching = append(matching, domain)
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

func (s *StubRepo) ExistsByDesignationFr(ctx context.Context, designationFr string, excludeID int64) (bool, error) {
	for _, domain := range s.data {
		if domain.DesignationFr == designationFr && domain.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Update(ctx context.Context, domain Domain) (bool, error) {
	if _, ok := s.data[domain.ID]; !ok {
		return false, nil
	}
	s.data[domain.ID] = domain
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
	s.data = map[int64]Domain{}
	s.nextID = 0
}
