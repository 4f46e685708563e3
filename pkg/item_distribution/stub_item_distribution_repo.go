package item_distribution

import (
	"context"
	"sort"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubRepo struct {
	distributions map[int64]ItemDistribution
	nextID        int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{distributions: make(map[int64]ItemDistribution), nextID: 1}
}

func (s *StubRepo) Cleanup() {
	s.distributions = make(map[int64]ItemDistribution)
	s.nextID = 1
}

func (s *StubRepo) Store(_ context.Context, distribution ItemDistribution) (int64, error) {
	distribution.ID = s.nextID
	s.distributions[distribution.ID] = distribution
	s.nextID++
	return distribution.ID, nil
}

func (s *StubRepo) FindByID(_ context.Context, id int64) (ItemDistribution, error) {
	distribution, ok := s.distributions[id]
	if !ok {
		return ItemDistribution{}, apperr.NotFoundf("item distribution %d not found", id)
	}
	return distribution, nil
}

func (s *StubRepo) FindAll(_ context.Context, page rest.PageRequest) ([]ItemDistribution, error) {
	all := s.sorted()
	start := page.Offset()
	if start >= len(all) {
		return []ItemDistribution{}, nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *StubRepo) FindByPlannedItem(_ context.Context, plannedItemID int64) ([]ItemDistribution, error) {
	matches := make([]ItemDistribution, 0)
	for _, distribution := range s.sorted() {
		if distribution.PlannedItemID == plannedItemID {
			matches = append(matches, distribution)
		}
	}
	return matches, nil
}

func (s *StubRepo) FindByStructure(_ context.Context, structureID int64, _ rest.PageRequest) ([]ItemDistribution, error) {
	matches := make([]ItemDistribution, 0)
	for _, distribution := range s.sorted() {
		if distribution.StructureID == structureID {
			matches = append(matches, distribution)
		}
	}
	return matches, nil
}

func (s *StubRepo) SumQuantityByPlannedItem(_ context.Context, plannedItemID int64, excludeID int64) (int, error) {
	sum := 0
	for _, distribution := range s.distributions {
		if distribution.PlannedItemID == plannedItemID && distribution.ID != excludeID {
			sum += distribution.Quantity
		}
	}
	return sum, nil
}

func (s *StubRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.distributions)), nil
}

func (s *StubRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.distributions[id]
	return ok, nil
}

func (s *StubRepo) Update(_ context.Context, distribution ItemDistribution) (bool, error) {
	if _, ok := s.distributions[distribution.ID]; !ok {
		return false, nil
	}
	s.distributions[distribution.ID] = distribution
	return true, nil
}

func (s *StubRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.distributions[id]; !ok {
		return false, nil
	}
	delete(s.distributions, id)
	return true, nil
}

func (s *StubRepo) sorted() []ItemDistribution {
	all := make([]ItemDistribution, 0, len(s.distributions))
	for _, distribution := range s.distributions {
		all = append(all, distribution)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
