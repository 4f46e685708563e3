package planned_item

import (
	"context"
	"sort"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubRepo struct {
	items  map[int64]PlannedItem
	nextID int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{items: make(map[int64]PlannedItem), nextID: 1}
}

func (s *StubRepo) Cleanup() {
	s.items = make(map[int64]PlannedItem)
	s.nextID = 1
}

func (s *StubRepo) Store(_ context.Context, item PlannedItem) (int64, error) {
	item.ID = s.nextID
	s.items[item.ID] = item
	s.nextID++
	return item.ID, nil
}

func (s *StubRepo) FindByID(_ context.Context, id int64) (PlannedItem, error) {
	item, ok := s.items[id]
	if !ok {
		return PlannedItem{}, apperr.NotFoundf("planned item %d not found", id)
	}
	return item, nil
}

func (s *StubRepo) FindAll(_ context.Context, filter Filter, page rest.PageRequest) ([]PlannedItem, error) {
	all := s.filtered(filter)
	start := page.Offset()
	if start >= len(all) {
		return []PlannedItem{}, nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *StubRepo) FindAllUnpaged(_ context.Context) ([]PlannedItem, error) {
	return s.filtered(Filter{}), nil
}

func (s *StubRepo) Search(_ context.Context, keyword string, _ rest.PageRequest) ([]PlannedItem, error) {
	needle := strings.ToLower(keyword)
	matches := make([]PlannedItem, 0)
	for _, item := range s.filtered(Filter{}) {
		if strings.Contains(strings.ToLower(item.DesignationEn), needle) ||
			strings.Contains(strings.ToLower(item.DesignationFr), needle) ||
			strings.Contains(strings.ToLower(item.OperationCode), needle) {
			matches = append(matches, item)
		}
	}
	return matches, nil
}

func (s *StubRepo) Count(_ context.Context, filter Filter) (int64, error) {
	return int64(len(s.filtered(filter))), nil
}

func (s *StubRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.items[id]
	return ok, nil
}

func (s *StubRepo) Update(_ context.Context, item PlannedItem) (bool, error) {
	if _, ok := s.items[item.ID]; !ok {
		return false, nil
	}
	s.items[item.ID] = item
	return true, nil
}

func (s *StubRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}

func (s *StubRepo) filtered(filter Filter) []PlannedItem {
	all := make([]PlannedItem, 0, len(s.items))
	for _, item := range s.items {
		if filter.FiscalYear != 0 && item.FiscalYear != filter.FiscalYear {
			continue
		}
		if filter.RubricID != 0 && item.RubricID != filter.RubricID {
			continue
		}
		if filter.ItemStatusID != 0 && item.ItemStatusID != filter.ItemStatusID {
			continue
		}
		all = append(all, item)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
