package item_status

import (
	"context"
	"sort"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubRepo struct {
	nextID int64
	data   map[int64]ItemStatus
}

func NewStubRepo() *StubRepo {
	return &StubRepo{data: map[int64]ItemStatus{}}
}

func (s *StubRepo) Store(ctx context.Context, status ItemStatus) (int64, error) {
	s.nextID++
	status.ID = s.nextID
	s.data[status.ID] = status
	return status.ID, nil
}

func (s *StubRepo) FindByID(ctx context.Context, id int64) (ItemStatus, error) {
	status, ok := s.data[id]
	if !ok {
		return ItemStatus{}, apperr.NotFoundf("Item status not found with ID: %d", id)
	}
	return status, nil
}

func (s *StubRepo) FindAll(ctx context.Context, page rest.PageRequest) ([]ItemStatus, error) {
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

func (s *StubRepo) FindAllUnpaged(ctx context.Context) ([]ItemStatus, error) {
	statuses := make([]ItemStatus, 0, len(s.data))
	for _, status := range s.data {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses, nil
}

func (s *StubRepo) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]ItemStatus, error) {
	all, _ := s.FindAllUnpaged(ctx)
	keyword = strings.ToLower(keyword)
	matches := make([]ItemStatus, 0)
	for _, status := range all {
		if strings.Contains(strings.ToLower(status.DesignationAr), keyword) ||
			strings.Contains(strings.ToLower(status.DesignationEn), keyword) ||
			strings.Contains(strings.ToLower(status.DesignationFr), keyword) {
			matches = append(matches, status)
		}
	}
	return matches, nil
}

func (s *StubRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.data)), nil
}

func (s *StubRepo) Exists(ctx context.Context, id int64) (bool, error) {
	_, ok := s.data[id]
	return ok, nil
}

func (s *StubRepo) ExistsByDesignationFr(ctx context.Context, designationFr string, excludeID int64) (bool, error) {
	for _, status := range s.data {
		if status.DesignationFr == designationFr && status.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Update(ctx context.Context, status ItemStatus) (bool, error) {
	if _, ok := s.data[status.ID]; !ok {
		return false, nil
	}
	s.data[status.ID] = status
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
	s.data = map[int64]ItemStatus{}
	s.nextID = 0
}
