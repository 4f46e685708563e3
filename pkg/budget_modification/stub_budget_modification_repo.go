package budget_modification

import (
	"context"
	"sort"
	"time"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubRepo struct {
	modifications map[int64]BudgetModification
	nextID        int64
}

func NewStubRepo() *StubRepo {
	return &StubRepo{modifications: make(map[int64]BudgetModification), nextID: 1}
}

func (s *StubRepo) Cleanup() {
	s.modifications = make(map[int64]BudgetModification)
	s.nextID = 1
}

func (s *StubRepo) Store(_ context.Context, modification BudgetModification) (int64, error) {
	for _, existing := range s.modifications {
		if existing.ApprovalDate.Equal(modification.ApprovalDate) && existing.DemandeDocument == modification.DemandeDocument {
			return 0, apperr.Conflictf("a modification already exists for document %s", modification.DemandeDocument)
		}
	}
	modification.ID = s.nextID
	s.modifications[modification.ID] = modification
	s.nextID++
	return modification.ID, nil
}

func (s *StubRepo) FindByID(_ context.Context, id int64) (BudgetModification, error) {
	modification, ok := s.modifications[id]
	if !ok {
		return BudgetModification{}, apperr.NotFoundf("budget modification %d not found", id)
	}
	return modification, nil
}

func (s *StubRepo) FindAll(_ context.Context, page rest.PageRequest) ([]BudgetModification, error) {
	all := s.sorted()
	start := page.Offset()
	if start >= len(all) {
		return []BudgetModification{}, nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *StubRepo) FindByPlannedItem(_ context.Context, plannedItemID int64) ([]BudgetModification, error) {
	matches := make([]BudgetModification, 0)
	for _, modification := range s.sorted() {
		if modification.PlannedItemID == plannedItemID {
			matches = append(matches, modification)
		}
	}
	return matches, nil
}

func (s *StubRepo) FindByApprovalDateRange(_ context.Context, from, to time.Time, _ rest.PageRequest) ([]BudgetModification, error) {
	matches := make([]BudgetModification, 0)
	for _, modification := range s.sorted() {
		if !modification.ApprovalDate.Before(from) && !modification.ApprovalDate.After(to) {
			matches = append(matches, modification)
		}
	}
	return matches, nil
}

func (s *StubRepo) ExistsByApprovalAndDocument(_ context.Context, approvalDate time.Time, demandeDocument string, excludeID int64) (bool, error) {
	for _, modification := range s.modifications {
		if modification.ID != excludeID &&
			modification.ApprovalDate.Equal(approvalDate) &&
			modification.DemandeDocument == demandeDocument {
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.modifications)), nil
}

func (s *StubRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.modifications[id]
	return ok, nil
}

func (s *StubRepo) Update(_ context.Context, modification BudgetModification) (bool, error) {
	if _, ok := s.modifications[modification.ID]; !ok {
		return false, nil
	}
	s.modifications[modification.ID] = modification
	return true, nil
}

func (s *StubRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.modifications[id]; !ok {
		return false, nil
	}
	delete(s.modifications, id)
	return true, nil
}

func (s *StubRepo) sorted() []BudgetModification {
	all := make([]BudgetModification, 0, len(s.modifications))
	for _, modification := range s.modifications {
		all = append(all, modification)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
