package military

import (
	"context"
	"sort"
	"strings"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
)

type StubCategoryRepo struct {
	categories map[int64]Category
	nextID     int64
}

func NewStubCategoryRepo() *StubCategoryRepo {
	return &StubCategoryRepo{categories: make(map[int64]Category), nextID: 1}
}

func (s *StubCategoryRepo) Cleanup() {
	s.categories = make(map[int64]Category)
	s.nextID = 1
}

func (s *StubCategoryRepo) Store(_ context.Context, category Category) (int64, error) {
	category.ID = s.nextID
	s.categories[category.ID] = category
	s.nextID++
	return category.ID, nil
}

func (s *StubCategoryRepo) FindByID(_ context.Context, id int64) (Category, error) {
	category, ok := s.categories[id]
	if !ok {
		return Category{}, apperr.NotFoundf("military category %d not found", id)
	}
	return category, nil
}

func (s *StubCategoryRepo) FindAll(_ context.Context) ([]Category, error) {
	all := make([]Category, 0, len(s.categories))
	for _, category := range s.categories {
		all = append(all, category)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *StubCategoryRepo) Search(ctx context.Context, keyword string) ([]Category, error) {
	all, _ := s.FindAll(ctx)
	needle := strings.ToLower(keyword)
	matches := make([]Category, 0)
	for _, category := range all {
		if strings.Contains(strings.ToLower(category.DesignationAr), needle) ||
			strings.Contains(strings.ToLower(category.DesignationEn), needle) ||
			strings.Contains(strings.ToLower(category.DesignationFr), needle) {
			matches = append(matches, category)
		}
	}
	return matches, nil
}

func (s *StubCategoryRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.categories)), nil
}

func (s *StubCategoryRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.categories[id]
	return ok, nil
}

func (s *StubCategoryRepo) Update(_ context.Context, category Category) (bool, error) {
	if _, ok := s.categories[category.ID]; !ok {
		return false, nil
	}
	s.categories[category.ID] = category
	return true, nil
}

func (s *StubCategoryRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	return true, nil
}

type StubRankRepo struct {
	ranks  map[int64]Rank
	nextID int64
}

func NewStubRankRepo() *StubRankRepo {
	return &StubRankRepo{ranks: make(map[int64]Rank), nextID: 1}
}

func (s *StubRankRepo) Cleanup() {
	s.ranks = make(map[int64]Rank)
	s.nextID = 1
}

func (s *StubRankRepo) Store(_ context.Context, rank Rank) (int64, error) {
	rank.ID = s.nextID
	s.ranks[rank.ID] = rank
	s.nextID++
	return rank.ID, nil
}

func (s *StubRankRepo) FindByID(_ context.Context, id int64) (Rank, error) {
	rank, ok := s.ranks[id]
	if !ok {
		return Rank{}, apperr.NotFoundf("military rank %d not found", id)
	}
	return rank, nil
}

func (s *StubRankRepo) FindAll(_ context.Context, page rest.PageRequest) ([]Rank, error) {
	all := s.sorted()
	start := page.Offset()
	if start >= len(all) {
		return []Rank{}, nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *StubRankRepo) FindByCategory(_ context.Context, categoryID int64) ([]Rank, error) {
	matches := make([]Rank, 0)
	for _, rank := range s.sorted() {
		if rank.CategoryID == categoryID {
			matches = append(matches, rank)
		}
	}
	return matches, nil
}

func (s *StubRankRepo) Search(_ context.Context, keyword string, page rest.PageRequest) ([]Rank, error) {
	needle := strings.ToLower(keyword)
	matches := make([]Rank, 0)
	for _, rank := range s.sorted() {
		if strings.Contains(strings.ToLower(rank.DesignationAr), needle) ||
			strings.Contains(strings.ToLower(rank.DesignationEn), needle) ||
			strings.Contains(strings.ToLower(rank.DesignationFr), needle) {
			matches = append(matches, rank)
		}
	}
	start := page.Offset()
	if start >= len(matches) {
		return []Rank{}, nil
	}
	end := start + page.Size
	if end > len(matches) {
		end = len(matches)
	}
	return matches[start:end], nil
}

func (s *StubRankRepo) Count(_ context.Context) (int64, error) {
	return int64(len(s.ranks)), nil
}

func (s *StubRankRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := s.ranks[id]
	return ok, nil
}

func (s *StubRankRepo) Update(_ context.Context, rank Rank) (bool, error) {
	if _, ok := s.ranks[rank.ID]; !ok {
		return false, nil
	}
	s.ranks[rank.ID] = rank
	return true, nil
}

func (s *StubRankRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := s.ranks[id]; !ok {
		return false, nil
	}
	delete(s.ranks, id)
	return true, nil
}

func (s *StubRankRepo) sorted() []Rank {
	all := make([]Rank, 0, len(s.ranks))
	for _, rank := range s.ranks {
		all = append(all, rank)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
