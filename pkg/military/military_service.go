package military

import (
	"context"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
)

type CategoryService interface {
	Create(ctx context.Context, category Category) (Category, error)
	Get(ctx context.Context, id int64) (Category, error)
	List(ctx context.Context) ([]Category, error)
	Search(ctx context.Context, keyword string) ([]Category, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, category Category) (Category, error)
	Delete(ctx context.Context, id int64) error
}

type RankService interface {
	Create(ctx context.Context, rank Rank) (Rank, error)
	Get(ctx context.Context, id int64) (Rank, error)
	List(ctx context.Context, page rest.PageRequest) ([]Rank, int64, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]Rank, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Rank, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, rank Rank) (Rank, error)
	Delete(ctx context.Context, id int64) error
}

type CategoryServiceImpl struct {
	repo    CategoryRepo
	metrics *metrics.Metrics
}

func NewCategoryService(repo CategoryRepo, m *metrics.Metrics) *CategoryServiceImpl {
	return &CategoryServiceImpl{repo: repo, metrics: m}
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

func (s *CategoryServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	if err := validateDesignations(category.DesignationAr, category.DesignationEn, category.DesignationFr); err != nil {
		return Category{}, err
	}
	id, err := s.repo.Store(ctx, category)
	if err != nil {
		return Category{}, err
	}
	category.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("military_category")
	}
	return category, nil
}

func (s *CategoryServiceImpl) Get(ctx context.Context, id int64) (Category, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryServiceImpl) List(ctx context.Context) ([]Category, error) {
	return s.repo.FindAll(ctx)
}

func (s *CategoryServiceImpl) Search(ctx context.Context, keyword string) ([]Category, error) {
	return s.repo.Search(ctx, keyword)
}

func (s *CategoryServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *CategoryServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *CategoryServiceImpl) Update(ctx context.Context, category Category) (Category, error) {
	if err := validateDesignations(category.DesignationAr, category.DesignationEn, category.DesignationFr); err != nil {
		return Category{}, err
	}
	updated, err := s.repo.Update(ctx, category)
	if err != nil {
		return Category{}, err
	}
	if !updated {
		return Category{}, apperr.NotFoundf("Military category not found with ID: %d", category.ID)
	}
	return category, nil
}

func (s *CategoryServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Military category not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("military_category")
	}
	return nil
}

type RankServiceImpl struct {
	repo         RankRepo
	categoryRepo CategoryRepo
	metrics      *metrics.Metrics
}

func NewRankService(repo RankRepo, categoryRepo CategoryRepo, m *metrics.Metrics) *RankServiceImpl {
	return &RankServiceImpl{repo: repo, categoryRepo: categoryRepo, metrics: m}
}

func (s *RankServiceImpl) checkCategory(ctx context.Context, categoryID int64) error {
	if categoryID == 0 {
		return apperr.Invalidf("category id is required")
	}
	exists, err := s.categoryRepo.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundf("Military category not found with ID: %d", categoryID)
	}
	return nil
}

func (s *RankServiceImpl) Create(ctx context.Context, rank Rank) (Rank, error) {
	if err := validateDesignations(rank.DesignationAr, rank.DesignationEn, rank.DesignationFr); err != nil {
		return Rank{}, err
	}
	if err := s.checkCategory(ctx, rank.CategoryID); err != nil {
		return Rank{}, err
	}
	id, err := s.repo.Store(ctx, rank)
	if err != nil {
		return Rank{}, err
	}
	rank.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("military_rank")
	}
	return rank, nil
}

func (s *RankServiceImpl) Get(ctx context.Context, id int64) (Rank, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *RankServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]Rank, int64, error) {
	ranks, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return ranks, total, nil
}

func (s *RankServiceImpl) ListByCategory(ctx context.Context, categoryID int64) ([]Rank, error) {
	if err := s.checkCategory(ctx, categoryID); err != nil {
		return nil, err
	}
	return s.repo.FindByCategory(ctx, categoryID)
}

func (s *RankServiceImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Rank, error) {
	return s.repo.Search(ctx, keyword, page)
}

func (s *RankServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *RankServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *RankServiceImpl) Update(ctx context.Context, rank Rank) (Rank, error) {
	if err := validateDesignations(rank.DesignationAr, rank.DesignationEn, rank.DesignationFr); err != nil {
		return Rank{}, err
	}
	if err := s.checkCategory(ctx, rank.CategoryID); err != nil {
		return Rank{}, err
	}
	updated, err := s.repo.Update(ctx, rank)
	if err != nil {
		return Rank{}, err
	}
	if !updated {
		return Rank{}, apperr.NotFoundf("Military rank not found with ID: %d", rank.ID)
	}
	return rank, nil
}

func (s *RankServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Military rank not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("military_rank")
	}
	return nil
}
