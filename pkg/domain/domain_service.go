package domain

import (
	"context"
	"fmt"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
)

type Service interface {
	Create(ctx context.Context, domain Domain) (Domain, error)
	Get(ctx context.Context, id int64) (Domain, error)
	List(ctx context.Context, page rest.PageRequest) ([]Domain, int64, error)
	ListByCategory(ctx context.Context, category Category) ([]Domain, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Domain, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, domain Domain) (Domain, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo    Repo
	metrics *metrics.Metrics
}

func NewService(repo Repo, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{repo: repo, metrics: m}
}

func validate(domain Domain) error {
	if domain.DesignationAr == "" {
		return apperr.Invalidf("Arabic designation is required")
	}
	if domain.DesignationEn == "" {
		return apperr.Invalidf("English designation is required")
	}
	if domain.DesignationFr == "" {
		return apperr.Invalidf("French designation is required")
	}
	for _, designation := range []string{domain.DesignationAr, domain.DesignationEn, domain.DesignationFr} {
		if len(designation) > 255 {
			return apperr.Invalidf("designation exceeds 255 characters")
		}
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, domain Domain) (Domain, error) {
	if err := validate(domain); err != nil {
		return Domain{}, err
	}
	duplicate, err := s.repo.ExistsByDesignationFr(ctx, domain.DesignationFr, 0)
	if err != nil {
		return Domain{}, err
	}
	if duplicate {
		return Domain{}, apperr.Conflictf("French designation already exists: %s", domain.DesignationFr)
	}

	id, err := s.repo.Store(ctx, domain)
	if err != nil {
		return Domain{}, err
	}
	domain.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("domain")
	}
	return domain, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int64) (Domain, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]Domain, int64, error) {
	domains, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return domains, total, nil
}

// ListByCategory filters in memory: the category is derived from designation
// text, not stored.
func (s *ServiceImpl) ListByCategory(ctx context.Context, category Category) ([]Domain, error) {
	domains, err := s.repo.FindAllUnpaged(ctx)
	if err != nil {
		return nil, err
	}
	matching := make([]Domain, 0)
	for _, domain := range domains {
		if domain.Category() == category {
			matching = append(matching, domain)
		}
	}
	return matching, nil
}

func (s *ServiceImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Domain, error) {
	if keyword == "" {
		return nil, apperr.Invalidf("search keyword is required")
	}
	return s.repo.Search(ctx, keyword, page)
}

func (s *ServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, domain Domain) (Domain, error) {
	if err := validate(domain); err != nil {
		return Domain{}, err
	}
	duplicate, err := s.repo.ExistsByDesignationFr(ctx, domain.DesignationFr, domain.ID)
	if err != nil {
		return Domain{}, err
	}
	if duplicate {
		return Domain{}, apperr.Conflictf("French designation already exists: %s", domain.DesignationFr)
	}

	updated, err := s.repo.Update(ctx, domain)
	if err != nil {
		return Domain{}, err
	}
	if !updated {
		return Domain{}, apperr.NotFoundf("Domain not found with ID: %d", domain.ID)
	}
	return domain, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete domain: %w", err)
	}
	if !deleted {
		return apperr.NotFoundf("Domain not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("domain")
	}
	return nil
}
