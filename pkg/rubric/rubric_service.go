package rubric

import (
	"context"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/pkg/domain"
)

type Service interface {
	Create(ctx context.Context, rubric Rubric) (Rubric, error)
	Get(ctx context.Context, id int64) (Rubric, error)
	List(ctx context.Context, page rest.PageRequest) ([]Rubric, int64, error)
	ListByDomain(ctx context.Context, domainID int64, page rest.PageRequest) ([]Rubric, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Rubric, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, rubric Rubric) (Rubric, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo       Repo
	domainRepo domain.Repo
	metrics    *metrics.Metrics
}

func NewService(repo Repo, domainRepo domain.Repo, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{repo: repo, domainRepo: domainRepo, metrics: m}
}

func validate(rubric Rubric) error {
	if rubric.Code == "" {
		return apperr.Invalidf("code is required")
	}
	if len(rubric.Code) > 50 {
		return apperr.Invalidf("code exceeds 50 characters")
	}
	if rubric.DesignationAr == "" || rubric.DesignationEn == "" || rubric.DesignationFr == "" {
		return apperr.Invalidf("designations in all three languages are required")
	}
	for _, designation := range []string{rubric.DesignationAr, rubric.DesignationEn, rubric.DesignationFr} {
		if len(designation) > 255 {
			return apperr.Invalidf("designation exceeds 255 characters")
		}
	}
	if rubric.DomainID == 0 {
		return apperr.Invalidf("domain id is required")
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, rubric Rubric) (Rubric, error) {
	if err := validate(rubric); err != nil {
		return Rubric{}, err
	}
	domainExists, err := s.domainRepo.Exists(ctx, rubric.DomainID)
	if err != nil {
		return Rubric{}, err
	}
	if !domainExists {
		return Rubric{}, apperr.NotFoundf("Domain not found with ID: %d", rubric.DomainID)
	}
	duplicate, err := s.repo.ExistsByDesignationFr(ctx, rubric.DomainID, rubric.DesignationFr, 0)
	if err != nil {
		return Rubric{}, err
	}
	if duplicate {
		return Rubric{}, apperr.Conflictf("French designation already exists in this domain: %s", rubric.DesignationFr)
	}

	id, err := s.repo.Store(ctx, rubric)
	if err != nil {
		return Rubric{}, err
	}
	rubric.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("rubric")
	}
	return rubric, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int64) (Rubric, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]Rubric, int64, error) {
	rubrics, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return rubrics, total, nil
}

func (s *ServiceImpl) ListByDomain(ctx context.Context, domainID int64, page rest.PageRequest) ([]Rubric, error) {
	domainExists, err := s.domainRepo.Exists(ctx, domainID)
	if err != nil {
		return nil, err
	}
	if !domainExists {
		return nil, apperr.NotFoundf("Domain not found with ID: %d", domainID)
	}
	return s.repo.FindByDomain(ctx, domainID, page)
}

func (s *ServiceImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Rubric, error) {
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

func (s *ServiceImpl) Update(ctx context.Context, rubric Rubric) (Rubric, error) {
	if err := validate(rubric); err != nil {
		return Rubric{}, err
	}
	duplicate, err := s.repo.ExistsByDesignationFr(ctx, rubric.DomainID, rubric.DesignationFr, rubric.ID)
	if err != nil {
		return Rubric{}, err
	}
	if duplicate {
		return Rubric{}, apperr.Conflictf("French designation already exists in this domain: %s", rubric.DesignationFr)
	}

	updated, err := s.repo.Update(ctx, rubric)
	if err != nil {
		return Rubric{}, err
	}
	if !updated {
		return Rubric{}, apperr.NotFoundf("Rubric not found with ID: %d", rubric.ID)
	}
	return rubric, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Rubric not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("rubric")
	}
	return nil
}
