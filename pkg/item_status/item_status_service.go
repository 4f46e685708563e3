package item_status

import (
	"context"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
)

type Service interface {
	Create(ctx context.Context, status ItemStatus) (ItemStatus, error)
	Get(ctx context.Context, id int64) (ItemStatus, error)
	List(ctx context.Context, page rest.PageRequest) ([]ItemStatus, int64, error)
	ListByCategory(ctx context.Context, category StatusCategory) ([]ItemStatus, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]ItemStatus, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, status ItemStatus) (ItemStatus, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo    Repo
	metrics *metrics.Metrics
}

func NewService(repo Repo, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{repo: repo, metrics: m}
}

func validate(status ItemStatus) error {
	if status.DesignationAr == "" || status.DesignationEn == "" || status.DesignationFr == "" {
		return apperr.Invalidf("designations in all three languages are required")
	}
	for _, designation := range []string{status.DesignationAr, status.DesignationEn, status.DesignationFr} {
		if len(designation) > 255 {
			return apperr.Invalidf("designation exceeds 255 characters")
		}
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, status ItemStatus) (ItemStatus, error) {
	if err := validate(status); err != nil {
		return ItemStatus{}, err
	}
	duplicate, err := s.repo.ExistsByDesignationFr(ctx, status.DesignationFr, 0)
	if err != nil {
		return ItemStatus{}, err
	}
	if duplicate {
		return ItemStatus{}, apperr.Conflictf("French designation already exists: %s", status.DesignationFr)
	}

	id, err := s.repo.Store(ctx, status)
	if err != nil {
		return ItemStatus{}, err
	}
	status.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("item_status")
	}
	return status, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int64) (ItemStatus, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]ItemStatus, int64, error) {
	statuses, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return statuses, total, nil
}

func (s *ServiceImpl) ListByCategory(ctx context.Context, category StatusCategory) ([]ItemStatus, error) {
	statuses, err := s.repo.FindAllUnpaged(ctx)
	if err != nil {
		return nil, err
	}
	matching := make([]ItemStatus, 0)
	for _, status := range statuses {
		if status.Category() == category {
			matching = append(matching, status)
		}
	}
	return matching, nil
}

func (s *ServiceImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]ItemStatus, error) {
	return s.repo.Search(ctx, keyword, page)
}

func (s *ServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, status ItemStatus) (ItemStatus, error) {
	if err := validate(status); err != nil {
		return ItemStatus{}, err
	}
	duplicate, err := s.repo.ExistsByDesignationFr(ctx, status.DesignationFr, status.ID)
	if err != nil {
		return ItemStatus{}, err
	}
	if duplicate {
		return ItemStatus{}, apperr.Conflictf("French designation already exists: %s", status.DesignationFr)
	}

	updated, err := s.repo.Update(ctx, status)
	if err != nil {
		return ItemStatus{}, err
	}
	if !updated {
		return ItemStatus{}, apperr.NotFoundf("Item status not found with ID: %d", status.ID)
	}
	return status, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Item status not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("item_status")
	}
	return nil
}
