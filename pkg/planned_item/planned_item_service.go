package planned_item

import (
	"context"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/pkg/item_status"
	"github.com/milplan/milplan/pkg/rubric"
)

type Service interface {
	Create(ctx context.Context, item PlannedItem) (PlannedItem, error)
	Get(ctx context.Context, id int64) (PlannedItem, error)
	List(ctx context.Context, filter Filter, page rest.PageRequest) ([]PlannedItem, int64, error)
	ListByPriority(ctx context.Context, priority Priority) ([]PlannedItem, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]PlannedItem, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, item PlannedItem) (PlannedItem, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo       Repo
	rubricRepo rubric.Repo
	statusRepo item_status.Repo
	metrics    *metrics.Metrics
}

func NewService(repo Repo, rubricRepo rubric.Repo, statusRepo item_status.Repo, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{repo: repo, rubricRepo: rubricRepo, statusRepo: statusRepo, metrics: m}
}

func validate(item PlannedItem) error {
	if item.DesignationAr == "" || item.DesignationEn == "" || item.DesignationFr == "" {
		return apperr.Invalidf("designations in all three languages are required")
	}
	for _, designation := range []string{item.DesignationAr, item.DesignationEn, item.DesignationFr} {
		if len(designation) > 255 {
			return apperr.Invalidf("designation exceeds 255 characters")
		}
	}
	if item.OperationCode == "" {
		return apperr.Invalidf("operation code is required")
	}
	if len(item.OperationCode) > 50 {
		return apperr.Invalidf("operation code exceeds 50 characters")
	}
	if item.FiscalYear < 1900 || item.FiscalYear > 2200 {
		return apperr.Invalidf("fiscal year %d is out of range", item.FiscalYear)
	}
	if item.Quantity <= 0 {
		return apperr.Invalidf("quantity must be positive")
	}
	if item.UnitPrice.IsNegative() {
		return apperr.Invalidf("unit price cannot be negative")
	}
	if item.RubricID == 0 {
		return apperr.Invalidf("rubric id is required")
	}
	if item.ItemStatusID == 0 {
		return apperr.Invalidf("item status id is required")
	}
	return nil
}

func (s *ServiceImpl) checkReferences(ctx context.Context, item PlannedItem) error {
	rubricExists, err := s.rubricRepo.Exists(ctx, item.RubricID)
	if err != nil {
		return err
	}
	if !rubricExists {
		return apperr.NotFoundf("Rubric not found with ID: %d", item.RubricID)
	}
	statusExists, err := s.statusRepo.Exists(ctx, item.ItemStatusID)
	if err != nil {
		return err
	}
	if !statusExists {
		return apperr.NotFoundf("Item status not found with ID: %d", item.ItemStatusID)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, item PlannedItem) (PlannedItem, error) {
	if err := validate(item); err != nil {
		return PlannedItem{}, err
	}
	if err := s.checkReferences(ctx, item); err != nil {
		return PlannedItem{}, err
	}

	id, err := s.repo.Store(ctx, item)
	if err != nil {
		return PlannedItem{}, err
	}
	item.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("planned_item")
	}
	return item, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int64) (PlannedItem, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, filter Filter, page rest.PageRequest) ([]PlannedItem, int64, error) {
	items, err := s.repo.FindAll(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *ServiceImpl) ListByPriority(ctx context.Context, priority Priority) ([]PlannedItem, error) {
	items, err := s.repo.FindAllUnpaged(ctx)
	if err != nil {
		return nil, err
	}
	matching := make([]PlannedItem, 0)
	for _, item := range items {
		if item.ItemPriority() == priority {
			matching = append(matching, item)
		}
	}
	return matching, nil
}

func (s *ServiceImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]PlannedItem, error) {
	if keyword == "" {
		return nil, apperr.Invalidf("search keyword is required")
	}
	return s.repo.Search(ctx, keyword, page)
}

func (s *ServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, Filter{})
}

func (s *ServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, item PlannedItem) (PlannedItem, error) {
	if err := validate(item); err != nil {
		return PlannedItem{}, err
	}
	if err := s.checkReferences(ctx, item); err != nil {
		return PlannedItem{}, err
	}

	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return PlannedItem{}, err
	}
	if !updated {
		return PlannedItem{}, apperr.NotFoundf("Planned item not found with ID: %d", item.ID)
	}
	return item, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Planned item not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("planned_item")
	}
	return nil
}
