package item_distribution

import (
	"context"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/pkg/planned_item"
	"github.com/milplan/milplan/pkg/structure"
)

type Service interface {
	Create(ctx context.Context, distribution ItemDistribution) (ItemDistribution, error)
	Get(ctx context.Context, id int64) (ItemDistribution, error)
	List(ctx context.Context, page rest.PageRequest) ([]ItemDistribution, int64, error)
	ListByPlannedItem(ctx context.Context, plannedItemID int64) ([]ItemDistribution, error)
	ListByStructure(ctx context.Context, structureID int64, page rest.PageRequest) ([]ItemDistribution, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, distribution ItemDistribution) (ItemDistribution, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo          Repo
	itemRepo      planned_item.Repo
	structureRepo structure.Repo
	metrics       *metrics.Metrics
}

func NewService(repo Repo, itemRepo planned_item.Repo, structureRepo structure.Repo, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{repo: repo, itemRepo: itemRepo, structureRepo: structureRepo, metrics: m}
}

func validate(distribution ItemDistribution) error {
	if distribution.Quantity <= 0 {
		return apperr.Invalidf("quantity must be positive")
	}
	if distribution.DistributedOn.IsZero() {
		return apperr.Invalidf("distribution date is required")
	}
	if distribution.PlannedItemID == 0 {
		return apperr.Invalidf("planned item id is required")
	}
	if distribution.StructureID == 0 {
		return apperr.Invalidf("structure id is required")
	}
	return nil
}

// checkAllocation enforces that the distributed quantities of a planned
// item never exceed its planned quantity. excludeID is the distribution
// being replaced on update, zero on create.
func (s *ServiceImpl) checkAllocation(ctx context.Context, distribution ItemDistribution, excludeID int64) error {
	item, err := s.itemRepo.FindByID(ctx, distribution.PlannedItemID)
	if err != nil {
		return err
	}
	distributed, err := s.repo.SumQuantityByPlannedItem(ctx, distribution.PlannedItemID, excludeID)
	if err != nil {
		return err
	}
	if distributed+distribution.Quantity > item.Quantity {
		return apperr.Conflictf(
			"distributing %d would exceed the planned quantity %d (%d already distributed)",
			distribution.Quantity, item.Quantity, distributed,
		)
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, distribution ItemDistribution) (ItemDistribution, error) {
	if err := validate(distribution); err != nil {
		return ItemDistribution{}, err
	}
	structureExists, err := s.structureRepo.Exists(ctx, distribution.StructureID)
	if err != nil {
		return ItemDistribution{}, err
	}
	if !structureExists {
		return ItemDistribution{}, apperr.NotFoundf("Structure not found with ID: %d", distribution.StructureID)
	}
	if err := s.checkAllocation(ctx, distribution, 0); err != nil {
		return ItemDistribution{}, err
	}

	id, err := s.repo.Store(ctx, distribution)
	if err != nil {
		return ItemDistribution{}, err
	}
	distribution.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("item_distribution")
	}
	return distribution, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int64) (ItemDistribution, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]ItemDistribution, int64, error) {
	distributions, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return distributions, total, nil
}

func (s *ServiceImpl) ListByPlannedItem(ctx context.Context, plannedItemID int64) ([]ItemDistribution, error) {
	itemExists, err := s.itemRepo.Exists(ctx, plannedItemID)
	if err != nil {
		return nil, err
	}
	if !itemExists {
		return nil, apperr.NotFoundf("Planned item not found with ID: %d", plannedItemID)
	}
	return s.repo.FindByPlannedItem(ctx, plannedItemID)
}

func (s *ServiceImpl) ListByStructure(ctx context.Context, structureID int64, page rest.PageRequest) ([]ItemDistribution, error) {
	structureExists, err := s.structureRepo.Exists(ctx, structureID)
	if err != nil {
		return nil, err
	}
	if !structureExists {
		return nil, apperr.NotFoundf("Structure not found with ID: %d", structureID)
	}
	return s.repo.FindByStructure(ctx, structureID, page)
}

func (s *ServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, distribution ItemDistribution) (ItemDistribution, error) {
	if err := validate(distribution); err != nil {
		return ItemDistribution{}, err
	}
	structureExists, err := s.structureRepo.Exists(ctx, distribution.StructureID)
	if err != nil {
		return ItemDistribution{}, err
	}
	if !structureExists {
		return ItemDistribution{}, apperr.NotFoundf("Structure not found with ID: %d", distribution.StructureID)
	}
	if err := s.checkAllocation(ctx, distribution, distribution.ID); err != nil {
		return ItemDistribution{}, err
	}

	updated, err := s.repo.Update(ctx, distribution)
	if err != nil {
		return ItemDistribution{}, err
	}
	if !updated {
		return ItemDistribution{}, apperr.NotFoundf("Item distribution not found with ID: %d", distribution.ID)
	}
	return distribution, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Item distribution not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("item_distribution")
	}
	return nil
}
