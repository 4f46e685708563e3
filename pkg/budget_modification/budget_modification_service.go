package budget_modification

import (
	"context"
	"time"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/pkg/planned_item"
)

type Service interface {
	Create(ctx context.Context, modification BudgetModification) (BudgetModification, error)
	Get(ctx context.Context, id int64) (BudgetModification, error)
	List(ctx context.Context, page rest.PageRequest) ([]BudgetModification, int64, error)
	ListByPlannedItem(ctx context.Context, plannedItemID int64) ([]BudgetModification, error)
	ListByApprovalDateRange(ctx context.Context, from, to time.Time, page rest.PageRequest) ([]BudgetModification, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, modification BudgetModification) (BudgetModification, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo     Repo
	itemRepo planned_item.Repo
	metrics  *metrics.Metrics
}

func NewService(repo Repo, itemRepo planned_item.Repo, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{repo: repo, itemRepo: itemRepo, metrics: m}
}

func validate(modification BudgetModification) error {
	if modification.ApprovalDate.IsZero() {
		return apperr.Invalidf("approval date is required")
	}
	if modification.DemandeDocument == "" {
		return apperr.Invalidf("demande document is required")
	}
	if len(modification.DemandeDocument) > 100 {
		return apperr.Invalidf("demande document exceeds 100 characters")
	}
	if !modification.Amount.IsPositive() {
		return apperr.Invalidf("amount must be positive")
	}
	if modification.Direction != DirectionIncrease && modification.Direction != DirectionDecrease {
		return apperr.Invalidf("direction must be increase or decrease")
	}
	if modification.PlannedItemID == 0 {
		return apperr.Invalidf("planned item id is required")
	}
	return nil
}

func (s *ServiceImpl) checkApproval(ctx context.Context, modification BudgetModification) error {
	exists, err := s.repo.ExistsByApprovalAndDocument(ctx, modification.ApprovalDate, modification.DemandeDocument, modification.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperr.Conflictf("a modification already exists for document %s approved on %s",
			modification.DemandeDocument, modification.ApprovalDate.Format("2006-01-02"))
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, modification BudgetModification) (BudgetModification, error) {
	if err := validate(modification); err != nil {
		return BudgetModification{}, err
	}
	itemExists, err := s.itemRepo.Exists(ctx, modification.PlannedItemID)
	if err != nil {
		return BudgetModification{}, err
	}
	if !itemExists {
		return BudgetModification{}, apperr.NotFoundf("Planned item not found with ID: %d", modification.PlannedItemID)
	}
	if err := s.checkApproval(ctx, modification); err != nil {
		return BudgetModification{}, err
	}

	id, err := s.repo.Store(ctx, modification)
	if err != nil {
		return BudgetModification{}, err
	}
	modification.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("budget_modification")
	}
	return modification, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int64) (BudgetModification, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]BudgetModification, int64, error) {
	modifications, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return modifications, total, nil
}

func (s *ServiceImpl) ListByPlannedItem(ctx context.Context, plannedItemID int64) ([]BudgetModification, error) {
	itemExists, err := s.itemRepo.Exists(ctx, plannedItemID)
	if err != nil {
		return nil, err
	}
	if !itemExists {
		return nil, apperr.NotFoundf("Planned item not found with ID: %d", plannedItemID)
	}
	return s.repo.FindByPlannedItem(ctx, plannedItemID)
}

func (s *ServiceImpl) ListByApprovalDateRange(ctx context.Context, from, to time.Time, page rest.PageRequest) ([]BudgetModification, error) {
	if to.Before(from) {
		return nil, apperr.Invalidf("range end is before range start")
	}
	return s.repo.FindByApprovalDateRange(ctx, from, to, page)
}

func (s *ServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *ServiceImpl) Update(ctx context.Context, modification BudgetModification) (BudgetModification, error) {
	if err := validate(modification); err != nil {
		return BudgetModification{}, err
	}
	itemExists, err := s.itemRepo.Exists(ctx, modification.PlannedItemID)
	if err != nil {
		return BudgetModification{}, err
	}
	if !itemExists {
		return BudgetModification{}, apperr.NotFoundf("Planned item not found with ID: %d", modification.PlannedItemID)
	}
	if err := s.checkApproval(ctx, modification); err != nil {
		return BudgetModification{}, err
	}

	updated, err := s.repo.Update(ctx, modification)
	if err != nil {
		return BudgetModification{}, err
	}
	if !updated {
		return BudgetModification{}, apperr.NotFoundf("Budget modification not found with ID: %d", modification.ID)
	}
	return modification, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Budget modification not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("budget_modification")
	}
	return nil
}
