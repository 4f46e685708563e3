package structure

import (
	"context"

	"github.com/google/uuid"
	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
)

type Service interface {
	Create(ctx context.Context, structure Structure) (Structure, error)
	Get(ctx context.Context, id int64) (Structure, error)
	GetByUid(ctx context.Context, uid string) (Structure, error)
	List(ctx context.Context, page rest.PageRequest) ([]Structure, int64, error)
	ListRoots(ctx context.Context) ([]Structure, error)
	ListChildren(ctx context.Context, id int64) ([]Structure, error)
	ListAncestors(ctx context.Context, id int64) ([]Structure, error)
	ListDescendants(ctx context.Context, id int64) ([]Structure, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Structure, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, structure Structure) (Structure, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo     Repo
	typeRepo TypeRepo
	metrics  *metrics.Metrics
}

func NewService(repo Repo, typeRepo TypeRepo, m *metrics.Metrics) *ServiceImpl {
	return &ServiceImpl{repo: repo, typeRepo: typeRepo, metrics: m}
}

func validate(structure Structure) error {
	if structure.DesignationAr == "" || structure.DesignationEn == "" || structure.DesignationFr == "" {
		return apperr.Invalidf("designations in all three languages are required")
	}
	for _, designation := range []string{structure.DesignationAr, structure.DesignationEn, structure.DesignationFr} {
		if len(designation) > 255 {
			return apperr.Invalidf("designation exceeds 255 characters")
		}
	}
	if len(structure.Abbreviation) > 50 {
		return apperr.Invalidf("abbreviation exceeds 50 characters")
	}
	if structure.TypeID == 0 {
		return apperr.Invalidf("structure type id is required")
	}
	return nil
}

func (s *ServiceImpl) Create(ctx context.Context, structure Structure) (Structure, error) {
	if err := validate(structure); err != nil {
		return Structure{}, err
	}
	typeExists, err := s.typeRepo.Exists(ctx, structure.TypeID)
	if err != nil {
		return Structure{}, err
	}
	if !typeExists {
		return Structure{}, apperr.NotFoundf("Structure type not found with ID: %d", structure.TypeID)
	}
	if structure.ParentID != nil {
		parentExists, err := s.repo.Exists(ctx, *structure.ParentID)
		if err != nil {
			return Structure{}, err
		}
		if !parentExists {
			return Structure{}, apperr.NotFoundf("Parent structure not found with ID: %d", *structure.ParentID)
		}
	}

	structure.Uid = uuid.NewString()
	id, err := s.repo.Store(ctx, structure)
	if err != nil {
		return Structure{}, err
	}
	structure.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("structure")
	}
	return structure, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int64) (Structure, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ServiceImpl) GetByUid(ctx context.Context, uid string) (Structure, error) {
	return s.repo.FindByUid(ctx, uid)
}

func (s *ServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]Structure, int64, error) {
	structures, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return structures, total, nil
}

func (s *ServiceImpl) ListRoots(ctx context.Context) ([]Structure, error) {
	return s.repo.FindRoots(ctx)
}

func (s *ServiceImpl) ListChildren(ctx context.Context, id int64) ([]Structure, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FindChildren(ctx, id)
}

func (s *ServiceImpl) ListAncestors(ctx context.Context, id int64) ([]Structure, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FindAncestors(ctx, id)
}

func (s *ServiceImpl) ListDescendants(ctx context.Context, id int64) ([]Structure, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.FindDescendants(ctx, id)
}

func (s *ServiceImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Structure, error) {
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

func (s *ServiceImpl) Update(ctx context.Context, structure Structure) (Structure, error) {
	if err := validate(structure); err != nil {
		return Structure{}, err
	}
	if structure.ParentID != nil {
		if *structure.ParentID == structure.ID {
			return Structure{}, apperr.Invalidf("a structure cannot be its own parent")
		}
		// Re-parenting below its own subtree would detach the tree into a cycle.
		descendants, err := s.repo.FindDescendants(ctx, structure.ID)
		if err != nil {
			return Structure{}, err
		}
		for _, descendant := range descendants {
			if descendant.ID == *structure.ParentID {
				return Structure{}, apperr.Invalidf("a structure cannot be moved below one of its descendants")
			}
		}
	}

	updated, err := s.repo.Update(ctx, structure)
	if err != nil {
		return Structure{}, err
	}
	if !updated {
		return Structure{}, apperr.NotFoundf("Structure not found with ID: %d", structure.ID)
	}
	return s.repo.FindByID(ctx, structure.ID)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Structure not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("structure")
	}
	return nil
}

func (s *ServiceImpl) mustExist(ctx context.Context, id int64) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundf("Structure not found with ID: %d", id)
	}
	return nil
}
