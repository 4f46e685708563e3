package structure

import (
	"context"

	"github.com/milplan/milplan/internal/apperr"
)

type TypeService interface {
	Create(ctx context.Context, structureType StructureType) (StructureType, error)
	Get(ctx context.Context, id int64) (StructureType, error)
	List(ctx context.Context) ([]StructureType, error)
	Search(ctx context.Context, keyword string) ([]StructureType, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, structureType StructureType) (StructureType, error)
	Delete(ctx context.Context, id int64) error
}

type TypeServiceImpl struct {
	repo TypeRepo
}

func NewTypeService(repo TypeRepo) *TypeServiceImpl {
	return &TypeServiceImpl{repo: repo}
}

func validateType(structureType StructureType) error {
	if structureType.DesignationAr == "" || structureType.DesignationEn == "" || structureType.DesignationFr == "" {
		return apperr.Invalidf("designations in all three languages are required")
	}
	return nil
}

func (s *TypeServiceImpl) Create(ctx context.Context, structureType StructureType) (StructureType, error) {
	if err := validateType(structureType); err != nil {
		return StructureType{}, err
	}
	id, err := s.repo.Store(ctx, structureType)
	if err != nil {
		return StructureType{}, err
	}
	structureType.ID = id
	return structureType, nil
}

func (s *TypeServiceImpl) Get(ctx context.Context, id int64) (StructureType, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TypeServiceImpl) List(ctx context.Context) ([]StructureType, error) {
	return s.repo.FindAll(ctx)
}

func (s *TypeServiceImpl) Search(ctx context.Context, keyword string) ([]StructureType, error) {
	return s.repo.Search(ctx, keyword)
}

func (s *TypeServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *TypeServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *TypeServiceImpl) Update(ctx context.Context, structureType StructureType) (StructureType, error) {
	if err := validateType(structureType); err != nil {
		return StructureType{}, err
	}
	updated, err := s.repo.Update(ctx, structureType)
	if err != nil {
		return StructureType{}, err
	}
	if !updated {
		return StructureType{}, apperr.NotFoundf("Structure type not found with ID: %d", structureType.ID)
	}
	return structureType, nil
}

func (s *TypeServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Structure type not found with ID: %d", id)
	}
	return nil
}
