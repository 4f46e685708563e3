package employee

import (
	"context"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/pkg/military"
	"github.com/milplan/milplan/pkg/person"
	"github.com/milplan/milplan/pkg/structure"
)

type Service interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	Get(ctx context.Context, id int64) (Employee, error)
	GetByRegistrationNumber(ctx context.Context, number string) (Employee, error)
	List(ctx context.Context, page rest.PageRequest) ([]Employee, int64, error)
	ListByStructure(ctx context.Context, structureID int64) ([]Employee, error)
	ListByJob(ctx context.Context, jobID int64) ([]Employee, error)
	Count(ctx context.Context) (int64, error)
	CountByStructure(ctx context.Context, structureID int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, employee Employee) (Employee, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	repo          Repo
	jobRepo       JobRepo
	personRepo    person.Repo
	structureRepo structure.Repo
	rankRepo      military.RankRepo
	metrics       *metrics.Metrics
}

func NewService(
	repo Repo,
	jobRepo JobRepo,
	personRepo person.Repo,
	structureRepo structure.Repo,
	rankRepo military.RankRepo,
	m *metrics.Metrics,
) *ServiceImpl {
	return &ServiceImpl{
		repo:          repo,
		jobRepo:       jobRepo,
		personRepo:    personRepo,
		structureRepo: structureRepo,
		rankRepo:      rankRepo,
		metrics:       m,
	}
}

func (s ServiceImpl) Create(ctx context.Context, employee Employee) (Employee, error) {
	if err := validate(employee); err != nil {
		return Employee{}, err
	}
	if err := s.checkReferences(ctx, employee); err != nil {
		return Employee{}, err
	}
	if err := s.checkPersonNotEmployed(ctx, employee.PersonID, 0); err != nil {
		return Employee{}, err
	}
	id, err := s.repo.Store(ctx, employee)
	if err != nil {
		return Employee{}, err
	}
	employee.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("employee")
	}
	return employee, nil
}

func (s ServiceImpl) Get(ctx context.Context, id int64) (Employee, error) {
	return s.repo.FindByID(ctx, id)
}

func (s ServiceImpl) GetByRegistrationNumber(ctx context.Context, number string) (Employee, error) {
	if number == "" {
		return Employee{}, apperr.Invalidf("registration number is required")
	}
	return s.repo.FindByRegistrationNumber(ctx, number)
}

func (s ServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]Employee, int64, error) {
	employees, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (s ServiceImpl) ListByStructure(ctx context.Context, structureID int64) ([]Employee, error) {
	exists, err := s.structureRepo.Exists(ctx, structureID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFoundf("Structure not found with ID: %d", structureID)
	}
	return s.repo.FindByStructure(ctx, structureID)
}

func (s ServiceImpl) ListByJob(ctx context.Context, jobID int64) ([]Employee, error) {
	exists, err := s.jobRepo.Exists(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFoundf("Job not found with ID: %d", jobID)
	}
	return s.repo.FindByJob(ctx, jobID)
}

func (s ServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s ServiceImpl) CountByStructure(ctx context.Context, structureID int64) (int64, error) {
	exists, err := s.structureRepo.Exists(ctx, structureID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, apperr.NotFoundf("Structure not found with ID: %d", structureID)
	}
	return s.repo.CountByStructure(ctx, structureID)
}

func (s ServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s ServiceImpl) Update(ctx context.Context, employee Employee) (Employee, error) {
	if employee.ID == 0 {
		return Employee{}, apperr.Invalidf("employee ID is required")
	}
	if err := validate(employee); err != nil {
		return Employee{}, err
	}
	if err := s.checkReferences(ctx, employee); err != nil {
		return Employee{}, err
	}
	if err := s.checkPersonNotEmployed(ctx, employee.PersonID, employee.ID); err != nil {
		return Employee{}, err
	}
	updated, err := s.repo.Update(ctx, employee)
	if err != nil {
		return Employee{}, err
	}
	if !updated {
		return Employee{}, apperr.NotFoundf("Employee not found with ID: %d", employee.ID)
	}
	return employee, nil
}

func (s ServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Employee not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("employee")
	}
	return nil
}

func (s ServiceImpl) checkReferences(ctx context.Context, employee Employee) error {
	exists, err := s.personRepo.Exists(ctx, employee.PersonID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundf("Person not found with ID: %d", employee.PersonID)
	}
	exists, err = s.jobRepo.Exists(ctx, employee.JobID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundf("Job not found with ID: %d", employee.JobID)
	}
	exists, err = s.structureRepo.Exists(ctx, employee.StructureID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFoundf("Structure not found with ID: %d", employee.StructureID)
	}
	if employee.RankID != nil {
		exists, err = s.rankRepo.Exists(ctx, *employee.RankID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFoundf("Rank not found with ID: %d", *employee.RankID)
		}
	}
	return nil
}

// A person can hold at most one employee record; the repo enforces the same
// rule with a unique constraint, this pre-check just yields a clearer error.
func (s ServiceImpl) checkPersonNotEmployed(ctx context.Context, personID int64, excludeID int64) error {
	employed, err := s.repo.ExistsByPerson(ctx, personID, excludeID)
	if err != nil {
		return err
	}
	if employed {
		return apperr.Conflictf("person %d already has an employee record", personID)
	}
	return nil
}

func validate(employee Employee) error {
	if employee.RegistrationNumber == "" {
		return apperr.Invalidf("registration number is required")
	}
	if len(employee.RegistrationNumber) > 50 {
		return apperr.Invalidf("registration number cannot exceed 50 characters")
	}
	if employee.PersonID <= 0 {
		return apperr.Invalidf("person ID is required")
	}
	if employee.JobID <= 0 {
		return apperr.Invalidf("job ID is required")
	}
	if employee.StructureID <= 0 {
		return apperr.Invalidf("structure ID is required")
	}
	if employee.RankID != nil && *employee.RankID <= 0 {
		return apperr.Invalidf("rank ID must be positive")
	}
	return nil
}
