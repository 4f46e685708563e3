package employee

import (
	"context"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/metrics"
	"github.com/milplan/milplan/internal/rest"
)

type JobService interface {
	Create(ctx context.Context, job Job) (Job, error)
	Get(ctx context.Context, id int64) (Job, error)
	List(ctx context.Context, page rest.PageRequest) ([]Job, int64, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Job, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, job Job) (Job, error)
	Delete(ctx context.Context, id int64) error
}

type JobServiceImpl struct {
	repo    JobRepo
	metrics *metrics.Metrics
}

func NewJobService(repo JobRepo, m *metrics.Metrics) *JobServiceImpl {
	return &JobServiceImpl{repo: repo, metrics: m}
}

func (s JobServiceImpl) Create(ctx context.Context, job Job) (Job, error) {
	if err := validateJob(job); err != nil {
		return Job{}, err
	}
	id, err := s.repo.Store(ctx, job)
	if err != nil {
		return Job{}, err
	}
	job.ID = id
	if s.metrics != nil {
		s.metrics.RecordCreated("job")
	}
	return job, nil
}

func (s JobServiceImpl) Get(ctx context.Context, id int64) (Job, error) {
	return s.repo.FindByID(ctx, id)
}

func (s JobServiceImpl) List(ctx context.Context, page rest.PageRequest) ([]Job, int64, error) {
	jobs, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func (s JobServiceImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Job, error) {
	return s.repo.Search(ctx, keyword, page)
}

func (s JobServiceImpl) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s JobServiceImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s JobServiceImpl) Update(ctx context.Context, job Job) (Job, error) {
	if job.ID == 0 {
		return Job{}, apperr.Invalidf("job ID is required")
	}
	if err := validateJob(job); err != nil {
		return Job{}, err
	}
	updated, err := s.repo.Update(ctx, job)
	if err != nil {
		return Job{}, err
	}
	if !updated {
		return Job{}, apperr.NotFoundf("Job not found with ID: %d", job.ID)
	}
	return job, nil
}

func (s JobServiceImpl) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NotFoundf("Job not found with ID: %d", id)
	}
	if s.metrics != nil {
		s.metrics.RecordDeleted("job")
	}
	return nil
}

func validateJob(job Job) error {
	if job.DesignationAr == "" || job.DesignationEn == "" || job.DesignationFr == "" {
		return apperr.Invalidf("all three designations are required")
	}
	if len(job.DesignationAr) > 255 || len(job.DesignationEn) > 255 || len(job.DesignationFr) > 255 {
		return apperr.Invalidf("designations cannot exceed 255 characters")
	}
	return nil
}
