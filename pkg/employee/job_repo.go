package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/database"
	"github.com/milplan/milplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

type JobRepo interface {
	Store(ctx context.Context, job Job) (int64, error)
	FindByID(ctx context.Context, id int64) (Job, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]Job, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Job, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, job Job) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type JobRepoImpl struct {
	db *sql.DB
}

func NewJobRepo(db *sql.DB) *JobRepoImpl {
	return &JobRepoImpl{db: db}
}

var jobSortColumns = map[string]string{
	"id":            "id",
	"designationAr": "designation_ar",
	"designationEn": "designation_en",
	"designationFr": "designation_fr",
}

func jobOrderClause(page rest.PageRequest) string {
	column, ok := jobSortColumns[page.SortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if page.SortDir == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

func (r JobRepoImpl) Store(ctx context.Context, job Job) (int64, error) {
	query := `INSERT INTO job (designation_ar, designation_en, designation_fr)
			  VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, job.DesignationAr, job.DesignationEn, job.DesignationFr).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r JobRepoImpl) FindByID(ctx context.Context, id int64) (Job, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, designation_ar, designation_en, designation_fr FROM job WHERE id = $1`, id)
	var job Job
	err := row.Scan(&job.ID, &job.DesignationAr, &job.DesignationEn, &job.DesignationFr)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, apperr.NotFoundf("Job not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query job: %w", err)
		log.Error(err)
		return Job{}, err
	}
	return job, nil
}

func (r JobRepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]Job, error) {
	query := fmt.Sprintf(`SELECT id, designation_ar, designation_en, designation_fr
		FROM job %s LIMIT $1 OFFSET $2`, jobOrderClause(page))
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query jobs: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.DesignationAr, &job.DesignationEn, &job.DesignationFr); err != nil {
			err := fmt.Errorf("could not scan job row: %w", err)
			log.Error(err)
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r JobRepoImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Job, error) {
	query := fmt.Sprintf(`SELECT id, designation_ar, designation_en, designation_fr FROM job
		WHERE designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1
		%s LIMIT $2 OFFSET $3`, jobOrderClause(page))
	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%", page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not search jobs: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	jobs := make([]Job, 0)
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.DesignationAr, &job.DesignationEn, &job.DesignationFr); err != nil {
			err := fmt.Errorf("could not scan job row: %w", err)
			log.Error(err)
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (r JobRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM job`).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count jobs: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r JobRepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM job WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check job existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r JobRepoImpl) Update(ctx context.Context, job Job) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE job SET designation_ar = $1, designation_en = $2, designation_fr = $3 WHERE id = $4`,
		job.DesignationAr, job.DesignationEn, job.DesignationFr, job.ID)
	if err != nil {
		err := fmt.Errorf("could not update job: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r JobRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("job %d is still assigned to employees", id)
		}
		err := fmt.Errorf("could not delete job: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
