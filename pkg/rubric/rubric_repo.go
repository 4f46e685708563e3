package rubric

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

type Repo interface {
	Store(ctx context.Context, rubric Rubric) (int64, error)
	FindByID(ctx context.Context, id int64) (Rubric, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]Rubric, error)
	FindByDomain(ctx context.Context, domainID int64, page rest.PageRequest) ([]Rubric, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Rubric, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByDesignationFr(ctx context.Context, domainID int64, designationFr string, excludeID int64) (bool, error)
	Update(ctx context.Context, rubric Rubric) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

var sortColumns = map[string]string{
	"id":            "id",
	"code":          "code",
	"designationAr": "designation_ar",
	"designationEn": "designation_en",
	"designationFr": "designation_fr",
	"domainId":      "domain_id",
}

func orderClause(page rest.PageRequest) string {
	column, ok := sortColumns[page.SortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if page.SortDir == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

const selectColumns = "id, code, designation_ar, designation_en, designation_fr, domain_id"

func (r RepoImpl) Store(ctx context.Context, rubric Rubric) (int64, error) {
	query := `INSERT INTO rubric (code, designation_ar, designation_en, designation_fr, domain_id)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rubric.Code,
		rubric.DesignationAr,
		rubric.DesignationEn,
		rubric.DesignationFr,
		rubric.DomainID,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, apperr.Conflictf("French designation already exists in this domain: %s", rubric.DesignationFr)
		}
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.NotFoundf("Domain not found with ID: %d", rubric.DomainID)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepoImpl) FindByID(ctx context.Context, id int64) (Rubric, error) {
	var rubric Rubric
	err := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM rubric WHERE id = $1`, id).Scan(
		&rubric.ID,
		&rubric.Code,
		&rubric.DesignationAr,
		&rubric.DesignationEn,
		&rubric.DesignationFr,
		&rubric.DomainID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Rubric{}, apperr.NotFoundf("Rubric not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query rubric: %w", err)
		log.Error(err)
		return Rubric{}, err
	}
	return rubric, nil
}

func (r RepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]Rubric, error) {
	query := fmt.Sprintf(`SELECT %s FROM rubric %s LIMIT $1 OFFSET $2`, selectColumns, orderClause(page))
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query rubrics: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanRubrics(rows)
}

func (r RepoImpl) FindByDomain(ctx context.Context, domainID int64, page rest.PageRequest) ([]Rubric, error) {
	query := fmt.Sprintf(`SELECT %s FROM rubric WHERE domain_id = $1 %s LIMIT $2 OFFSET $3`, selectColumns, orderClause(page))
	rows, err := r.db.QueryContext(ctx, query, domainID, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query rubrics by domain: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanRubrics(rows)
}

func (r RepoImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Rubric, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM rubric
		 WHERE designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1 OR code ILIKE $1
		 %s LIMIT $2 OFFSET $3`,
		selectColumns, orderClause(page),
	)
	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%", page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not search rubrics: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanRubrics(rows)
}

func (r RepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rubric`).Scan(&count); err != nil {
		err := fmt.Errorf("could not count rubrics: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM rubric WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check rubric existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) ExistsByDesignationFr(ctx context.Context, domainID int64, designationFr string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM rubric WHERE domain_id = $1 AND designation_fr = $2 AND id <> $3)`,
		domainID, designationFr, excludeID,
	).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check designation existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Update(ctx context.Context, rubric Rubric) (bool, error) {
	query := `UPDATE rubric SET code = $1, designation_ar = $2, designation_en = $3, designation_fr = $4, domain_id = $5 WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		rubric.Code,
		rubric.DesignationAr,
		rubric.DesignationEn,
		rubric.DesignationFr,
		rubric.DomainID,
		rubric.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflictf("French designation already exists in this domain: %s", rubric.DesignationFr)
		}
		if database.IsForeignKeyViolation(err) {
			return false, apperr.NotFoundf("Domain not found with ID: %d", rubric.DomainID)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r RepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rubric WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("Rubric %d is referenced by planned items and cannot be deleted", id)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func scanRubrics(rows *sql.Rows) ([]Rubric, error) {
	var rubrics []Rubric
	for rows.Next() {
		var rubric Rubric
		if err := rows.Scan(
			&rubric.ID,
			&rubric.Code,
			&rubric.DesignationAr,
			&rubric.DesignationEn,
			&rubric.DesignationFr,
			&rubric.DomainID,
		); err != nil {
			err := fmt.Errorf("could not scan rubric: %w", err)
			log.Error(err)
			return nil, err
		}
		rubrics = append(rubrics, rubric)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return rubrics, nil
}
