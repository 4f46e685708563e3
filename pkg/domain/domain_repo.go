package domain

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
	// Store stores a new Domain and returns its generated id.
	Store(ctx context.Context, domain Domain) (int64, error)
	FindByID(ctx context.Context, id int64) (Domain, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]Domain, error)
	// FindAllUnpaged returns every domain, used by the in-memory category filter.
	FindAllUnpaged(ctx context.Context) ([]Domain, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Domain, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByDesignationFr(ctx context.Context, designationFr string, excludeID int64) (bool, error)
	Update(ctx context.Context, domain Domain) (bool, error)
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
	"designationAr": "designation_ar",
	"designationEn": "designation_en",
	"designationFr": "designation_fr",
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

func (r RepoImpl) Store(ctx context.Context, domain Domain) (int64, error) {
	query := `INSERT INTO domain (designation_ar, designation_en, designation_fr)
			  VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		domain.DesignationAr,
		domain.DesignationEn,
		domain.DesignationFr,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, apperr.Conflictf("French designation already exists: %s", domain.DesignationFr)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepoImpl) FindByID(ctx context.Context, id int64) (Domain, error) {
	query := `SELECT id, designation_ar, designation_en, designation_fr FROM domain WHERE id = $1`

	var domain Domain
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&domain.ID,
		&domain.DesignationAr,
		&domain.DesignationEn,
		&domain.DesignationFr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Domain{}, apperr.NotFoundf("Domain not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query domain: %w", err)
		log.Error(err)
		return Domain{}, err
	}
	return domain, nil
}

func (r RepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]Domain, error) {
	query := fmt.Sprintf(
		`SELECT id, designation_ar, designation_en, designation_fr FROM domain %s LIMIT $1 OFFSET $2`,
		orderClause(page),
	)
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query domains: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanDomains(rows)
}

func (r RepoImpl) FindAllUnpaged(ctx context.Context) ([]Domain, error) {
	query := `SELECT id, designation_ar, designation_en, designation_fr FROM domain ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query domains: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanDomains(rows)
}

func (r RepoImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Domain, error) {
	query := fmt.Sprintf(
		`SELECT id, designation_ar, designation_en, designation_fr FROM domain
		 WHERE designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1
		 %s LIMIT $2 OFFSET $3`,
		orderClause(page),
	)
	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%", page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not search domains: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanDomains(rows)
}

func (r RepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM domain`).Scan(&count); err != nil {
		err := fmt.Errorf("could not count domains: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM domain WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check domain existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) ExistsByDesignationFr(ctx context.Context, designationFr string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM domain WHERE designation_fr = $1 AND id <> $2)`,
		designationFr, excludeID,
	).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check designation existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Update(ctx context.Context, domain Domain) (bool, error) {
	query := `UPDATE domain SET designation_ar = $1, designation_en = $2, designation_fr = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query,
		domain.DesignationAr,
		domain.DesignationEn,
		domain.DesignationFr,
		domain.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflictf("French designation already exists: %s", domain.DesignationFr)
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
	result, err := r.db.ExecContext(ctx, `DELETE FROM domain WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("Domain %d is referenced by rubrics and cannot be deleted", id)
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

func scanDomains(rows *sql.Rows) ([]Domain, error) {
	var domains []Domain
	for rows.Next() {
		var domain Domain
		if err := rows.Scan(
			&domain.ID,
			&domain.DesignationAr,
			&domain.DesignationEn,
			&domain.DesignationFr,
		); err != nil {
			err := fmt.Errorf("could not scan domain: %w", err)
			log.Error(err)
			return nil, err
		}
		domains = append(domains, domain)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return domains, nil
}
