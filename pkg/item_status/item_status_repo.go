package item_status

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
	Store(ctx context.Context, status ItemStatus) (int64, error)
	FindByID(ctx context.Context, id int64) (ItemStatus, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]ItemStatus, error)
	FindAllUnpaged(ctx context.Context) ([]ItemStatus, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]ItemStatus, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByDesignationFr(ctx context.Context, designationFr string, excludeID int64) (bool, error)
	Update(ctx context.Context, status ItemStatus) (bool, error)
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

func (r RepoImpl) Store(ctx context.Context, status ItemStatus) (int64, error) {
	query := `INSERT INTO item_status (designation_ar, designation_en, designation_fr)
			  VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		status.DesignationAr,
		status.DesignationEn,
		status.DesignationFr,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, apperr.Conflictf("French designation already exists: %s", status.DesignationFr)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepoImpl) FindByID(ctx context.Context, id int64) (ItemStatus, error) {
	var status ItemStatus
	err := r.db.QueryRowContext(ctx,
		`SELECT id, designation_ar, designation_en, designation_fr FROM item_status WHERE id = $1`, id,
	).Scan(&status.ID, &status.DesignationAr, &status.DesignationEn, &status.DesignationFr)
	if errors.Is(err, sql.ErrNoRows) {
		return ItemStatus{}, apperr.NotFoundf("Item status not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query item status: %w", err)
		log.Error(err)
		return ItemStatus{}, err
	}
	return status, nil
}

func (r RepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]ItemStatus, error) {
	query := fmt.Sprintf(
		`SELECT id, designation_ar, designation_en, designation_fr FROM item_status %s LIMIT $1 OFFSET $2`,
		orderClause(page),
	)
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query item statuses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanStatuses(rows)
}

func (r RepoImpl) FindAllUnpaged(ctx context.Context) ([]ItemStatus, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, designation_ar, designation_en, designation_fr FROM item_status ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query item statuses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanStatuses(rows)
}

func (r RepoImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]ItemStatus, error) {
	query := fmt.Sprintf(`SELECT id, designation_ar, designation_en, designation_fr FROM item_status
		WHERE designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1
		%s LIMIT $2 OFFSET $3`, orderClause(page))

	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%", page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not search item statuses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanStatuses(rows)
}

func (r RepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM item_status`).Scan(&count); err != nil {
		err := fmt.Errorf("could not count item statuses: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM item_status WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check item status existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) ExistsByDesignationFr(ctx context.Context, designationFr string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM item_status WHERE designation_fr = $1 AND id <> $2)`,
		designationFr, excludeID,
	).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check designation existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Update(ctx context.Context, status ItemStatus) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE item_status SET designation_ar = $1, designation_en = $2, designation_fr = $3 WHERE id = $4`,
		status.DesignationAr, status.DesignationEn, status.DesignationFr, status.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflictf("French designation already exists: %s", status.DesignationFr)
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
	result, err := r.db.ExecContext(ctx, `DELETE FROM item_status WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("Item status %d is referenced by planned items and cannot be deleted", id)
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

func scanStatuses(rows *sql.Rows) ([]ItemStatus, error) {
	var statuses []ItemStatus
	for rows.Next() {
		var status ItemStatus
		if err := rows.Scan(&status.ID, &status.DesignationAr, &status.DesignationEn, &status.DesignationFr); err != nil {
			err := fmt.Errorf("could not scan item status: %w", err)
			log.Error(err)
			return nil, err
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return statuses, nil
}
