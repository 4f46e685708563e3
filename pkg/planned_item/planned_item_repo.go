package planned_item

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

// Filter narrows list queries. Zero values mean "no constraint".
type Filter struct {
	FiscalYear   int
	RubricID     int64
	ItemStatusID int64
}

type Repo interface {
	Store(ctx context.Context, item PlannedItem) (int64, error)
	FindByID(ctx context.Context, id int64) (PlannedItem, error)
	FindAll(ctx context.Context, filter Filter, page rest.PageRequest) ([]PlannedItem, error)
	FindAllUnpaged(ctx context.Context) ([]PlannedItem, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]PlannedItem, error)
	Count(ctx context.Context, filter Filter) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, item PlannedItem) (bool, error)
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
	"operationCode": "operation_code",
	"fiscalYear":    "fiscal_year",
	"quantity":      "quantity",
	"unitPrice":     "unit_price",
	"rubricId":      "rubric_id",
	"itemStatusId":  "item_status_id",
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

const selectColumns = "id, designation_ar, designation_en, designation_fr, operation_code, fiscal_year, quantity, unit_price, rubric_id, item_status_id"

func (f Filter) whereClause() (string, []any) {
	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if f.FiscalYear != 0 {
		args = append(args, f.FiscalYear)
		conditions = append(conditions, fmt.Sprintf("fiscal_year = $%d", len(args)))
	}
	if f.RubricID != 0 {
		args = append(args, f.RubricID)
		conditions = append(conditions, fmt.Sprintf("rubric_id = $%d", len(args)))
	}
	if f.ItemStatusID != 0 {
		args = append(args, f.ItemStatusID)
		conditions = append(conditions, fmt.Sprintf("item_status_id = $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	where := "WHERE " + conditions[0]
	for _, condition := range conditions[1:] {
		where += " AND " + condition
	}
	return where, args
}

func (r RepoImpl) Store(ctx context.Context, item PlannedItem) (int64, error) {
	query := `INSERT INTO planned_item (designation_ar, designation_en, designation_fr, operation_code, fiscal_year, quantity, unit_price, rubric_id, item_status_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		item.DesignationAr,
		item.DesignationEn,
		item.DesignationFr,
		item.OperationCode,
		item.FiscalYear,
		item.Quantity,
		item.UnitPrice,
		item.RubricID,
		item.ItemStatusID,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.NotFoundf("Rubric or item status not found for planned item")
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepoImpl) FindByID(ctx context.Context, id int64) (PlannedItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM planned_item WHERE id = $1`, id)
	item, err := scanPlannedItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return PlannedItem{}, apperr.NotFoundf("Planned item not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query planned item: %w", err)
		log.Error(err)
		return PlannedItem{}, err
	}
	return item, nil
}

func (r RepoImpl) FindAll(ctx context.Context, filter Filter, page rest.PageRequest) ([]PlannedItem, error) {
	where, args := filter.whereClause()
	query := fmt.Sprintf(`SELECT %s FROM planned_item %s %s LIMIT $%d OFFSET $%d`,
		selectColumns, where, orderClause(page), len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query planned items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanPlannedItems(rows)
}

func (r RepoImpl) FindAllUnpaged(ctx context.Context) ([]PlannedItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM planned_item ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query planned items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanPlannedItems(rows)
}

func (r RepoImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]PlannedItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM planned_item
		WHERE designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1 OR operation_code ILIKE $1
		%s LIMIT $2 OFFSET $3`, selectColumns, orderClause(page))

	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%", page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not search planned items: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanPlannedItems(rows)
}

func (r RepoImpl) Count(ctx context.Context, filter Filter) (int64, error) {
	where, args := filter.whereClause()
	var count int64
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM planned_item %s`, where), args...).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count planned items: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM planned_item WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check planned item existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Update(ctx context.Context, item PlannedItem) (bool, error) {
	query := `UPDATE planned_item
			  SET designation_ar = $1, designation_en = $2, designation_fr = $3, operation_code = $4,
				  fiscal_year = $5, quantity = $6, unit_price = $7, rubric_id = $8, item_status_id = $9
			  WHERE id = $10`

	result, err := r.db.ExecContext(ctx, query,
		item.DesignationAr,
		item.DesignationEn,
		item.DesignationFr,
		item.OperationCode,
		item.FiscalYear,
		item.Quantity,
		item.UnitPrice,
		item.RubricID,
		item.ItemStatusID,
		item.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.NotFoundf("Rubric or item status not found for planned item")
		}
		err := fmt.Errorf("could not update planned item: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r RepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM planned_item WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("planned item %d is still referenced by distributions or budget modifications", id)
		}
		err := fmt.Errorf("could not delete planned item: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlannedItem(row rowScanner) (PlannedItem, error) {
	var item PlannedItem
	err := row.Scan(
		&item.ID,
		&item.DesignationAr,
		&item.DesignationEn,
		&item.DesignationFr,
		&item.OperationCode,
		&item.FiscalYear,
		&item.Quantity,
		&item.UnitPrice,
		&item.RubricID,
		&item.ItemStatusID,
	)
	return item, err
}

func scanPlannedItems(rows *sql.Rows) ([]PlannedItem, error) {
	items := make([]PlannedItem, 0)
	for rows.Next() {
		item, err := scanPlannedItem(rows)
		if err != nil {
			err := fmt.Errorf("could not scan planned item row: %w", err)
			log.Error(err)
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
