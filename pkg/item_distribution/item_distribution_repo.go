package item_distribution

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
	Store(ctx context.Context, distribution ItemDistribution) (int64, error)
	FindByID(ctx context.Context, id int64) (ItemDistribution, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]ItemDistribution, error)
	FindByPlannedItem(ctx context.Context, plannedItemID int64) ([]ItemDistribution, error)
	FindByStructure(ctx context.Context, structureID int64, page rest.PageRequest) ([]ItemDistribution, error)
	// SumQuantityByPlannedItem totals the quantity already distributed for
	// a planned item, leaving out the given distribution when updating it.
	SumQuantityByPlannedItem(ctx context.Context, plannedItemID int64, excludeID int64) (int, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, distribution ItemDistribution) (bool, error)
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
	"quantity":      "quantity",
	"distributedOn": "distributed_on",
	"plannedItemId": "planned_item_id",
	"structureId":   "structure_id",
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

const selectColumns = "id, quantity, distributed_on, planned_item_id, structure_id"

func (r RepoImpl) Store(ctx context.Context, distribution ItemDistribution) (int64, error) {
	query := `INSERT INTO item_distribution (quantity, distributed_on, planned_item_id, structure_id)
			  VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		distribution.Quantity,
		distribution.DistributedOn,
		distribution.PlannedItemID,
		distribution.StructureID,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.NotFoundf("Planned item or structure not found for distribution")
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepoImpl) FindByID(ctx context.Context, id int64) (ItemDistribution, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM item_distribution WHERE id = $1`, id)
	distribution, err := scanDistribution(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ItemDistribution{}, apperr.NotFoundf("Item distribution not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query item distribution: %w", err)
		log.Error(err)
		return ItemDistribution{}, err
	}
	return distribution, nil
}

func (r RepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]ItemDistribution, error) {
	query := fmt.Sprintf(`SELECT %s FROM item_distribution %s LIMIT $1 OFFSET $2`, selectColumns, orderClause(page))
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query item distributions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanDistributions(rows)
}

func (r RepoImpl) FindByPlannedItem(ctx context.Context, plannedItemID int64) ([]ItemDistribution, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM item_distribution WHERE planned_item_id = $1 ORDER BY distributed_on, id`,
		plannedItemID,
	)
	if err != nil {
		err := fmt.Errorf("could not query item distributions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanDistributions(rows)
}

func (r RepoImpl) FindByStructure(ctx context.Context, structureID int64, page rest.PageRequest) ([]ItemDistribution, error) {
	query := fmt.Sprintf(`SELECT %s FROM item_distribution WHERE structure_id = $1 %s LIMIT $2 OFFSET $3`,
		selectColumns, orderClause(page))
	rows, err := r.db.QueryContext(ctx, query, structureID, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query item distributions: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanDistributions(rows)
}

func (r RepoImpl) SumQuantityByPlannedItem(ctx context.Context, plannedItemID int64, excludeID int64) (int, error) {
	var sum int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM item_distribution WHERE planned_item_id = $1 AND id <> $2`,
		plannedItemID, excludeID,
	).Scan(&sum)
	if err != nil {
		err := fmt.Errorf("could not sum distributed quantities: %w", err)
		log.Error(err)
		return 0, err
	}
	return sum, nil
}

func (r RepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM item_distribution`).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count item distributions: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM item_distribution WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check item distribution existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Update(ctx context.Context, distribution ItemDistribution) (bool, error) {
	query := `UPDATE item_distribution
			  SET quantity = $1, distributed_on = $2, planned_item_id = $3, structure_id = $4
			  WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		distribution.Quantity,
		distribution.DistributedOn,
		distribution.PlannedItemID,
		distribution.StructureID,
		distribution.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.NotFoundf("Planned item or structure not found for distribution")
		}
		err := fmt.Errorf("could not update item distribution: %w", err)
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
	result, err := r.db.ExecContext(ctx, `DELETE FROM item_distribution WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete item distribution: %w", err)
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

func scanDistribution(row rowScanner) (ItemDistribution, error) {
	var distribution ItemDistribution
	err := row.Scan(
		&distribution.ID,
		&distribution.Quantity,
		&distribution.DistributedOn,
		&distribution.PlannedItemID,
		&distribution.StructureID,
	)
	return distribution, err
}

func scanDistributions(rows *sql.Rows) ([]ItemDistribution, error) {
	distributions := make([]ItemDistribution, 0)
	for rows.Next() {
		distribution, err := scanDistribution(rows)
		if err != nil {
			err := fmt.Errorf("could not scan item distribution row: %w", err)
			log.Error(err)
			return nil, err
		}
		distributions = append(distributions, distribution)
	}
	return distributions, rows.Err()
}
