package military

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

type CategoryRepo interface {
	Store(ctx context.Context, category Category) (int64, error)
	FindByID(ctx context.Context, id int64) (Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	Search(ctx context.Context, keyword string) ([]Category, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, category Category) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type RankRepo interface {
	Store(ctx context.Context, rank Rank) (int64, error)
	FindByID(ctx context.Context, id int64) (Rank, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]Rank, error)
	FindByCategory(ctx context.Context, categoryID int64) ([]Rank, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Rank, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, rank Rank) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CategoryRepoImpl struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepoImpl {
	return &CategoryRepoImpl{db: db}
}

func (r CategoryRepoImpl) Store(ctx context.Context, category Category) (int64, error) {
	query := `INSERT INTO military_category (designation_ar, designation_en, designation_fr)
			  VALUES ($1, $2, $3) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		category.DesignationAr,
		category.DesignationEn,
		category.DesignationFr,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r CategoryRepoImpl) FindByID(ctx context.Context, id int64) (Category, error) {
	var category Category
	err := r.db.QueryRowContext(ctx,
		`SELECT id, designation_ar, designation_en, designation_fr FROM military_category WHERE id = $1`, id,
	).Scan(&category.ID, &category.DesignationAr, &category.DesignationEn, &category.DesignationFr)
	if errors.Is(err, sql.ErrNoRows) {
		return Category{}, apperr.NotFoundf("Military category not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query military category: %w", err)
		log.Error(err)
		return Category{}, err
	}
	return category, nil
}

func (r CategoryRepoImpl) FindAll(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, designation_ar, designation_en, designation_fr FROM military_category ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query military categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.DesignationAr, &category.DesignationEn, &category.DesignationFr); err != nil {
			err := fmt.Errorf("could not scan military category row: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r CategoryRepoImpl) Search(ctx context.Context, keyword string) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, designation_ar, designation_en, designation_fr FROM military_category
		 WHERE designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1
		 ORDER BY id`, "%"+keyword+"%")
	if err != nil {
		err := fmt.Errorf("could not search military categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.DesignationAr, &category.DesignationEn, &category.DesignationFr); err != nil {
			err := fmt.Errorf("could not scan military category row: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r CategoryRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM military_category`).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count military categories: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r CategoryRepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM military_category WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check military category existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r CategoryRepoImpl) Update(ctx context.Context, category Category) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE military_category SET designation_ar = $1, designation_en = $2, designation_fr = $3 WHERE id = $4`,
		category.DesignationAr, category.DesignationEn, category.DesignationFr, category.ID,
	)
	if err != nil {
		err := fmt.Errorf("could not update military category: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r CategoryRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM military_category WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("military category %d is still referenced by ranks", id)
		}
		err := fmt.Errorf("could not delete military category: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type RankRepoImpl struct {
	db *sql.DB
}

func NewRankRepo(db *sql.DB) *RankRepoImpl {
	return &RankRepoImpl{db: db}
}

var rankSortColumns = map[string]string{
	"id":            "id",
	"designationAr": "designation_ar",
	"designationEn": "designation_en",
	"designationFr": "designation_fr",
	"categoryId":    "category_id",
}

func rankOrderClause(page rest.PageRequest) string {
	column, ok := rankSortColumns[page.SortBy]
	if !ok {
		column = "id"
	}
	direction := "ASC"
	if page.SortDir == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", column, direction)
}

const rankColumns = "id, designation_ar, designation_en, designation_fr, category_id"

func (r RankRepoImpl) Store(ctx context.Context, rank Rank) (int64, error) {
	query := `INSERT INTO military_rank (designation_ar, designation_en, designation_fr, category_id)
			  VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		rank.DesignationAr,
		rank.DesignationEn,
		rank.DesignationFr,
		rank.CategoryID,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.NotFoundf("Military category not found with ID: %d", rank.CategoryID)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RankRepoImpl) FindByID(ctx context.Context, id int64) (Rank, error) {
	var rank Rank
	err := r.db.QueryRowContext(ctx, `SELECT `+rankColumns+` FROM military_rank WHERE id = $1`, id).Scan(
		&rank.ID, &rank.DesignationAr, &rank.DesignationEn, &rank.DesignationFr, &rank.CategoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return Rank{}, apperr.NotFoundf("Military rank not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query military rank: %w", err)
		log.Error(err)
		return Rank{}, err
	}
	return rank, nil
}

func (r RankRepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]Rank, error) {
	query := fmt.Sprintf(`SELECT %s FROM military_rank %s LIMIT $1 OFFSET $2`, rankColumns, rankOrderClause(page))
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query military ranks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanRanks(rows)
}

func (r RankRepoImpl) FindByCategory(ctx context.Context, categoryID int64) ([]Rank, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rankColumns+` FROM military_rank WHERE category_id = $1 ORDER BY id`, categoryID)
	if err != nil {
		err := fmt.Errorf("could not query military ranks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanRanks(rows)
}

func (r RankRepoImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Rank, error) {
	query := fmt.Sprintf(`SELECT %s FROM military_rank
		WHERE designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1
		%s LIMIT $2 OFFSET $3`, rankColumns, rankOrderClause(page))

	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%", page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not search military ranks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanRanks(rows)
}

func (r RankRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM military_rank`).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count military ranks: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RankRepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM military_rank WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check military rank existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RankRepoImpl) Update(ctx context.Context, rank Rank) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE military_rank SET designation_ar = $1, designation_en = $2, designation_fr = $3, category_id = $4 WHERE id = $5`,
		rank.DesignationAr, rank.DesignationEn, rank.DesignationFr, rank.CategoryID, rank.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.NotFoundf("Military category not found with ID: %d", rank.CategoryID)
		}
		err := fmt.Errorf("could not update military rank: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r RankRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM military_rank WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("military rank %d is still referenced by employees", id)
		}
		err := fmt.Errorf("could not delete military rank: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanRanks(rows *sql.Rows) ([]Rank, error) {
	ranks := make([]Rank, 0)
	for rows.Next() {
		var rank Rank
		if err := rows.Scan(&rank.ID, &rank.DesignationAr, &rank.DesignationEn, &rank.DesignationFr, &rank.CategoryID); err != nil {
			err := fmt.Errorf("could not scan military rank row: %w", err)
			log.Error(err)
			return nil, err
		}
		ranks = append(ranks, rank)
	}
	return ranks, rows.Err()
}
