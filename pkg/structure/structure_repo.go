package structure

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
	Store(ctx context.Context, structure Structure) (int64, error)
	FindByID(ctx context.Context, id int64) (Structure, error)
	FindByUid(ctx context.Context, uid string) (Structure, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]Structure, error)
	FindRoots(ctx context.Context) ([]Structure, error)
	FindChildren(ctx context.Context, id int64) ([]Structure, error)
	// FindAncestors returns the chain of parents from the immediate parent
	// up to the root, in that order.
	FindAncestors(ctx context.Context, id int64) ([]Structure, error)
	// FindDescendants returns the whole subtree below the structure,
	// breadth-first.
	FindDescendants(ctx context.Context, id int64) ([]Structure, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Structure, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, structure Structure) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

const selectColumns = "id, uid, designation_ar, designation_en, designation_fr, abbreviation, structure_type_id, parent_id"

var sortColumns = map[string]string{
	"id":            "id",
	"designationAr": "designation_ar",
	"designationEn": "designation_en",
	"designationFr": "designation_fr",
	"abbreviation":  "abbreviation",
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

func (r RepoImpl) Store(ctx context.Context, structure Structure) (int64, error) {
	query := `INSERT INTO structure (uid, designation_ar, designation_en, designation_fr, abbreviation, structure_type_id, parent_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		structure.Uid,
		structure.DesignationAr,
		structure.DesignationEn,
		structure.DesignationFr,
		structure.Abbreviation,
		structure.TypeID,
		structure.ParentID,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.Invalidf("structure type or parent structure does not exist")
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepoImpl) FindByID(ctx context.Context, id int64) (Structure, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM structure WHERE id = $1`, id)
	structure, err := scanStructure(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Structure{}, apperr.NotFoundf("Structure not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query structure: %w", err)
		log.Error(err)
		return Structure{}, err
	}
	return structure, nil
}

func (r RepoImpl) FindByUid(ctx context.Context, uid string) (Structure, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM structure WHERE uid = $1`, uid)
	structure, err := scanStructure(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Structure{}, apperr.NotFoundf("Structure not found with UID: %s", uid)
	}
	if err != nil {
		err := fmt.Errorf("could not query structure: %w", err)
		log.Error(err)
		return Structure{}, err
	}
	return structure, nil
}

func (r RepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]Structure, error) {
	query := fmt.Sprintf(`SELECT %s FROM structure %s LIMIT $1 OFFSET $2`, selectColumns, orderClause(page))
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query structures: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanStructures(rows)
}

func (r RepoImpl) FindRoots(ctx context.Context) ([]Structure, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM structure WHERE parent_id IS NULL ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query root structures: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanStructures(rows)
}

func (r RepoImpl) FindChildren(ctx context.Context, id int64) ([]Structure, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM structure WHERE parent_id = $1 ORDER BY id`, id)
	if err != nil {
		err := fmt.Errorf("could not query child structures: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanStructures(rows)
}

func (r RepoImpl) FindAncestors(ctx context.Context, id int64) ([]Structure, error) {
	query := `
		WITH RECURSIVE ancestors AS (
			SELECT s.*, 1 AS depth FROM structure s
			WHERE s.id = (SELECT parent_id FROM structure WHERE id = $1)
			UNION ALL
			SELECT s.*, a.depth + 1 FROM structure s
			JOIN ancestors a ON s.id = a.parent_id
		)
		SELECT ` + selectColumns + ` FROM ancestors ORDER BY depth`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not query structure ancestors: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanStructures(rows)
}

func (r RepoImpl) FindDescendants(ctx context.Context, id int64) ([]Structure, error) {
	query := `
		WITH RECURSIVE descendants AS (
			SELECT s.*, 1 AS depth FROM structure s WHERE s.parent_id = $1
			UNION ALL
			SELECT s.*, d.depth + 1 FROM structure s
			JOIN descendants d ON s.parent_id = d.id
		)
		SELECT ` + selectColumns + ` FROM descendants ORDER BY depth, id`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not query structure descendants: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanStructures(rows)
}

func (r RepoImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Structure, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM structure
		 WHERE designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1 OR abbreviation ILIKE $1
		 %s LIMIT $2 OFFSET $3`,
		selectColumns, orderClause(page),
	)
	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%", page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not search structures: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanStructures(rows)
}

func (r RepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM structure`).Scan(&count); err != nil {
		err := fmt.Errorf("could not count structures: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM structure WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check structure existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Update(ctx context.Context, structure Structure) (bool, error) {
	query := `UPDATE structure SET designation_ar = $1, designation_en = $2, designation_fr = $3,
			  abbreviation = $4, structure_type_id = $5, parent_id = $6 WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		structure.DesignationAr,
		structure.DesignationEn,
		structure.DesignationFr,
		structure.Abbreviation,
		structure.TypeID,
		structure.ParentID,
		structure.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Invalidf("structure type or parent structure does not exist")
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
	result, err := r.db.ExecContext(ctx, `DELETE FROM structure WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("Structure %d has children or distributions and cannot be deleted", id)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStructure(row rowScanner) (Structure, error) {
	var structure Structure
	var parentID sql.NullInt64
	err := row.Scan(
		&structure.ID,
		&structure.Uid,
		&structure.DesignationAr,
		&structure.DesignationEn,
		&structure.DesignationFr,
		&structure.Abbreviation,
		&structure.TypeID,
		&parentID,
	)
	if err != nil {
		return Structure{}, err
	}
	if parentID.Valid {
		structure.ParentID = &parentID.Int64
	}
	return structure, nil
}

func scanStructures(rows *sql.Rows) ([]Structure, error) {
	var structures []Structure
	for rows.Next() {
		structure, err := scanStructure(rows)
		if err != nil {
			err := fmt.Errorf("could not scan structure: %w", err)
			log.Error(err)
			return nil, err
		}
		structures = append(structures, structure)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return structures, nil
}
