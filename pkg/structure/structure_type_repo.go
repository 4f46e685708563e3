package structure

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/database"
	log "github.com/sirupsen/logrus"
)

type TypeRepo interface {
	Store(ctx context.Context, structureType StructureType) (int64, error)
	FindByID(ctx context.Context, id int64) (StructureType, error)
	FindAll(ctx context.Context) ([]StructureType, error)
	Search(ctx context.Context, keyword string) ([]StructureType, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, structureType StructureType) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type TypeRepoImpl struct {
	db *sql.DB
}

func NewTypeRepo(db *sql.DB) *TypeRepoImpl {
	return &TypeRepoImpl{db: db}
}

func (r TypeRepoImpl) Store(ctx context.Context, structureType StructureType) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO structure_type (designation_ar, designation_en, designation_fr) VALUES ($1, $2, $3) RETURNING id`,
		structureType.DesignationAr, structureType.DesignationEn, structureType.DesignationFr,
	).Scan(&id)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r TypeRepoImpl) FindByID(ctx context.Context, id int64) (StructureType, error) {
	var structureType StructureType
	err := r.db.QueryRowContext(ctx,
		`SELECT id, designation_ar, designation_en, designation_fr FROM structure_type WHERE id = $1`, id,
	).Scan(&structureType.ID, &structureType.DesignationAr, &structureType.DesignationEn, &structureType.DesignationFr)
	if errors.Is(err, sql.ErrNoRows) {
		return StructureType{}, apperr.NotFoundf("Structure type not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query structure type: %w", err)
		log.Error(err)
		return StructureType{}, err
	}
	return structureType, nil
}

func (r TypeRepoImpl) FindAll(ctx context.Context) ([]StructureType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, designation_ar, designation_en, designation_fr FROM structure_type ORDER BY id`)
	if err != nil {
		err := fmt.Errorf("could not query structure types: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var types []StructureType
	for rows.Next() {
		var structureType StructureType
		if err := rows.Scan(&structureType.ID, &structureType.DesignationAr, &structureType.DesignationEn, &structureType.DesignationFr); err != nil {
			err := fmt.Errorf("could not scan structure type: %w", err)
			log.Error(err)
			return nil, err
		}
		types = append(types, structureType)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return types, nil
}

func (r TypeRepoImpl) Search(ctx context.Context, keyword string) ([]StructureType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, designation_ar, designation_en, designation_fr FROM structure_type
		 WHERE designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1
		 ORDER BY id`, "%"+keyword+"%")
	if err != nil {
		err := fmt.Errorf("could not search structure types: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	types := make([]StructureType, 0)
	for rows.Next() {
		var structureType StructureType
		if err := rows.Scan(&structureType.ID, &structureType.DesignationAr, &structureType.DesignationEn, &structureType.DesignationFr); err != nil {
			err := fmt.Errorf("could not scan structure type: %w", err)
			log.Error(err)
			return nil, err
		}
		types = append(types, structureType)
	}
	return types, rows.Err()
}

func (r TypeRepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM structure_type`).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count structure types: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r TypeRepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM structure_type WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check structure type existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r TypeRepoImpl) Update(ctx context.Context, structureType StructureType) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE structure_type SET designation_ar = $1, designation_en = $2, designation_fr = $3 WHERE id = $4`,
		structureType.DesignationAr, structureType.DesignationEn, structureType.DesignationFr, structureType.ID,
	)
	if err != nil {
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

func (r TypeRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM structure_type WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("Structure type %d is in use and cannot be deleted", id)
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
