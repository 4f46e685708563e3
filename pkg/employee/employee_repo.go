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

type Repo interface {
	Store(ctx context.Context, employee Employee) (int64, error)
	FindByID(ctx context.Context, id int64) (Employee, error)
	FindByRegistrationNumber(ctx context.Context, number string) (Employee, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]Employee, error)
	FindByStructure(ctx context.Context, structureID int64) ([]Employee, error)
	FindByJob(ctx context.Context, jobID int64) ([]Employee, error)
	Count(ctx context.Context) (int64, error)
	CountByStructure(ctx context.Context, structureID int64) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ExistsByPerson(ctx context.Context, personID int64, excludeID int64) (bool, error)
	Update(ctx context.Context, employee Employee) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

var sortColumns = map[string]string{
	"id":                 "id",
	"registrationNumber": "registration_number",
	"hiredOn":            "hired_on",
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

const selectColumns = "id, registration_number, hired_on, person_id, job_id, structure_id, rank_id"

func (r RepoImpl) Store(ctx context.Context, employee Employee) (int64, error) {
	query := `INSERT INTO employee (registration_number, hired_on, person_id, job_id, structure_id, rank_id)
			  VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		employee.RegistrationNumber,
		employee.HiredOn,
		employee.PersonID,
		employee.JobID,
		employee.StructureID,
		employee.RankID,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, apperr.Conflictf("an employee already exists with registration number %q or the same person",
				employee.RegistrationNumber)
		}
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.NotFoundf("Person, job, structure or rank not found for employee")
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepoImpl) FindByID(ctx context.Context, id int64) (Employee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM employee WHERE id = $1`, id)
	employee, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, apperr.NotFoundf("Employee not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query employee: %w", err)
		log.Error(err)
		return Employee{}, err
	}
	return employee, nil
}

func (r RepoImpl) FindByRegistrationNumber(ctx context.Context, number string) (Employee, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM employee WHERE registration_number = $1`, number)
	employee, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, apperr.NotFoundf("Employee not found with registration number: %s", number)
	}
	if err != nil {
		err := fmt.Errorf("could not query employee: %w", err)
		log.Error(err)
		return Employee{}, err
	}
	return employee, nil
}

func (r RepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employee %s LIMIT $1 OFFSET $2`, selectColumns, orderClause(page))
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query employees: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func (r RepoImpl) FindByStructure(ctx context.Context, structureID int64) ([]Employee, error) {
	return r.findAllBy(ctx, "structure_id", structureID)
}

func (r RepoImpl) FindByJob(ctx context.Context, jobID int64) ([]Employee, error) {
	return r.findAllBy(ctx, "job_id", jobID)
}

func (r RepoImpl) findAllBy(ctx context.Context, column string, value int64) ([]Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employee WHERE %s = $1 ORDER BY registration_number`,
		selectColumns, column)
	rows, err := r.db.QueryContext(ctx, query, value)
	if err != nil {
		err := fmt.Errorf("could not query employees: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func (r RepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM employee`).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count employees: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) CountByStructure(ctx context.Context, structureID int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM employee WHERE structure_id = $1`, structureID).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count employees: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM employee WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check employee existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) ExistsByPerson(ctx context.Context, personID int64, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM employee WHERE person_id = $1 AND id <> $2)`,
		personID, excludeID).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check employee existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Update(ctx context.Context, employee Employee) (bool, error) {
	query := `UPDATE employee
			  SET registration_number = $1, hired_on = $2, person_id = $3, job_id = $4,
				  structure_id = $5, rank_id = $6
			  WHERE id = $7`

	result, err := r.db.ExecContext(ctx, query,
		employee.RegistrationNumber,
		employee.HiredOn,
		employee.PersonID,
		employee.JobID,
		employee.StructureID,
		employee.RankID,
		employee.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflictf("an employee already exists with registration number %q or the same person",
				employee.RegistrationNumber)
		}
		if database.IsForeignKeyViolation(err) {
			return false, apperr.NotFoundf("Person, job, structure or rank not found for employee")
		}
		err := fmt.Errorf("could not update employee: %w", err)
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
	result, err := r.db.ExecContext(ctx, `DELETE FROM employee WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete employee: %w", err)
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

func scanEmployee(row rowScanner) (Employee, error) {
	var employee Employee
	var hiredOn sql.NullTime
	var rankID sql.NullInt64
	err := row.Scan(
		&employee.ID,
		&employee.RegistrationNumber,
		&hiredOn,
		&employee.PersonID,
		&employee.JobID,
		&employee.StructureID,
		&rankID,
	)
	if hiredOn.Valid {
		employee.HiredOn = &hiredOn.Time
	}
	if rankID.Valid {
		employee.RankID = &rankID.Int64
	}
	return employee, err
}

func scanEmployees(rows *sql.Rows) ([]Employee, error) {
	employees := make([]Employee, 0)
	for rows.Next() {
		employee, err := scanEmployee(rows)
		if err != nil {
			err := fmt.Errorf("could not scan employee row: %w", err)
			log.Error(err)
			return nil, err
		}
		employees = append(employees, employee)
	}
	return employees, rows.Err()
}
