package person

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
	Store(ctx context.Context, person Person) (int64, error)
	FindByID(ctx context.Context, id int64) (Person, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]Person, error)
	Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Person, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, person Person) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

var sortColumns = map[string]string{
	"id":        "id",
	"firstName": "first_name",
	"lastName":  "last_name",
	"birthDate": "birth_date",
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

const selectColumns = "id, first_name, last_name, first_name_ar, last_name_ar, gender, birth_date, birth_locality_id, nationality_id"

func (r RepoImpl) Store(ctx context.Context, person Person) (int64, error) {
	query := `INSERT INTO person (first_name, last_name, first_name_ar, last_name_ar, gender, birth_date, birth_locality_id, nationality_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		person.FirstName,
		person.LastName,
		person.FirstNameAr,
		person.LastNameAr,
		string(person.Gender),
		person.BirthDate,
		person.BirthLocalityID,
		person.NationalityID,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.NotFoundf("Birth locality or nationality not found for person")
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepoImpl) FindByID(ctx context.Context, id int64) (Person, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM person WHERE id = $1`, id)
	person, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Person{}, apperr.NotFoundf("Person not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query person: %w", err)
		log.Error(err)
		return Person{}, err
	}
	return person, nil
}

func (r RepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM person %s LIMIT $1 OFFSET $2`, selectColumns, orderClause(page))
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query persons: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanPersons(rows)
}

func (r RepoImpl) Search(ctx context.Context, keyword string, page rest.PageRequest) ([]Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM person
		WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR first_name_ar ILIKE $1 OR last_name_ar ILIKE $1
		%s LIMIT $2 OFFSET $3`, selectColumns, orderClause(page))

	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%", page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not search persons: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanPersons(rows)
}

func (r RepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM person`).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count persons: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM person WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check person existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Update(ctx context.Context, person Person) (bool, error) {
	query := `UPDATE person
			  SET first_name = $1, last_name = $2, first_name_ar = $3, last_name_ar = $4,
				  gender = $5, birth_date = $6, birth_locality_id = $7, nationality_id = $8
			  WHERE id = $9`

	result, err := r.db.ExecContext(ctx, query,
		person.FirstName,
		person.LastName,
		person.FirstNameAr,
		person.LastNameAr,
		string(person.Gender),
		person.BirthDate,
		person.BirthLocalityID,
		person.NationalityID,
		person.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.NotFoundf("Birth locality or nationality not found for person")
		}
		err := fmt.Errorf("could not update person: %w", err)
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
	result, err := r.db.ExecContext(ctx, `DELETE FROM person WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("person %d is still referenced by an employee record", id)
		}
		err := fmt.Errorf("could not delete person: %w", err)
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

func scanPerson(row rowScanner) (Person, error) {
	var person Person
	var gender string
	var birthDate sql.NullTime
	var localityID, nationalityID sql.NullInt64
	err := row.Scan(
		&person.ID,
		&person.FirstName,
		&person.LastName,
		&person.FirstNameAr,
		&person.LastNameAr,
		&gender,
		&birthDate,
		&localityID,
		&nationalityID,
	)
	person.Gender = Gender(gender)
	if birthDate.Valid {
		person.BirthDate = &birthDate.Time
	}
	if localityID.Valid {
		person.BirthLocalityID = &localityID.Int64
	}
	if nationalityID.Valid {
		person.NationalityID = &nationalityID.Int64
	}
	return person, err
}

func scanPersons(rows *sql.Rows) ([]Person, error) {
	persons := make([]Person, 0)
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			err := fmt.Errorf("could not scan person row: %w", err)
			log.Error(err)
			return nil, err
		}
		persons = append(persons, person)
	}
	return persons, rows.Err()
}
