package geo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/database"
	log "github.com/sirupsen/logrus"
)

type CountryRepo interface {
	Store(ctx context.Context, country Country) (int64, error)
	FindByID(ctx context.Context, id int64) (Country, error)
	FindByCode(ctx context.Context, code string) (Country, error)
	FindAll(ctx context.Context) ([]Country, error)
	Search(ctx context.Context, keyword string) ([]Country, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, country Country) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type StateRepo interface {
	Store(ctx context.Context, state State) (int64, error)
	FindByID(ctx context.Context, id int64) (State, error)
	FindAll(ctx context.Context) ([]State, error)
	FindByCountry(ctx context.Context, countryID int64) ([]State, error)
	Search(ctx context.Context, keyword string) ([]State, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, state State) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type LocalityRepo interface {
	Store(ctx context.Context, locality Locality) (int64, error)
	FindByID(ctx context.Context, id int64) (Locality, error)
	FindAll(ctx context.Context) ([]Locality, error)
	FindByState(ctx context.Context, stateID int64) ([]Locality, error)
	Search(ctx context.Context, keyword string) ([]Locality, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, locality Locality) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type CountryRepoImpl struct {
	db *sql.DB
}

func NewCountryRepo(db *sql.DB) *CountryRepoImpl {
	return &CountryRepoImpl{db: db}
}

const countryColumns = "id, code, designation_ar, designation_en, designation_fr"

func (r CountryRepoImpl) Store(ctx context.Context, country Country) (int64, error) {
	query := `INSERT INTO country (code, designation_ar, designation_en, designation_fr)
			  VALUES ($1, $2, $3, $4) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		country.Code, country.DesignationAr, country.DesignationEn, country.DesignationFr,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, apperr.Conflictf("country code already exists: %s", country.Code)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r CountryRepoImpl) FindByID(ctx context.Context, id int64) (Country, error) {
	var country Country
	err := r.db.QueryRowContext(ctx, `SELECT `+countryColumns+` FROM country WHERE id = $1`, id).Scan(
		&country.ID, &country.Code, &country.DesignationAr, &country.DesignationEn, &country.DesignationFr)
	if errors.Is(err, sql.ErrNoRows) {
		return Country{}, apperr.NotFoundf("Country not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query country: %w", err)
		log.Error(err)
		return Country{}, err
	}
	return country, nil
}

func (r CountryRepoImpl) FindByCode(ctx context.Context, code string) (Country, error) {
	var country Country
	err := r.db.QueryRowContext(ctx, `SELECT `+countryColumns+` FROM country WHERE code = $1`, code).Scan(
		&country.ID, &country.Code, &country.DesignationAr, &country.DesignationEn, &country.DesignationFr)
	if errors.Is(err, sql.ErrNoRows) {
		return Country{}, apperr.NotFoundf("Country not found with code: %s", code)
	}
	if err != nil {
		err := fmt.Errorf("could not query country: %w", err)
		log.Error(err)
		return Country{}, err
	}
	return country, nil
}

func (r CountryRepoImpl) FindAll(ctx context.Context) ([]Country, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+countryColumns+` FROM country ORDER BY code`)
	if err != nil {
		err := fmt.Errorf("could not query countries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	countries := make([]Country, 0)
	for rows.Next() {
		var country Country
		if err := rows.Scan(&country.ID, &country.Code, &country.DesignationAr, &country.DesignationEn, &country.DesignationFr); err != nil {
			err := fmt.Errorf("could not scan country row: %w", err)
			log.Error(err)
			return nil, err
		}
		countries = append(countries, country)
	}
	return countries, rows.Err()
}

func (r CountryRepoImpl) Search(ctx context.Context, keyword string) ([]Country, error) {
	query := `SELECT ` + countryColumns + ` FROM country
			  WHERE code ILIKE $1 OR designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1
			  ORDER BY code`
	rows, err := r.db.QueryContext(ctx, query, "%"+keyword+"%")
	if err != nil {
		err := fmt.Errorf("could not search countries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	countries := make([]Country, 0)
	for rows.Next() {
		var country Country
		if err := rows.Scan(&country.ID, &country.Code, &country.DesignationAr, &country.DesignationEn, &country.DesignationFr); err != nil {
			err := fmt.Errorf("could not scan country row: %w", err)
			log.Error(err)
			return nil, err
		}
		countries = append(countries, country)
	}
	return countries, rows.Err()
}

func (r CountryRepoImpl) Count(ctx context.Context) (int64, error) {
	return countQuery(ctx, r.db, "country")
}

func (r CountryRepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return existsQuery(ctx, r.db, "country", id)
}

func (r CountryRepoImpl) Update(ctx context.Context, country Country) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE country SET code = $1, designation_ar = $2, designation_en = $3, designation_fr = $4 WHERE id = $5`,
		country.Code, country.DesignationAr, country.DesignationEn, country.DesignationFr, country.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflictf("country code already exists: %s", country.Code)
		}
		err := fmt.Errorf("could not update country: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r CountryRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM country WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("country %d is still referenced by states or persons", id)
		}
		err := fmt.Errorf("could not delete country: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type StateRepoImpl struct {
	db *sql.DB
}

func NewStateRepo(db *sql.DB) *StateRepoImpl {
	return &StateRepoImpl{db: db}
}

const stateColumns = "id, code, designation_ar, designation_en, designation_fr, country_id"

func (r StateRepoImpl) Store(ctx context.Context, state State) (int64, error) {
	query := `INSERT INTO state (code, designation_ar, designation_en, designation_fr, country_id)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		state.Code, state.DesignationAr, state.DesignationEn, state.DesignationFr, state.CountryID,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.NotFoundf("Country not found with ID: %d", state.CountryID)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r StateRepoImpl) FindByID(ctx context.Context, id int64) (State, error) {
	var state State
	err := r.db.QueryRowContext(ctx, `SELECT `+stateColumns+` FROM state WHERE id = $1`, id).Scan(
		&state.ID, &state.Code, &state.DesignationAr, &state.DesignationEn, &state.DesignationFr, &state.CountryID)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, apperr.NotFoundf("State not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query state: %w", err)
		log.Error(err)
		return State{}, err
	}
	return state, nil
}

func (r StateRepoImpl) FindAll(ctx context.Context) ([]State, error) {
	return r.queryStates(ctx, `SELECT `+stateColumns+` FROM state ORDER BY id`)
}

func (r StateRepoImpl) FindByCountry(ctx context.Context, countryID int64) ([]State, error) {
	return r.queryStates(ctx, `SELECT `+stateColumns+` FROM state WHERE country_id = $1 ORDER BY id`, countryID)
}

func (r StateRepoImpl) queryStates(ctx context.Context, query string, args ...any) ([]State, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query states: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	states := make([]State, 0)
	for rows.Next() {
		var state State
		if err := rows.Scan(&state.ID, &state.Code, &state.DesignationAr, &state.DesignationEn, &state.DesignationFr, &state.CountryID); err != nil {
			err := fmt.Errorf("could not scan state row: %w", err)
			log.Error(err)
			return nil, err
		}
		states = append(states, state)
	}
	return states, rows.Err()
}

func (r StateRepoImpl) Search(ctx context.Context, keyword string) ([]State, error) {
	query := `SELECT ` + stateColumns + ` FROM state
			  WHERE code ILIKE $1 OR designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1
			  ORDER BY id`
	return r.queryStates(ctx, query, "%"+keyword+"%")
}

func (r StateRepoImpl) Count(ctx context.Context) (int64, error) {
	return countQuery(ctx, r.db, "state")
}

func (r StateRepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return existsQuery(ctx, r.db, "state", id)
}

func (r StateRepoImpl) Update(ctx context.Context, state State) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE state SET code = $1, designation_ar = $2, designation_en = $3, designation_fr = $4, country_id = $5 WHERE id = $6`,
		state.Code, state.DesignationAr, state.DesignationEn, state.DesignationFr, state.CountryID, state.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.NotFoundf("Country not found with ID: %d", state.CountryID)
		}
		err := fmt.Errorf("could not update state: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r StateRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM state WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("state %d is still referenced by localities", id)
		}
		err := fmt.Errorf("could not delete state: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type LocalityRepoImpl struct {
	db *sql.DB
}

func NewLocalityRepo(db *sql.DB) *LocalityRepoImpl {
	return &LocalityRepoImpl{db: db}
}

const localityColumns = "id, postal_code, designation_ar, designation_en, designation_fr, state_id"

func (r LocalityRepoImpl) Store(ctx context.Context, locality Locality) (int64, error) {
	query := `INSERT INTO locality (postal_code, designation_ar, designation_en, designation_fr, state_id)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		locality.PostalCode, locality.DesignationAr, locality.DesignationEn, locality.DesignationFr, locality.StateID,
	).Scan(&id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.NotFoundf("State not found with ID: %d", locality.StateID)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r LocalityRepoImpl) FindByID(ctx context.Context, id int64) (Locality, error) {
	var locality Locality
	err := r.db.QueryRowContext(ctx, `SELECT `+localityColumns+` FROM locality WHERE id = $1`, id).Scan(
		&locality.ID, &locality.PostalCode, &locality.DesignationAr, &locality.DesignationEn, &locality.DesignationFr, &locality.StateID)
	if errors.Is(err, sql.ErrNoRows) {
		return Locality{}, apperr.NotFoundf("Locality not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query locality: %w", err)
		log.Error(err)
		return Locality{}, err
	}
	return locality, nil
}

func (r LocalityRepoImpl) FindAll(ctx context.Context) ([]Locality, error) {
	return r.queryLocalities(ctx, `SELECT `+localityColumns+` FROM locality ORDER BY id`)
}

func (r LocalityRepoImpl) FindByState(ctx context.Context, stateID int64) ([]Locality, error) {
	return r.queryLocalities(ctx, `SELECT `+localityColumns+` FROM locality WHERE state_id = $1 ORDER BY id`, stateID)
}

func (r LocalityRepoImpl) queryLocalities(ctx context.Context, query string, args ...any) ([]Locality, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query localities: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	localities := make([]Locality, 0)
	for rows.Next() {
		var locality Locality
		if err := rows.Scan(&locality.ID, &locality.PostalCode, &locality.DesignationAr, &locality.DesignationEn, &locality.DesignationFr, &locality.StateID); err != nil {
			err := fmt.Errorf("could not scan locality row: %w", err)
			log.Error(err)
			return nil, err
		}
		localities = append(localities, locality)
	}
	return localities, rows.Err()
}

func (r LocalityRepoImpl) Search(ctx context.Context, keyword string) ([]Locality, error) {
	query := `SELECT ` + localityColumns + ` FROM locality
			  WHERE postal_code ILIKE $1 OR designation_ar ILIKE $1 OR designation_en ILIKE $1 OR designation_fr ILIKE $1
			  ORDER BY id`
	return r.queryLocalities(ctx, query, "%"+keyword+"%")
}

func (r LocalityRepoImpl) Count(ctx context.Context) (int64, error) {
	return countQuery(ctx, r.db, "locality")
}

func (r LocalityRepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	return existsQuery(ctx, r.db, "locality", id)
}

func (r LocalityRepoImpl) Update(ctx context.Context, locality Locality) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE locality SET postal_code = $1, designation_ar = $2, designation_en = $3, designation_fr = $4, state_id = $5 WHERE id = $6`,
		locality.PostalCode, locality.DesignationAr, locality.DesignationEn, locality.DesignationFr, locality.StateID, locality.ID,
	)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.NotFoundf("State not found with ID: %d", locality.StateID)
		}
		err := fmt.Errorf("could not update locality: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r LocalityRepoImpl) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM locality WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return false, apperr.Conflictf("locality %d is still referenced by persons", id)
		}
		err := fmt.Errorf("could not delete locality: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func countQuery(ctx context.Context, db *sql.DB, table string) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count %s rows: %w", table, err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func existsQuery(ctx context.Context, db *sql.DB, table string, id int64) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, table), id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check %s existence: %w", table, err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}
