package budget_modification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/database"
	"github.com/milplan/milplan/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Store(ctx context.Context, modification BudgetModification) (int64, error)
	FindByID(ctx context.Context, id int64) (BudgetModification, error)
	FindAll(ctx context.Context, page rest.PageRequest) ([]BudgetModification, error)
	FindByPlannedItem(ctx context.Context, plannedItemID int64) ([]BudgetModification, error)
	FindByApprovalDateRange(ctx context.Context, from, to time.Time, page rest.PageRequest) ([]BudgetModification, error)
	ExistsByApprovalAndDocument(ctx context.Context, approvalDate time.Time, demandeDocument string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, modification BudgetModification) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

var sortColumns = map[string]string{
	"id":              "id",
	"approvalDate":    "approval_date",
	"demandeDocument": "demande_document",
	"amount":          "amount",
	"direction":       "direction",
	"plannedItemId":   "planned_item_id",
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

const selectColumns = "id, approval_date, demande_document, amount, direction, planned_item_id"

func (r RepoImpl) Store(ctx context.Context, modification BudgetModification) (int64, error) {
	query := `INSERT INTO budget_modification (approval_date, demande_document, amount, direction, planned_item_id)
			  VALUES ($1, $2, $3, $4, $5) RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		modification.ApprovalDate,
		modification.DemandeDocument,
		modification.Amount,
		string(modification.Direction),
		modification.PlannedItemID,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, apperr.Conflictf("a modification already exists for document %s approved on %s",
				modification.DemandeDocument, modification.ApprovalDate.Format("2006-01-02"))
		}
		if database.IsForeignKeyViolation(err) {
			return 0, apperr.NotFoundf("Planned item not found with ID: %d", modification.PlannedItemID)
		}
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return 0, err
	}
	return id, nil
}

func (r RepoImpl) FindByID(ctx context.Context, id int64) (BudgetModification, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM budget_modification WHERE id = $1`, id)
	modification, err := scanModification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return BudgetModification{}, apperr.NotFoundf("Budget modification not found with ID: %d", id)
	}
	if err != nil {
		err := fmt.Errorf("could not query budget modification: %w", err)
		log.Error(err)
		return BudgetModification{}, err
	}
	return modification, nil
}

func (r RepoImpl) FindAll(ctx context.Context, page rest.PageRequest) ([]BudgetModification, error) {
	query := fmt.Sprintf(`SELECT %s FROM budget_modification %s LIMIT $1 OFFSET $2`, selectColumns, orderClause(page))
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query budget modifications: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanModifications(rows)
}

func (r RepoImpl) FindByPlannedItem(ctx context.Context, plannedItemID int64) ([]BudgetModification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM budget_modification WHERE planned_item_id = $1 ORDER BY approval_date, id`,
		plannedItemID,
	)
	if err != nil {
		err := fmt.Errorf("could not query budget modifications: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanModifications(rows)
}

func (r RepoImpl) FindByApprovalDateRange(ctx context.Context, from, to time.Time, page rest.PageRequest) ([]BudgetModification, error) {
	query := fmt.Sprintf(`SELECT %s FROM budget_modification WHERE approval_date BETWEEN $1 AND $2 %s LIMIT $3 OFFSET $4`,
		selectColumns, orderClause(page))
	rows, err := r.db.QueryContext(ctx, query, from, to, page.Size, page.Offset())
	if err != nil {
		err := fmt.Errorf("could not query budget modifications: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanModifications(rows)
}

func (r RepoImpl) ExistsByApprovalAndDocument(ctx context.Context, approvalDate time.Time, demandeDocument string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM budget_modification WHERE approval_date = $1 AND demande_document = $2 AND id <> $3)`,
		approvalDate, demandeDocument, excludeID,
	).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check budget modification existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM budget_modification`).Scan(&count)
	if err != nil {
		err := fmt.Errorf("could not count budget modifications: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (r RepoImpl) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM budget_modification WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		err := fmt.Errorf("could not check budget modification existence: %w", err)
		log.Error(err)
		return false, err
	}
	return exists, nil
}

func (r RepoImpl) Update(ctx context.Context, modification BudgetModification) (bool, error) {
	query := `UPDATE budget_modification
			  SET approval_date = $1, demande_document = $2, amount = $3, direction = $4, planned_item_id = $5
			  WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		modification.ApprovalDate,
		modification.DemandeDocument,
		modification.Amount,
		string(modification.Direction),
		modification.PlannedItemID,
		modification.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return false, apperr.Conflictf("a modification already exists for document %s approved on %s",
				modification.DemandeDocument, modification.ApprovalDate.Format("2006-01-02"))
		}
		if database.IsForeignKeyViolation(err) {
			return false, apperr.NotFoundf("Planned item not found with ID: %d", modification.PlannedItemID)
		}
		err := fmt.Errorf("could not update budget modification: %w", err)
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
	result, err := r.db.ExecContext(ctx, `DELETE FROM budget_modification WHERE id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete budget modification: %w", err)
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

func scanModification(row rowScanner) (BudgetModification, error) {
	var modification BudgetModification
	var direction string
	err := row.Scan(
		&modification.ID,
		&modification.ApprovalDate,
		&modification.DemandeDocument,
		&modification.Amount,
		&direction,
		&modification.PlannedItemID,
	)
	modification.Direction = Direction(direction)
	return modification, err
}

func scanModifications(rows *sql.Rows) ([]BudgetModification, error) {
	modifications := make([]BudgetModification, 0)
	for rows.Next() {
		modification, err := scanModification(rows)
		if err != nil {
			err := fmt.Errorf("could not scan budget modification row: %w", err)
			log.Error(err)
			return nil, err
		}
		modifications = append(modifications, modification)
	}
	return modifications, rows.Err()
}
