package budget_modification

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var db *sql.DB

func TestMain(m *testing.M) {
	if os.Getenv("SKIP_DB_TESTS") != "" {
		os.Exit(m.Run())
	}
	container, open := test_utils.TestWithDB()
	db = open()
	code := m.Run()
	db.Close()
	_ = container.Terminate(context.Background())
	os.Exit(code)
}

func setupTestRepo(t *testing.T) (*RepoImpl, int64) {
	t.Helper()
	if db == nil {
		t.Skip("database tests skipped")
	}
	test_utils.TruncateTables(t, db,
		"budget_modification", "item_distribution", "planned_item", "rubric", "item_status", "domain")

	var domainID, rubricID, statusID, itemID int64
	err := db.QueryRow(
		`INSERT INTO domain (designation_ar, designation_en, designation_fr) VALUES ('مجال', 'Equipment', 'Équipement') RETURNING id`,
	).Scan(&domainID)
	require.NoError(t, err)
	err = db.QueryRow(
		`INSERT INTO rubric (code, designation_ar, designation_en, designation_fr, domain_id) VALUES ('R1', 'باب', 'Vehicles', 'Véhicules', $1) RETURNING id`,
		domainID,
	).Scan(&rubricID)
	require.NoError(t, err)
	err = db.QueryRow(
		`INSERT INTO item_status (designation_ar, designation_en, designation_fr) VALUES ('معلق', 'Pending', 'En attente') RETURNING id`,
	).Scan(&statusID)
	require.NoError(t, err)
	err = db.QueryRow(
		`INSERT INTO planned_item (designation_ar, designation_en, designation_fr, operation_code, fiscal_year, quantity, unit_price, rubric_id, item_status_id)
		 VALUES ('اقتناء', 'Truck acquisition', 'Acquisition de camions', 'OP-2026-014', 2026, 4, 250000.00, $1, $2) RETURNING id`,
		rubricID, statusID,
	).Scan(&itemID)
	require.NoError(t, err)

	return NewRepo(db), itemID
}

func testModification(itemID int64) BudgetModification {
	return BudgetModification{
		ApprovalDate:    time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		DemandeDocument: "DM-2026-0042",
		Amount:          decimal.RequireFromString("50000.00"),
		Direction:       DirectionIncrease,
		PlannedItemID:   itemID,
	}
}

func TestRepoImpl_StoreAndFind(t *testing.T) {
	// given
	repo, itemID := setupTestRepo(t)

	// when
	id, err := repo.Store(ctx, testModification(itemID))
	require.NoError(t, err)

	// then
	found, err := repo.FindByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "DM-2026-0042", found.DemandeDocument)
	assert.Equal(t, DirectionIncrease, found.Direction)
	assert.True(t, found.Amount.Equal(decimal.RequireFromString("50000.00")))
}

func TestRepoImpl_Store_DuplicateApprovalPair(t *testing.T) {
	// given
	repo, itemID := setupTestRepo(t)
	_, err := repo.Store(ctx, testModification(itemID))
	require.NoError(t, err)

	// when
	_, err = repo.Store(ctx, testModification(itemID))

	// then
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRepoImpl_Store_SameDocumentDifferentDate(t *testing.T) {
	// given
	repo, itemID := setupTestRepo(t)
	_, err := repo.Store(ctx, testModification(itemID))
	require.NoError(t, err)

	// when
	other := testModification(itemID)
	other.ApprovalDate = other.ApprovalDate.AddDate(0, 0, 1)
	_, err = repo.Store(ctx, other)

	// then
	assert.NoError(t, err)
}

func TestRepoImpl_ExistsByApprovalAndDocument(t *testing.T) {
	// given
	repo, itemID := setupTestRepo(t)
	modification := testModification(itemID)
	id, err := repo.Store(ctx, modification)
	require.NoError(t, err)

	// when / then
	exists, err := repo.ExistsByApprovalAndDocument(ctx, modification.ApprovalDate, modification.DemandeDocument, 0)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByApprovalAndDocument(ctx, modification.ApprovalDate, modification.DemandeDocument, id)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestRepoImpl_FindByApprovalDateRange(t *testing.T) {
	// given
	repo, itemID := setupTestRepo(t)
	for day, document := range map[int]string{10: "DM-A", 20: "DM-B", 30: "DM-C"} {
		modification := testModification(itemID)
		modification.ApprovalDate = time.Date(2026, 4, day, 0, 0, 0, 0, time.UTC)
		modification.DemandeDocument = document
		_, err := repo.Store(ctx, modification)
		require.NoError(t, err)
	}

	// when
	modifications, err := repo.FindByApprovalDateRange(ctx,
		time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		rest.PageRequest{Page: 0, Size: 10, SortBy: "approvalDate", SortDir: "asc"},
	)

	// then
	assert.NoError(t, err)
	require.Len(t, modifications, 2)
	assert.Equal(t, "DM-B", modifications[0].DemandeDocument)
	assert.Equal(t, "DM-C", modifications[1].DemandeDocument)
}
