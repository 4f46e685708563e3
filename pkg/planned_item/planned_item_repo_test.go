package planned_item

import (
	"context"
	"database/sql"
	"os"
	"testing"

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

func setupTestRepo(t *testing.T) (*RepoImpl, int64, int64) {
	t.Helper()
	if db == nil {
		t.Skip("database tests skipped")
	}
	test_utils.TruncateTables(t, db,
		"budget_modification", "item_distribution", "planned_item", "rubric", "item_status", "domain")

	var domainID, rubricID, statusID int64
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

	return NewRepo(db), rubricID, statusID
}

func testItem(rubricID, statusID int64) PlannedItem {
	return PlannedItem{
		DesignationAr: "اقتناء شاحنات",
		DesignationEn: "Truck acquisition",
		DesignationFr: "Acquisition de camions",
		OperationCode: "OP-2026-014",
		FiscalYear:    2026,
		Quantity:      4,
		UnitPrice:     decimal.RequireFromString("250000.00"),
		RubricID:      rubricID,
		ItemStatusID:  statusID,
	}
}

func TestRepoImpl_StoreAndFind(t *testing.T) {
	// given
	repo, rubricID, statusID := setupTestRepo(t)

	// when
	id, err := repo.Store(ctx, testItem(rubricID, statusID))
	require.NoError(t, err)

	// then
	found, err := repo.FindByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "Acquisition de camions", found.DesignationFr)
	assert.Equal(t, 2026, found.FiscalYear)
	assert.True(t, found.UnitPrice.Equal(decimal.RequireFromString("250000.00")))
}

func TestRepoImpl_Store_UnknownRubric(t *testing.T) {
	// given
	repo, _, statusID := setupTestRepo(t)

	// when
	_, err := repo.Store(ctx, testItem(9999, statusID))

	// then
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRepoImpl_FindAll_Filtered(t *testing.T) {
	// given
	repo, rubricID, statusID := setupTestRepo(t)
	for _, year := range []int{2025, 2026, 2026} {
		item := testItem(rubricID, statusID)
		item.FiscalYear = year
		_, err := repo.Store(ctx, item)
		require.NoError(t, err)
	}

	// when
	items, err := repo.FindAll(ctx, Filter{FiscalYear: 2026}, rest.PageRequest{Page: 0, Size: 10, SortBy: "id", SortDir: "asc"})

	// then
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	count, err := repo.Count(ctx, Filter{FiscalYear: 2026, RubricID: rubricID})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestRepoImpl_Search_MatchesOperationCode(t *testing.T) {
	// given
	repo, rubricID, statusID := setupTestRepo(t)
	_, err := repo.Store(ctx, testItem(rubricID, statusID))
	require.NoError(t, err)

	// when
	results, err := repo.Search(ctx, "op-2026", rest.PageRequest{Page: 0, Size: 10, SortBy: "id", SortDir: "asc"})

	// then
	assert.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "OP-2026-014", results[0].OperationCode)
}

func TestRepoImpl_Delete_RestrictedWhenDistributed(t *testing.T) {
	// given
	repo, rubricID, statusID := setupTestRepo(t)
	id, err := repo.Store(ctx, testItem(rubricID, statusID))
	require.NoError(t, err)

	var typeID, structureID int64
	err = db.QueryRow(
		`INSERT INTO structure_type (designation_ar, designation_en, designation_fr) VALUES ('مديرية', 'Directorate', 'Direction') RETURNING id`,
	).Scan(&typeID)
	require.NoError(t, err)
	err = db.QueryRow(
		`INSERT INTO structure (uid, designation_ar, designation_en, designation_fr, structure_type_id) VALUES (gen_random_uuid(), 'مديرية', 'Directorate', 'Direction', $1) RETURNING id`,
		typeID,
	).Scan(&structureID)
	require.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO item_distribution (quantity, distributed_on, planned_item_id, structure_id) VALUES (1, '2026-03-01', $1, $2)`,
		id, structureID,
	)
	require.NoError(t, err)

	// when
	_, err = repo.Delete(ctx, id)

	// then
	assert.ErrorIs(t, err, apperr.ErrConflict)
}
