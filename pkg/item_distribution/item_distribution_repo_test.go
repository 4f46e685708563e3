package item_distribution

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/test_utils"
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
		"item_distribution", "planned_item", "rubric", "item_status", "domain", "structure", "structure_type")

	var domainID, rubricID, statusID, typeID, structureID, itemID int64
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
		 VALUES ('اقتناء شاحنات', 'Truck acquisition', 'Acquisition de camions', 'OP-2026-014', 2026, 10, 250000.00, $1, $2) RETURNING id`,
		rubricID, statusID,
	).Scan(&itemID)
	require.NoError(t, err)
	err = db.QueryRow(
		`INSERT INTO structure_type (designation_ar, designation_en, designation_fr) VALUES ('مديرية', 'Directorate', 'Direction') RETURNING id`,
	).Scan(&typeID)
	require.NoError(t, err)
	err = db.QueryRow(
		`INSERT INTO structure (uid, designation_ar, designation_en, designation_fr, structure_type_id) VALUES (gen_random_uuid(), 'مديرية', 'Directorate', 'Direction', $1) RETURNING id`,
		typeID,
	).Scan(&structureID)
	require.NoError(t, err)

	return NewRepo(db), itemID, structureID
}

func testDistribution(itemID, structureID int64, quantity int, day int) ItemDistribution {
	return ItemDistribution{
		Quantity:      quantity,
		DistributedOn: time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		PlannedItemID: itemID,
		StructureID:   structureID,
	}
}

func TestRepoImpl_StoreAndFind(t *testing.T) {
	// given
	repo, itemID, structureID := setupTestRepo(t)

	// when
	id, err := repo.Store(ctx, testDistribution(itemID, structureID, 4, 1))
	require.NoError(t, err)

	// then
	found, err := repo.FindByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, 4, found.Quantity)
	assert.Equal(t, itemID, found.PlannedItemID)
	assert.Equal(t, structureID, found.StructureID)
}

func TestRepoImpl_Store_UnknownPlannedItem(t *testing.T) {
	// given
	repo, _, structureID := setupTestRepo(t)

	// when
	_, err := repo.Store(ctx, testDistribution(9999, structureID, 4, 1))

	// then
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRepoImpl_SumQuantityByPlannedItem(t *testing.T) {
	t.Run("should total all distributions of a planned item", func(t *testing.T) {
		// given
		repo, itemID, structureID := setupTestRepo(t)
		for i, quantity := range []int{3, 2, 4} {
			_, err := repo.Store(ctx, testDistribution(itemID, structureID, quantity, i+1))
			require.NoError(t, err)
		}

		// when
		sum, err := repo.SumQuantityByPlannedItem(ctx, itemID, 0)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 9, sum)
	})

	t.Run("should return zero when nothing is distributed", func(t *testing.T) {
		// given
		repo, itemID, _ := setupTestRepo(t)

		// when
		sum, err := repo.SumQuantityByPlannedItem(ctx, itemID, 0)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 0, sum)
	})

	t.Run("should leave out the excluded distribution", func(t *testing.T) {
		// given
		repo, itemID, structureID := setupTestRepo(t)
		excludedID, err := repo.Store(ctx, testDistribution(itemID, structureID, 3, 1))
		require.NoError(t, err)
		_, err = repo.Store(ctx, testDistribution(itemID, structureID, 2, 2))
		require.NoError(t, err)

		// when
		sum, err := repo.SumQuantityByPlannedItem(ctx, itemID, excludedID)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 2, sum)
	})
}

func TestRepoImpl_FindByPlannedItem_Ordering(t *testing.T) {
	// given
	repo, itemID, structureID := setupTestRepo(t)
	_, err := repo.Store(ctx, testDistribution(itemID, structureID, 2, 15))
	require.NoError(t, err)
	_, err = repo.Store(ctx, testDistribution(itemID, structureID, 3, 1))
	require.NoError(t, err)

	// when
	distributions, err := repo.FindByPlannedItem(ctx, itemID)

	// then
	assert.NoError(t, err)
	require.Len(t, distributions, 2)
	assert.Equal(t, 3, distributions[0].Quantity)
	assert.Equal(t, 2, distributions[1].Quantity)
}
