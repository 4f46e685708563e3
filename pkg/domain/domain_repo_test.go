package domain

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
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

func setupTestRepo(t *testing.T) *RepoImpl {
	t.Helper()
	if db == nil {
		t.Skip("database tests skipped")
	}
	test_utils.TruncateTables(t, db, "rubric", "domain")
	return NewRepo(db)
}

func TestRepoImpl_StoreAndFind(t *testing.T) {
	// given
	repo := setupTestRepo(t)

	// when
	id, err := repo.Store(ctx, Domain{DesignationAr: "مجال", DesignationEn: "Equipment", DesignationFr: "Équipement"})
	require.NoError(t, err)

	// then
	found, err := repo.FindByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "Équipement", found.DesignationFr)
	assert.Equal(t, "Equipment", found.DesignationEn)
}

func TestRepoImpl_Store_DuplicateDesignationFr(t *testing.T) {
	// given
	repo := setupTestRepo(t)
	_, err := repo.Store(ctx, Domain{DesignationAr: "أ", DesignationEn: "A", DesignationFr: "Unique"})
	require.NoError(t, err)

	// when
	_, err = repo.Store(ctx, Domain{DesignationAr: "ب", DesignationEn: "B", DesignationFr: "Unique"})

	// then
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRepoImpl_FindAll_Pagination(t *testing.T) {
	// given
	repo := setupTestRepo(t)
	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"}
	for _, name := range names {
		_, err := repo.Store(ctx, Domain{DesignationAr: name, DesignationEn: name, DesignationFr: name})
		require.NoError(t, err)
	}

	// when
	page, err := repo.FindAll(ctx, rest.PageRequest{Page: 1, Size: 2, SortBy: "designationFr", SortDir: "desc"})

	// then
	assert.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Charlie", page[0].DesignationFr)
	assert.Equal(t, "Bravo", page[1].DesignationFr)

	total, err := repo.Count(ctx)
	assert.NoError(t, err)
	assert.EqualValues(t, 5, total)
}

func TestRepoImpl_FindAll_UnknownSortColumnFallsBackToId(t *testing.T) {
	// given
	repo := setupTestRepo(t)
	_, err := repo.Store(ctx, Domain{DesignationAr: "أ", DesignationEn: "A", DesignationFr: "A"})
	require.NoError(t, err)

	// when
	page, err := repo.FindAll(ctx, rest.PageRequest{Page: 0, Size: 10, SortBy: "designation_fr; DROP TABLE domain", SortDir: "asc"})

	// then
	assert.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestRepoImpl_Search(t *testing.T) {
	// given
	repo := setupTestRepo(t)
	_, err := repo.Store(ctx, Domain{DesignationAr: "أمن", DesignationEn: "Site Security", DesignationFr: "Sécurité des sites"})
	require.NoError(t, err)
	_, err = repo.Store(ctx, Domain{DesignationAr: "تموين", DesignationEn: "Catering", DesignationFr: "Restauration"})
	require.NoError(t, err)

	// when
	results, err := repo.Search(ctx, "secur", rest.PageRequest{Page: 0, Size: 10, SortBy: "id", SortDir: "asc"})

	// then
	assert.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Site Security", results[0].DesignationEn)
}

func TestRepoImpl_Delete_RestrictedWhenReferenced(t *testing.T) {
	// given
	repo := setupTestRepo(t)
	id, err := repo.Store(ctx, Domain{DesignationAr: "أ", DesignationEn: "A", DesignationFr: "A"})
	require.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO rubric (code, designation_ar, designation_en, designation_fr, domain_id) VALUES ('R1', 'ر', 'R', 'R', $1)`,
		id,
	)
	require.NoError(t, err)

	// when
	_, err = repo.Delete(ctx, id)

	// then
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRepoImpl_ExistsByDesignationFr_ExcludesOwnId(t *testing.T) {
	// given
	repo := setupTestRepo(t)
	id, err := repo.Store(ctx, Domain{DesignationAr: "أ", DesignationEn: "A", DesignationFr: "Unique"})
	require.NoError(t, err)

	// when / then
	exists, err := repo.ExistsByDesignationFr(ctx, "Unique", 0)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByDesignationFr(ctx, "Unique", id)
	assert.NoError(t, err)
	assert.False(t, exists)
}
