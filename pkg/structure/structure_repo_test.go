package structure

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
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

func setupTestRepo(t *testing.T) (*RepoImpl, int64) {
	t.Helper()
	if db == nil {
		t.Skip("database tests skipped")
	}
	test_utils.TruncateTables(t, db, "employee", "structure", "structure_type")
	typeRepo := NewTypeRepo(db)
	typeID, err := typeRepo.Store(ctx, StructureType{
		DesignationAr: "مديرية", DesignationEn: "Directorate", DesignationFr: "Direction",
	})
	require.NoError(t, err)
	return NewRepo(db), typeID
}

func storeStructure(t *testing.T, repo *RepoImpl, typeID int64, fr string, parentID *int64) int64 {
	t.Helper()
	id, err := repo.Store(ctx, Structure{
		Uid:           uuid.NewString(),
		DesignationAr: fr,
		DesignationEn: fr,
		DesignationFr: fr,
		TypeID:        typeID,
		ParentID:      parentID,
	})
	require.NoError(t, err)
	return id
}

func TestRepoImpl_StoreAndFind(t *testing.T) {
	// given
	repo, typeID := setupTestRepo(t)

	// when
	id := storeStructure(t, repo, typeID, "Direction des finances", nil)

	// then
	found, err := repo.FindByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "Direction des finances", found.DesignationFr)
	assert.Nil(t, found.ParentID)
	assert.NotEmpty(t, found.Uid)

	byUid, err := repo.FindByUid(ctx, found.Uid)
	assert.NoError(t, err)
	assert.Equal(t, id, byUid.ID)
}

func TestRepoImpl_FindAncestors_OrderedParentToRoot(t *testing.T) {
	// given
	repo, typeID := setupTestRepo(t)
	rootID := storeStructure(t, repo, typeID, "Ministère", nil)
	midID := storeStructure(t, repo, typeID, "Direction", &rootID)
	leafID := storeStructure(t, repo, typeID, "Bureau", &midID)

	// when
	ancestors, err := repo.FindAncestors(ctx, leafID)

	// then
	assert.NoError(t, err)
	require.Len(t, ancestors, 2)
	assert.Equal(t, midID, ancestors[0].ID)
	assert.Equal(t, rootID, ancestors[1].ID)
}

func TestRepoImpl_FindAncestors_RootHasNone(t *testing.T) {
	// given
	repo, typeID := setupTestRepo(t)
	rootID := storeStructure(t, repo, typeID, "Ministère", nil)

	// when
	ancestors, err := repo.FindAncestors(ctx, rootID)

	// then
	assert.NoError(t, err)
	assert.Empty(t, ancestors)
}

func TestRepoImpl_FindDescendants_WholeSubtree(t *testing.T) {
	// given
	repo, typeID := setupTestRepo(t)
	rootID := storeStructure(t, repo, typeID, "Ministère", nil)
	dir1 := storeStructure(t, repo, typeID, "Direction A", &rootID)
	dir2 := storeStructure(t, repo, typeID, "Direction B", &rootID)
	bureau := storeStructure(t, repo, typeID, "Bureau A1", &dir1)
	otherRoot := storeStructure(t, repo, typeID, "Autre ministère", nil)
	storeStructure(t, repo, typeID, "Direction X", &otherRoot)

	// when
	descendants, err := repo.FindDescendants(ctx, rootID)

	// then
	assert.NoError(t, err)
	require.Len(t, descendants, 3)
	// direct children come before grandchildren
	assert.Equal(t, dir1, descendants[0].ID)
	assert.Equal(t, dir2, descendants[1].ID)
	assert.Equal(t, bureau, descendants[2].ID)
}

func TestRepoImpl_FindRootsAndChildren(t *testing.T) {
	// given
	repo, typeID := setupTestRepo(t)
	rootID := storeStructure(t, repo, typeID, "Ministère", nil)
	childID := storeStructure(t, repo, typeID, "Direction", &rootID)

	// when
	roots, err := repo.FindRoots(ctx)
	require.NoError(t, err)
	children, err := repo.FindChildren(ctx, rootID)
	require.NoError(t, err)

	// then
	require.Len(t, roots, 1)
	assert.Equal(t, rootID, roots[0].ID)
	require.Len(t, children, 1)
	assert.Equal(t, childID, children[0].ID)
}

func TestRepoImpl_Delete_RestrictedWhenParent(t *testing.T) {
	// given
	repo, typeID := setupTestRepo(t)
	rootID := storeStructure(t, repo, typeID, "Ministère", nil)
	storeStructure(t, repo, typeID, "Direction", &rootID)

	// when
	_, err := repo.Delete(ctx, rootID)

	// then
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRepoImpl_Update_Reparent(t *testing.T) {
	// given
	repo, typeID := setupTestRepo(t)
	root1 := storeStructure(t, repo, typeID, "Ministère A", nil)
	root2 := storeStructure(t, repo, typeID, "Ministère B", nil)
	childID := storeStructure(t, repo, typeID, "Direction", &root1)

	// when
	child, err := repo.FindByID(ctx, childID)
	require.NoError(t, err)
	child.ParentID = &root2
	updated, err := repo.Update(ctx, child)

	// then
	assert.NoError(t, err)
	assert.True(t, updated)
	children, err := repo.FindChildren(ctx, root2)
	assert.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, childID, children[0].ID)
}

func TestTypeRepoImpl_DeleteRestrictedWhenUsed(t *testing.T) {
	// given
	repo, typeID := setupTestRepo(t)
	storeStructure(t, repo, typeID, "Ministère", nil)
	typeRepo := NewTypeRepo(db)

	// when
	_, err := typeRepo.Delete(ctx, typeID)

	// then
	assert.ErrorIs(t, err, apperr.ErrConflict)
}
