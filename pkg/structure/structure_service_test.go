package structure

import (
	"context"
	"testing"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepo()

var typeRepoStub = NewStubTypeRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub, typeRepoStub, nil)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		typeRepoStub.Cleanup()
	}
}

func storedType(t *testing.T) int64 {
	id, err := typeRepoStub.Store(ctx, StructureType{
		DesignationAr: "مديرية", DesignationEn: "Directorate", DesignationFr: "Direction",
	})
	require.NoError(t, err)
	return id
}

func validStructure(typeID int64) Structure {
	return Structure{
		DesignationAr: "مديرية المالية",
		DesignationEn: "Finance Directorate",
		DesignationFr: "Direction des finances",
		Abbreviation:  "DF",
		TypeID:        typeID,
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a root structure and assign a uid", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)

		// when
		created, err := service.Create(ctx, validStructure(typeID))

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.NotEmpty(t, created.Uid)
		assert.Nil(t, created.ParentID)
	})

	t.Run("should reject unknown structure type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, validStructure(99))

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject unknown parent", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		s := validStructure(typeID)
		parent := int64(77)
		s.ParentID = &parent

		// when
		_, err := service.Create(ctx, s)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject missing designations", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)

		// when
		_, err := service.Create(ctx, Structure{DesignationEn: "Only English", TypeID: typeID})

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}

func TestServiceImpl_Hierarchy(t *testing.T) {
	t.Run("should list children of a structure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		root, err := service.Create(ctx, validStructure(typeID))
		require.NoError(t, err)
		child := validStructure(typeID)
		child.DesignationFr = "Bureau du budget"
		child.ParentID = &root.ID
		_, err = service.Create(ctx, child)
		require.NoError(t, err)

		// when
		children, err := service.ListChildren(ctx, root.ID)

		// then
		assert.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, "Bureau du budget", children[0].DesignationFr)
	})

	t.Run("should list ancestors from parent to root", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		root, err := service.Create(ctx, validStructure(typeID))
		require.NoError(t, err)
		mid := validStructure(typeID)
		mid.DesignationFr = "Sous-direction"
		mid.ParentID = &root.ID
		midCreated, err := service.Create(ctx, mid)
		require.NoError(t, err)
		leaf := validStructure(typeID)
		leaf.DesignationFr = "Bureau"
		leaf.ParentID = &midCreated.ID
		leafCreated, err := service.Create(ctx, leaf)
		require.NoError(t, err)

		// when
		ancestors, err := service.ListAncestors(ctx, leafCreated.ID)

		// then
		assert.NoError(t, err)
		require.Len(t, ancestors, 2)
		assert.Equal(t, midCreated.ID, ancestors[0].ID)
		assert.Equal(t, root.ID, ancestors[1].ID)
	})

	t.Run("should list the whole subtree as descendants", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		root, err := service.Create(ctx, validStructure(typeID))
		require.NoError(t, err)
		mid := validStructure(typeID)
		mid.DesignationFr = "Sous-direction"
		mid.ParentID = &root.ID
		midCreated, err := service.Create(ctx, mid)
		require.NoError(t, err)
		leaf := validStructure(typeID)
		leaf.DesignationFr = "Bureau"
		leaf.ParentID = &midCreated.ID
		_, err = service.Create(ctx, leaf)
		require.NoError(t, err)

		// when
		descendants, err := service.ListDescendants(ctx, root.ID)
		roots, rootsErr := service.ListRoots(ctx)

		// then
		assert.NoError(t, err)
		assert.Len(t, descendants, 2)
		assert.NoError(t, rootsErr)
		require.Len(t, roots, 1)
		assert.Equal(t, root.ID, roots[0].ID)
	})

	t.Run("should return not found for subtree of unknown structure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ListDescendants(ctx, 42)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestTypeServiceImpl_Search(t *testing.T) {
	t.Run("should find structure types matching the keyword", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeService := NewTypeService(typeRepoStub)
		_, err := typeService.Create(ctx, StructureType{
			DesignationAr: "مديرية", DesignationEn: "Directorate", DesignationFr: "Direction",
		})
		require.NoError(t, err)
		_, err = typeService.Create(ctx, StructureType{
			DesignationAr: "مصلحة", DesignationEn: "Department", DesignationFr: "Service",
		})
		require.NoError(t, err)

		// when
		matches, err := typeService.Search(ctx, "director")

		// then
		assert.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Directorate", matches[0].DesignationEn)

		count, err := typeService.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)

		exists, err := typeService.Exists(ctx, matches[0].ID)
		assert.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should reject a structure as its own parent", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		created, err := service.Create(ctx, validStructure(typeID))
		require.NoError(t, err)

		// when
		created.ParentID = &created.ID
		_, err = service.Update(ctx, created)

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})

	t.Run("should reject moving a structure below its own descendant", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		root, err := service.Create(ctx, validStructure(typeID))
		require.NoError(t, err)
		child := validStructure(typeID)
		child.DesignationFr = "Bureau"
		child.ParentID = &root.ID
		childCreated, err := service.Create(ctx, child)
		require.NoError(t, err)

		// when
		root.ParentID = &childCreated.ID
		_, err = service.Update(ctx, root)

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})

	t.Run("should update designations of an existing structure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		created, err := service.Create(ctx, validStructure(typeID))
		require.NoError(t, err)

		// when
		created.DesignationEn = "Renamed Directorate"
		updated, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "Renamed Directorate", updated.DesignationEn)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should refuse to delete a structure with children", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		root, err := service.Create(ctx, validStructure(typeID))
		require.NoError(t, err)
		child := validStructure(typeID)
		child.DesignationFr = "Bureau"
		child.ParentID = &root.ID
		_, err = service.Create(ctx, child)
		require.NoError(t, err)

		// when
		err = service.Delete(ctx, root.ID)

		// then
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("should delete a leaf structure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		created, err := service.Create(ctx, validStructure(typeID))
		require.NoError(t, err)

		// when
		err = service.Delete(ctx, created.ID)

		// then
		assert.NoError(t, err)
		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestServiceImpl_GetByUid(t *testing.T) {
	t.Run("should find a structure by its uid", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		typeID := storedType(t)
		created, err := service.Create(ctx, validStructure(typeID))
		require.NoError(t, err)

		// when
		found, err := service.GetByUid(ctx, created.Uid)

		// then
		assert.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})
}
