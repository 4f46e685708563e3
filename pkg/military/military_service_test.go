package military

import (
	"context"
	"testing"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var categoryRepoStub = NewStubCategoryRepo()

var rankRepoStub = NewStubRankRepo()

var categoryService CategoryService

var rankService RankService

func setup(t *testing.T) func() {
	categoryService = NewCategoryService(categoryRepoStub, nil)
	rankService = NewRankService(rankRepoStub, categoryRepoStub, nil)
	return func() {
		t.Log("Teardown after test")
		categoryRepoStub.Cleanup()
		rankRepoStub.Cleanup()
	}
}

func validCategory() Category {
	return Category{
		DesignationAr: "ضباط",
		DesignationEn: "Officers",
		DesignationFr: "Officiers",
	}
}

func TestRankServiceImpl_Create(t *testing.T) {
	t.Run("should create a rank in an existing category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		category, err := categoryService.Create(ctx, validCategory())
		require.NoError(t, err)

		// when
		created, err := rankService.Create(ctx, Rank{
			DesignationAr: "نقيب", DesignationEn: "Captain", DesignationFr: "Capitaine", CategoryID: category.ID,
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("should reject unknown category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := rankService.Create(ctx, Rank{
			DesignationAr: "نقيب", DesignationEn: "Captain", DesignationFr: "Capitaine", CategoryID: 99,
		})

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject missing designations", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		category, err := categoryService.Create(ctx, validCategory())
		require.NoError(t, err)

		// when
		_, err = rankService.Create(ctx, Rank{DesignationEn: "Captain", CategoryID: category.ID})

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}

func TestRankServiceImpl_ListByCategory(t *testing.T) {
	t.Run("should return only ranks of the requested category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		officers, err := categoryService.Create(ctx, validCategory())
		require.NoError(t, err)
		enlisted, err := categoryService.Create(ctx, Category{
			DesignationAr: "جنود", DesignationEn: "Enlisted", DesignationFr: "Hommes de troupe",
		})
		require.NoError(t, err)
		_, err = rankService.Create(ctx, Rank{
			DesignationAr: "نقيب", DesignationEn: "Captain", DesignationFr: "Capitaine", CategoryID: officers.ID,
		})
		require.NoError(t, err)
		_, err = rankService.Create(ctx, Rank{
			DesignationAr: "جندي", DesignationEn: "Private", DesignationFr: "Soldat", CategoryID: enlisted.ID,
		})
		require.NoError(t, err)

		// when
		ranks, err := rankService.ListByCategory(ctx, officers.ID)

		// then
		assert.NoError(t, err)
		require.Len(t, ranks, 1)
		assert.Equal(t, "Captain", ranks[0].DesignationEn)
	})

	t.Run("should return not found for unknown category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := rankService.ListByCategory(ctx, 42)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestCategoryServiceImpl_Search(t *testing.T) {
	t.Run("should find categories matching any designation", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := categoryService.Create(ctx, validCategory())
		require.NoError(t, err)
		_, err = categoryService.Create(ctx, Category{
			DesignationAr: "جنود", DesignationEn: "Enlisted", DesignationFr: "Hommes de troupe",
		})
		require.NoError(t, err)

		// when
		matches, err := categoryService.Search(ctx, "offic")

		// then
		assert.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Officers", matches[0].DesignationEn)

		count, err := categoryService.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestRankServiceImpl_Search(t *testing.T) {
	t.Run("should find ranks matching the keyword", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		category, err := categoryService.Create(ctx, validCategory())
		require.NoError(t, err)
		_, err = rankService.Create(ctx, Rank{
			DesignationAr: "نقيب", DesignationEn: "Captain", DesignationFr: "Capitaine", CategoryID: category.ID,
		})
		require.NoError(t, err)
		_, err = rankService.Create(ctx, Rank{
			DesignationAr: "عقيد", DesignationEn: "Colonel", DesignationFr: "Colonel", CategoryID: category.ID,
		})
		require.NoError(t, err)

		// when
		matches, err := rankService.Search(ctx, "capit", rest.PageRequest{Page: 0, Size: 10, SortBy: "designationFr"})

		// then
		assert.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Captain", matches[0].DesignationEn)

		exists, err := rankService.Exists(ctx, matches[0].ID)
		assert.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestCategoryServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an existing category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		category, err := categoryService.Create(ctx, validCategory())
		require.NoError(t, err)

		// when
		err = categoryService.Delete(ctx, category.ID)

		// then
		assert.NoError(t, err)
		_, err = categoryService.Get(ctx, category.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should return not found for unknown category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := categoryService.Delete(ctx, 42)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
