package domain

import (
	"context"
	"strings"
	"testing"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub, nil)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
	}
}

func validDomain() Domain {
	return Domain{
		DesignationAr: "مجال تقني",
		DesignationEn: "Technical Equipment",
		DesignationFr: "Équipement technique",
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a domain successfully", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, validDomain())

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Équipement technique", created.DesignationFr)
	})

	t.Run("should reject missing designations", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, Domain{DesignationEn: "Only English"})

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})

	t.Run("should reject designation longer than 255 characters", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		d := validDomain()
		d.DesignationFr = strings.Repeat("x", 256)

		// when
		_, err := service.Create(ctx, d)

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})

	t.Run("should reject duplicate French designation", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, validDomain())
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, validDomain())

		// then
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Contains(t, err.Error(), "French designation already exists")
	})
}

func TestServiceImpl_Get(t *testing.T) {
	t.Run("should get a created domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, validDomain())
		require.NoError(t, err)

		// when
		found, err := service.Get(ctx, created.ID)

		// then
		assert.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("should return not found for unknown id", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Get(ctx, 42)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestServiceImpl_ListByCategory(t *testing.T) {
	t.Run("should return only domains of the requested category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, Domain{
			DesignationAr: "أ", DesignationEn: "Technical Equipment", DesignationFr: "Équipement technique",
		})
		require.NoError(t, err)
		_, err = service.Create(ctx, Domain{
			DesignationAr: "ب", DesignationEn: "Site Security", DesignationFr: "Sécurité des sites",
		})
		require.NoError(t, err)
		_, err = service.Create(ctx, Domain{
			DesignationAr: "ج", DesignationEn: "Catering", DesignationFr: "Restauration",
		})
		require.NoError(t, err)

		// when
		technical, err := service.ListByCategory(ctx, CategoryTechnical)

		// then
		assert.NoError(t, err)
		require.Len(t, technical, 1)
		assert.Equal(t, "Technical Equipment", technical[0].DesignationEn)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should update an existing domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, validDomain())
		require.NoError(t, err)

		// when
		created.DesignationEn = "Renamed"
		updated, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "Renamed", updated.DesignationEn)
	})

	t.Run("should return not found when updating unknown domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		d := validDomain()
		d.ID = 99

		// when
		_, err := service.Update(ctx, d)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an existing domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, validDomain())
		require.NoError(t, err)

		// when
		err = service.Delete(ctx, created.ID)

		// then
		assert.NoError(t, err)
		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should return not found when deleting unknown domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, 42)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestServiceImpl_List(t *testing.T) {
	t.Run("should paginate results", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		for i := 0; i < 5; i++ {
			d := validDomain()
			d.DesignationFr = d.DesignationFr + " " + string(rune('A'+i))
			_, err := service.Create(ctx, d)
			require.NoError(t, err)
		}

		// when
		page, total, err := service.List(ctx, rest.PageRequest{Page: 1, Size: 2, SortBy: "id", SortDir: "asc"})

		// then
		assert.NoError(t, err)
		assert.EqualValues(t, 5, total)
		assert.Len(t, page, 2)
	})
}
