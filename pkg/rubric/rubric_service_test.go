package rubric

import (
	"context"
	"testing"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var (
	repoStub       = NewStubRepo()
	domainRepoStub = domain.NewStubRepo()
)

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub, domainRepoStub, nil)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		domainRepoStub.Cleanup()
	}
}

func createDomain(t *testing.T) int64 {
	t.Helper()
	id, err := domainRepoStub.Store(ctx, domain.Domain{
		DesignationAr: "مجال", DesignationEn: "Equipment", DesignationFr: "Équipement",
	})
	require.NoError(t, err)
	return id
}

func validRubric(domainID int64) Rubric {
	return Rubric{
		Code:          "R-100",
		DesignationAr: "بند",
		DesignationEn: "Spare parts",
		DesignationFr: "Pièces de rechange",
		DomainID:      domainID,
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a rubric under an existing domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		domainID := createDomain(t)

		// when
		created, err := service.Create(ctx, validRubric(domainID))

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("should reject rubric for missing domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, validRubric(99))

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Contains(t, err.Error(), "Domain not found with ID: 99")
	})

	t.Run("should reject duplicate French designation within domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		domainID := createDomain(t)
		_, err := service.Create(ctx, validRubric(domainID))
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, validRubric(domainID))

		// then
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("should allow same French designation in another domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		firstDomain := createDomain(t)
		secondDomain, err := domainRepoStub.Store(ctx, domain.Domain{
			DesignationAr: "آخر", DesignationEn: "Other", DesignationFr: "Autre",
		})
		require.NoError(t, err)
		_, err = service.Create(ctx, validRubric(firstDomain))
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, validRubric(secondDomain))

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject missing code", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		domainID := createDomain(t)
		r := validRubric(domainID)
		r.Code = ""

		// when
		_, err := service.Create(ctx, r)

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}

func TestServiceImpl_ListByDomain(t *testing.T) {
	t.Run("should list only rubrics of the domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		firstDomain := createDomain(t)
		secondDomain, err := domainRepoStub.Store(ctx, domain.Domain{
			DesignationAr: "آخر", DesignationEn: "Other", DesignationFr: "Autre",
		})
		require.NoError(t, err)
		_, err = service.Create(ctx, validRubric(firstDomain))
		require.NoError(t, err)
		other := validRubric(secondDomain)
		other.DesignationFr = "Munitions"
		_, err = service.Create(ctx, other)
		require.NoError(t, err)

		// when
		rubrics, err := service.ListByDomain(ctx, firstDomain, rest.PageRequest{Page: 0, Size: 10})

		// then
		assert.NoError(t, err)
		require.Len(t, rubrics, 1)
		assert.Equal(t, firstDomain, rubrics[0].DomainID)
	})

	t.Run("should fail for unknown domain", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ListByDomain(ctx, 77, rest.PageRequest{Page: 0, Size: 10})

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should return not found for unknown rubric", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, 5)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
