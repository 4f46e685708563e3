package item_distribution

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/pkg/planned_item"
	"github.com/milplan/milplan/pkg/structure"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepo()

var itemRepoStub = planned_item.NewStubRepo()

var structureRepoStub = structure.NewStubRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub, itemRepoStub, structureRepoStub, nil)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		itemRepoStub.Cleanup()
		structureRepoStub.Cleanup()
	}
}

func storedReferences(t *testing.T, plannedQuantity int) (int64, int64) {
	t.Helper()
	itemID, err := itemRepoStub.Store(ctx, planned_item.PlannedItem{
		DesignationAr: "اقتناء",
		DesignationEn: "Truck acquisition",
		DesignationFr: "Acquisition de camions",
		OperationCode: "OP-2026-014",
		FiscalYear:    2026,
		Quantity:      plannedQuantity,
		UnitPrice:     decimal.RequireFromString("250000.00"),
		RubricID:      1,
		ItemStatusID:  1,
	})
	require.NoError(t, err)
	structureID, err := structureRepoStub.Store(ctx, structure.Structure{
		Uid:           uuid.NewString(),
		DesignationAr: "مديرية",
		DesignationEn: "Directorate",
		DesignationFr: "Direction",
		TypeID:        1,
	})
	require.NoError(t, err)
	return itemID, structureID
}

func validDistribution(itemID, structureID int64, quantity int) ItemDistribution {
	return ItemDistribution{
		Quantity:      quantity,
		DistributedOn: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PlannedItemID: itemID,
		StructureID:   structureID,
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a distribution within the planned quantity", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		itemID, structureID := storedReferences(t, 10)

		// when
		created, err := service.Create(ctx, validDistribution(itemID, structureID, 4))

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("should reject a distribution exceeding the planned quantity", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		itemID, structureID := storedReferences(t, 10)
		_, err := service.Create(ctx, validDistribution(itemID, structureID, 7))
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, validDistribution(itemID, structureID, 4))

		// then
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("should allow distributing exactly the remaining quantity", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		itemID, structureID := storedReferences(t, 10)
		_, err := service.Create(ctx, validDistribution(itemID, structureID, 7))
		require.NoError(t, err)

		// when
		_, err = service.Create(ctx, validDistribution(itemID, structureID, 3))

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject unknown planned item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, structureID := storedReferences(t, 10)

		// when
		_, err := service.Create(ctx, validDistribution(99, structureID, 1))

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject unknown structure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		itemID, _ := storedReferences(t, 10)

		// when
		_, err := service.Create(ctx, validDistribution(itemID, 99, 1))

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		itemID, structureID := storedReferences(t, 10)

		// when
		_, err := service.Create(ctx, validDistribution(itemID, structureID, 0))

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should not count the updated distribution against itself", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		itemID, structureID := storedReferences(t, 10)
		created, err := service.Create(ctx, validDistribution(itemID, structureID, 7))
		require.NoError(t, err)

		// when the quantity grows but stays within the plan
		created.Quantity = 10
		_, err = service.Update(ctx, created)

		// then
		assert.NoError(t, err)
	})

	t.Run("should reject an update exceeding the planned quantity", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		itemID, structureID := storedReferences(t, 10)
		first, err := service.Create(ctx, validDistribution(itemID, structureID, 6))
		require.NoError(t, err)
		_, err = service.Create(ctx, validDistribution(itemID, structureID, 3))
		require.NoError(t, err)

		// when
		first.Quantity = 8
		_, err = service.Update(ctx, first)

		// then
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestServiceImpl_ListByPlannedItem(t *testing.T) {
	t.Run("should list distributions of a planned item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		itemID, structureID := storedReferences(t, 10)
		otherItemID, _ := storedReferences(t, 5)
		_, err := service.Create(ctx, validDistribution(itemID, structureID, 2))
		require.NoError(t, err)
		_, err = service.Create(ctx, validDistribution(otherItemID, structureID, 1))
		require.NoError(t, err)

		// when
		distributions, err := service.ListByPlannedItem(ctx, itemID)

		// then
		assert.NoError(t, err)
		require.Len(t, distributions, 1)
		assert.Equal(t, itemID, distributions[0].PlannedItemID)
	})

	t.Run("should return not found for unknown planned item", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ListByPlannedItem(ctx, 42)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an existing distribution", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		itemID, structureID := storedReferences(t, 10)
		created, err := service.Create(ctx, validDistribution(itemID, structureID, 2))
		require.NoError(t, err)

		// when
		err = service.Delete(ctx, created.ID)

		// then
		assert.NoError(t, err)
		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
