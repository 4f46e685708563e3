package employee

import (
	"context"
	"testing"
	"time"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/pkg/military"
	"github.com/milplan/milplan/pkg/person"
	"github.com/milplan/milplan/pkg/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepo()

var jobRepoStub = NewStubJobRepo()

var personRepoStub = person.NewStubRepo()

var structureRepoStub = structure.NewStubRepo()

var rankRepoStub = military.NewStubRankRepo()

var service Service

var jobService JobService

func setup(t *testing.T) func() {
	service = NewService(repoStub, jobRepoStub, personRepoStub, structureRepoStub, rankRepoStub, nil)
	jobService = NewJobService(jobRepoStub, nil)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		jobRepoStub.Cleanup()
		personRepoStub.Cleanup()
		structureRepoStub.Cleanup()
		rankRepoStub.Cleanup()
	}
}

type references struct {
	personID    int64
	jobID       int64
	structureID int64
	rankID      int64
}

func storedReferences(t *testing.T) references {
	t.Helper()
	personID, err := personRepoStub.Store(ctx, person.Person{
		FirstName: "Amine", LastName: "Benali", Gender: person.GenderMale,
	})
	require.NoError(t, err)
	jobID, err := jobRepoStub.Store(ctx, Job{
		DesignationAr: "محاسب", DesignationEn: "Accountant", DesignationFr: "Comptable",
	})
	require.NoError(t, err)
	structureID, err := structureRepoStub.Store(ctx, structure.Structure{
		Uid:           "3c3d8f04-1fb9-4f0e-9f4a-2d8f04f1b94f",
		DesignationAr: "مديرية المالية",
		DesignationEn: "Finance Directorate",
		DesignationFr: "Direction des finances",
		TypeID:        1,
	})
	require.NoError(t, err)
	rankID, err := rankRepoStub.Store(ctx, military.Rank{
		DesignationAr: "نقيب", DesignationEn: "Captain", DesignationFr: "Capitaine", CategoryID: 1,
	})
	require.NoError(t, err)
	return references{personID: personID, jobID: jobID, structureID: structureID, rankID: rankID}
}

func validEmployee(refs references) Employee {
	return Employee{
		RegistrationNumber: "EMP-0001",
		PersonID:           refs.personID,
		JobID:              refs.jobID,
		StructureID:        refs.structureID,
	}
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a civilian employee without rank", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)

		// when
		created, err := service.Create(ctx, validEmployee(refs))

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Nil(t, created.RankID)
	})

	t.Run("should create a military employee with rank and hire date", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		hiredOn := time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)
		employee := validEmployee(refs)
		employee.HiredOn = &hiredOn
		employee.RankID = &refs.rankID

		// when
		created, err := service.Create(ctx, employee)

		// then
		assert.NoError(t, err)
		require.NotNil(t, created.RankID)
		assert.Equal(t, refs.rankID, *created.RankID)
	})

	t.Run("should reject duplicate registration number", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		_, err := service.Create(ctx, validEmployee(refs))
		require.NoError(t, err)

		otherPersonID, err := personRepoStub.Store(ctx, person.Person{
			FirstName: "Karim", LastName: "Haddad", Gender: person.GenderMale,
		})
		require.NoError(t, err)

		// when
		duplicate := validEmployee(refs)
		duplicate.PersonID = otherPersonID
		_, err = service.Create(ctx, duplicate)

		// then
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("should reject a second employee record for the same person", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		_, err := service.Create(ctx, validEmployee(refs))
		require.NoError(t, err)

		// when
		second := validEmployee(refs)
		second.RegistrationNumber = "EMP-0002"
		_, err = service.Create(ctx, second)

		// then
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("should reject unknown person", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		employee := validEmployee(refs)
		employee.PersonID = 99

		// when
		_, err := service.Create(ctx, employee)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject unknown rank", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		unknownRank := int64(99)
		employee := validEmployee(refs)
		employee.RankID = &unknownRank

		// when
		_, err := service.Create(ctx, employee)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject missing registration number", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		employee := validEmployee(refs)
		employee.RegistrationNumber = ""

		// when
		_, err := service.Create(ctx, employee)

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}

func TestServiceImpl_GetByRegistrationNumber(t *testing.T) {
	t.Run("should find an employee by registration number", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		created, err := service.Create(ctx, validEmployee(refs))
		require.NoError(t, err)

		// when
		found, err := service.GetByRegistrationNumber(ctx, "EMP-0001")

		// then
		assert.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("should return not found for unknown number", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.GetByRegistrationNumber(ctx, "EMP-9999")

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestServiceImpl_ListByStructure(t *testing.T) {
	t.Run("should only return employees of the given structure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		_, err := service.Create(ctx, validEmployee(refs))
		require.NoError(t, err)

		otherStructureID, err := structureRepoStub.Store(ctx, structure.Structure{
			Uid:           "8a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d",
			DesignationAr: "مديرية النقل",
			DesignationEn: "Transport Directorate",
			DesignationFr: "Direction des transports",
			TypeID:        1,
		})
		require.NoError(t, err)
		otherPersonID, err := personRepoStub.Store(ctx, person.Person{
			FirstName: "Karim", LastName: "Haddad", Gender: person.GenderMale,
		})
		require.NoError(t, err)
		other := Employee{
			RegistrationNumber: "EMP-0002",
			PersonID:           otherPersonID,
			JobID:              refs.jobID,
			StructureID:        otherStructureID,
		}
		_, err = service.Create(ctx, other)
		require.NoError(t, err)

		// when
		employees, err := service.ListByStructure(ctx, refs.structureID)

		// then
		assert.NoError(t, err)
		require.Len(t, employees, 1)
		assert.Equal(t, "EMP-0001", employees[0].RegistrationNumber)

		count, err := service.CountByStructure(ctx, refs.structureID)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("should return not found for unknown structure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.ListByStructure(ctx, 99)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should move an employee to another structure", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		created, err := service.Create(ctx, validEmployee(refs))
		require.NoError(t, err)

		otherStructureID, err := structureRepoStub.Store(ctx, structure.Structure{
			Uid:           "8a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d",
			DesignationAr: "مديرية النقل",
			DesignationEn: "Transport Directorate",
			DesignationFr: "Direction des transports",
			TypeID:        1,
		})
		require.NoError(t, err)

		// when
		created.StructureID = otherStructureID
		updated, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.Equal(t, otherStructureID, updated.StructureID)
	})

	t.Run("should keep its own person on update", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		refs := storedReferences(t)
		created, err := service.Create(ctx, validEmployee(refs))
		require.NoError(t, err)

		// when
		created.RegistrationNumber = "EMP-0001-A"
		_, err = service.Update(ctx, created)

		// then
		assert.NoError(t, err)
	})
}

func TestJobServiceImpl_Create(t *testing.T) {
	t.Run("should reject missing designations", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := jobService.Create(ctx, Job{DesignationFr: "Comptable"})

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}

func TestJobServiceImpl_Search(t *testing.T) {
	t.Run("should find jobs matching the keyword", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := jobService.Create(ctx, Job{
			DesignationAr: "محاسب", DesignationEn: "Accountant", DesignationFr: "Comptable",
		})
		require.NoError(t, err)
		_, err = jobService.Create(ctx, Job{
			DesignationAr: "سائق", DesignationEn: "Driver", DesignationFr: "Chauffeur",
		})
		require.NoError(t, err)

		// when
		matches, err := jobService.Search(ctx, "compta", rest.PageRequest{Page: 0, Size: 10, SortBy: "designationFr"})

		// then
		assert.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Accountant", matches[0].DesignationEn)

		count, err := jobService.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)

		exists, err := jobService.Exists(ctx, matches[0].ID)
		assert.NoError(t, err)
		assert.True(t, exists)
	})
}
