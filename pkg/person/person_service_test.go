package person

import (
	"context"
	"testing"
	"time"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/milplan/milplan/internal/rest"
	"github.com/milplan/milplan/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var repoStub = NewStubRepo()

var localityRepoStub = geo.NewStubLocalityRepo()

var countryRepoStub = geo.NewStubCountryRepo()

var service Service

func setup(t *testing.T) func() {
	service = NewService(repoStub, localityRepoStub, countryRepoStub, nil)
	return func() {
		t.Log("Teardown after test")
		repoStub.Cleanup()
		localityRepoStub.Cleanup()
		countryRepoStub.Cleanup()
	}
}

func validPerson() Person {
	return Person{
		FirstName:   "Amine",
		LastName:    "Benali",
		FirstNameAr: "أمين",
		LastNameAr:  "بن علي",
		Gender:      GenderMale,
	}
}

func storedReferences(t *testing.T) (localityID int64, countryID int64) {
	countryID, err := countryRepoStub.Store(ctx, geo.Country{
		Code:          "DZ",
		DesignationAr: "الجزائر",
		DesignationEn: "Algeria",
		DesignationFr: "Algérie",
	})
	require.NoError(t, err)
	localityID, err = localityRepoStub.Store(ctx, geo.Locality{
		PostalCode:    "16000",
		DesignationAr: "الجزائر الوسطى",
		DesignationEn: "Algiers Centre",
		DesignationFr: "Alger Centre",
		StateID:       1,
	})
	require.NoError(t, err)
	return localityID, countryID
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create a person without optional references", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, validPerson())

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Benali Amine", created.FullName())
	})

	t.Run("should create a person with birth locality and nationality", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		localityID, countryID := storedReferences(t)
		birthDate := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
		person := validPerson()
		person.BirthDate = &birthDate
		person.BirthLocalityID = &localityID
		person.NationalityID = &countryID

		// when
		created, err := service.Create(ctx, person)

		// then
		assert.NoError(t, err)
		require.NotNil(t, created.BirthLocalityID)
		assert.Equal(t, localityID, *created.BirthLocalityID)
	})

	t.Run("should reject unknown birth locality", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		unknownID := int64(99)
		person := validPerson()
		person.BirthLocalityID = &unknownID

		// when
		_, err := service.Create(ctx, person)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject unknown nationality", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		unknownID := int64(99)
		person := validPerson()
		person.NationalityID = &unknownID

		// when
		_, err := service.Create(ctx, person)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should reject missing names", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		person := validPerson()
		person.LastName = ""

		// when
		_, err := service.Create(ctx, person)

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})

	t.Run("should reject unknown gender", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		person := validPerson()
		person.Gender = "X"

		// when
		_, err := service.Create(ctx, person)

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}

func TestServiceImpl_Update(t *testing.T) {
	t.Run("should update an existing person", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, validPerson())
		require.NoError(t, err)

		// when
		created.LastName = "Cherif"
		updated, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "Cherif", updated.LastName)
	})

	t.Run("should return not found for unknown person", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		person := validPerson()
		person.ID = 99

		// when
		_, err := service.Update(ctx, person)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestServiceImpl_Search(t *testing.T) {
	t.Run("should match on first or last name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, validPerson())
		require.NoError(t, err)
		other := validPerson()
		other.FirstName = "Karim"
		other.LastName = "Haddad"
		_, err = service.Create(ctx, other)
		require.NoError(t, err)

		// when
		found, err := service.Search(ctx, "benali", rest.PageRequest{Page: 0, Size: 10, SortBy: "lastName"})

		// then
		assert.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Benali", found[0].LastName)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an existing person", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, validPerson())
		require.NoError(t, err)

		// when
		err = service.Delete(ctx, created.ID)

		// then
		assert.NoError(t, err)
		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("should return not found for unknown person", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		err := service.Delete(ctx, 99)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}
