package geo

import (
	"context"
	"testing"

	"github.com/milplan/milplan/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var countryRepoStub = NewStubCountryRepo()

var stateRepoStub = NewStubStateRepo()

var localityRepoStub = NewStubLocalityRepo()

var countryService CountryService

var stateService StateService

var localityService LocalityService

func setup(t *testing.T) func() {
	countryService = NewCountryService(countryRepoStub, nil)
	stateService = NewStateService(stateRepoStub, countryRepoStub, nil)
	localityService = NewLocalityService(localityRepoStub, stateRepoStub, nil)
	return func() {
		t.Log("Teardown after test")
		countryRepoStub.Cleanup()
		stateRepoStub.Cleanup()
		localityRepoStub.Cleanup()
	}
}

func validCountry() Country {
	return Country{
		Code:          "DZ",
		DesignationAr: "الجزائر",
		DesignationEn: "Algeria",
		DesignationFr: "Algérie",
	}
}

func TestCountryServiceImpl_Create(t *testing.T) {
	t.Run("should create a country and uppercase its code", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		country := validCountry()
		country.Code = "dz"

		// when
		created, err := countryService.Create(ctx, country)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "DZ", created.Code)
	})

	t.Run("should reject duplicate code", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := countryService.Create(ctx, validCountry())
		require.NoError(t, err)

		// when
		other := validCountry()
		other.DesignationFr = "Autre"
		_, err = countryService.Create(ctx, other)

		// then
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("should reject malformed code", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		country := validCountry()
		country.Code = "ALGERIA"

		// when
		_, err := countryService.Create(ctx, country)

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})

	t.Run("should reject code containing non-letters", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		country := validCountry()
		country.Code = "D1"

		// when
		_, err := countryService.Create(ctx, country)

		// then
		assert.ErrorIs(t, err, apperr.ErrInvalid)
	})
}

func TestCountryServiceImpl_GetByCode(t *testing.T) {
	t.Run("should find a country by code regardless of case", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := countryService.Create(ctx, validCountry())
		require.NoError(t, err)

		// when
		found, err := countryService.GetByCode(ctx, "dz")

		// then
		assert.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})
}

func TestCountryServiceImpl_Search(t *testing.T) {
	t.Run("should find countries by code or designation", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := countryService.Create(ctx, validCountry())
		require.NoError(t, err)
		_, err = countryService.Create(ctx, Country{
			Code: "TN", DesignationAr: "تونس", DesignationEn: "Tunisia", DesignationFr: "Tunisie",
		})
		require.NoError(t, err)

		// when
		matches, err := countryService.Search(ctx, "alg")

		// then
		assert.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "DZ", matches[0].Code)

		count, err := countryService.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)

		exists, err := countryService.Exists(ctx, matches[0].ID)
		assert.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestStateServiceImpl_ListByCountry(t *testing.T) {
	t.Run("should return only states of the requested country", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		algeria, err := countryService.Create(ctx, validCountry())
		require.NoError(t, err)
		tunisia, err := countryService.Create(ctx, Country{
			Code: "TN", DesignationAr: "تونس", DesignationEn: "Tunisia", DesignationFr: "Tunisie",
		})
		require.NoError(t, err)
		_, err = stateService.Create(ctx, State{
			Code: "16", DesignationAr: "الجزائر", DesignationEn: "Algiers", DesignationFr: "Alger", CountryID: algeria.ID,
		})
		require.NoError(t, err)
		_, err = stateService.Create(ctx, State{
			DesignationAr: "تونس", DesignationEn: "Tunis", DesignationFr: "Tunis", CountryID: tunisia.ID,
		})
		require.NoError(t, err)

		// when
		states, err := stateService.ListByCountry(ctx, algeria.ID)

		// then
		assert.NoError(t, err)
		require.Len(t, states, 1)
		assert.Equal(t, "Algiers", states[0].DesignationEn)
	})

	t.Run("should return not found for unknown country", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := stateService.ListByCountry(ctx, 42)

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestStateServiceImpl_Search(t *testing.T) {
	t.Run("should find states matching the keyword", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		country, err := countryService.Create(ctx, validCountry())
		require.NoError(t, err)
		_, err = stateService.Create(ctx, State{
			Code: "16", DesignationAr: "الجزائر", DesignationEn: "Algiers", DesignationFr: "Alger", CountryID: country.ID,
		})
		require.NoError(t, err)
		_, err = stateService.Create(ctx, State{
			Code: "31", DesignationAr: "وهران", DesignationEn: "Oran", DesignationFr: "Oran", CountryID: country.ID,
		})
		require.NoError(t, err)

		// when
		matches, err := stateService.Search(ctx, "oran")

		// then
		assert.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "31", matches[0].Code)

		count, err := stateService.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestLocalityServiceImpl_Create(t *testing.T) {
	t.Run("should create a locality in an existing state", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		country, err := countryService.Create(ctx, validCountry())
		require.NoError(t, err)
		state, err := stateService.Create(ctx, State{
			Code: "16", DesignationAr: "الجزائر", DesignationEn: "Algiers", DesignationFr: "Alger", CountryID: country.ID,
		})
		require.NoError(t, err)

		// when
		created, err := localityService.Create(ctx, Locality{
			PostalCode: "16000", DesignationAr: "باب الواد", DesignationEn: "Bab El Oued", DesignationFr: "Bab El Oued", StateID: state.ID,
		})

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
	})

	t.Run("should reject unknown state", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := localityService.Create(ctx, Locality{
			DesignationAr: "باب الواد", DesignationEn: "Bab El Oued", DesignationFr: "Bab El Oued", StateID: 99,
		})

		// then
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})
}

func TestLocalityServiceImpl_Search(t *testing.T) {
	t.Run("should find localities by postal code", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		country, err := countryService.Create(ctx, validCountry())
		require.NoError(t, err)
		state, err := stateService.Create(ctx, State{
			Code: "16", DesignationAr: "الجزائر", DesignationEn: "Algiers", DesignationFr: "Alger", CountryID: country.ID,
		})
		require.NoError(t, err)
		_, err = localityService.Create(ctx, Locality{
			PostalCode: "16000", DesignationAr: "باب الواد", DesignationEn: "Bab El Oued", DesignationFr: "Bab El Oued", StateID: state.ID,
		})
		require.NoError(t, err)
		_, err = localityService.Create(ctx, Locality{
			PostalCode: "31000", DesignationAr: "وهران", DesignationEn: "Oran", DesignationFr: "Oran", StateID: state.ID,
		})
		require.NoError(t, err)

		// when
		matches, err := localityService.Search(ctx, "16000")

		// then
		assert.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Bab El Oued", matches[0].DesignationEn)

		count, err := localityService.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
