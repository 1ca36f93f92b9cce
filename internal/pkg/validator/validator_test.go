package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airport-locator/internal/pkg/errors"
	"github.com/airport-locator/internal/usecase/dto"
)

func TestValidate_SearchRequest(t *testing.T) {
	assert.NoError(t, Validate(dto.SearchRequest{Query: "dfw"}))
	assert.NoError(t, Validate(dto.SearchRequest{Query: "dfw", ISOCountry: "us", Unit: "MI"}))

	rf := 3.5
	err := Validate(dto.SearchRequest{Query: "", ISOCountry: "USA", Unit: "nm", RouteFactor: &rf})
	require.Error(t, err)

	byField := map[string]*errors.AppError{}
	for _, e := range Errors(err) {
		byField[e.Field] = e
	}

	require.Contains(t, byField, "query")
	assert.Equal(t, "VALIDATION_ERROR", byField["query"].Code)
	assert.Equal(t, "query is required", byField["query"].Message)

	require.Contains(t, byField, "isoCountry")
	assert.Equal(t, "INVALID_COUNTRY", byField["isoCountry"].Code)

	require.Contains(t, byField, "unit")
	assert.Equal(t, "INVALID_UNIT", byField["unit"].Code)

	require.Contains(t, byField, "routeFactor")
	assert.Equal(t, "INVALID_ROUTE_FACTOR", byField["routeFactor"].Code)
}

func TestValidate_InvalidateCacheRequest(t *testing.T) {
	assert.NoError(t, Validate(dto.InvalidateCacheRequest{Prefix: "search:nearest:"}))

	errs := Errors(Validate(dto.InvalidateCacheRequest{Prefix: "session:"}))
	require.Len(t, errs, 1)
	assert.Equal(t, "prefix", errs[0].Field)
	assert.Equal(t, "INVALID_CACHE_PREFIX", errs[0].Code)
}

func TestErrors_NonValidatorError(t *testing.T) {
	assert.Nil(t, Errors(nil))

	errs := Errors(assert.AnError)
	require.Len(t, errs, 1)
	assert.Equal(t, errors.ErrValidation, errs[0])
}
