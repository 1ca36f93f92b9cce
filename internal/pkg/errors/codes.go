package errors

import "net/http"

// Ошибки валидации входных данных
var (
	ErrValidation = New(
		"VALIDATION_ERROR",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrCoordinateOutOfRange = New(
		"COORDINATE_OUT_OF_RANGE",
		"Latitude must be within [-90, 90] and longitude within [-180, 180]",
		http.StatusBadRequest,
	)

	ErrInvalidCountry = New(
		"INVALID_COUNTRY",
		"Country code must be exactly 2 letters",
		http.StatusBadRequest,
	)

	ErrInvalidUnit = New(
		"INVALID_UNIT",
		"Unit must be one of: km, mi",
		http.StatusBadRequest,
	)

	ErrInvalidRouteFactor = New(
		"INVALID_ROUTE_FACTOR",
		"Route factor must be within [0.5, 3.0]",
		http.StatusBadRequest,
	)

	ErrInvalidCachePrefix = New(
		"INVALID_CACHE_PREFIX",
		"Cache prefix must start with the search namespace",
		http.StatusBadRequest,
	)
)

// Ошибки разрешения локации
var (
	ErrUnknownCode = New(
		"UNKNOWN_CODE",
		"Could not resolve airport code",
		http.StatusNotFound,
	)

	ErrUnknownLocation = New(
		"UNKNOWN_LOCATION",
		"Could not resolve location",
		http.StatusNotFound,
	)
)

// Внутренние ошибки
var (
	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
