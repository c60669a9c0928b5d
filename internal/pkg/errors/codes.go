package errors

import "net/http"

var (
	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrMissingLocation = New(
		"MISSING_LOCATION",
		"Location must contain an address or coordinates",
		http.StatusBadRequest,
	)

	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location could not be geocoded",
		http.StatusNotFound,
	)

	ErrGenerationNotFound = New(
		"GENERATION_NOT_FOUND",
		"Route generation not found",
		http.StatusNotFound,
	)

	ErrNoViableRoute = New(
		"NO_VIABLE_ROUTE",
		"No drivable route found between the locations, try relaxing constraints",
		http.StatusUnprocessableEntity,
	)

	ErrUpstreamUnavailable = New(
		"UPSTREAM_UNAVAILABLE",
		"External routing provider is unavailable",
		http.StatusBadGateway,
	)

	ErrRouteGenerationFailed = New(
		"ROUTE_GENERATION_FAILED",
		"Route generation failed",
		http.StatusInternalServerError,
	)

	ErrDecodeFailed = New(
		"DECODE_ERROR",
		"Malformed encoded polyline",
		http.StatusBadRequest,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
