package errors

import "net/http"

var (
	ErrInvalidFilter = New(
		"INVALID_FILTER",
		"Unknown filter value",
		http.StatusBadRequest,
	)

	ErrInvalidBBox = New(
		"INVALID_BBOX",
		"Invalid bounding box, expected minLon,minLat,maxLon,maxLat",
		http.StatusBadRequest,
	)

	ErrFeatureNotFound = New(
		"FEATURE_NOT_FOUND",
		"Feature not found",
		http.StatusNotFound,
	)

	ErrDatasetError = New(
		"DATASET_ERROR",
		"Dataset operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
