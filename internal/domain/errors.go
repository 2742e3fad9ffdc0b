package domain

import "errors"

var (
	// ErrSkinTypeNotFound is returned when a skin type name has no row in the store
	ErrSkinTypeNotFound = errors.New("skin type not found")

	// ErrConcernNotFound is returned when a concern name has no row in the store
	ErrConcernNotFound = errors.New("skin concern not found")

	// ErrMalformedProduct is returned when a catalog row is missing required fields
	ErrMalformedProduct = errors.New("malformed product record")

	// ErrInvalidPriceRange is returned when user-supplied price bounds are invalid
	ErrInvalidPriceRange = errors.New("invalid price range")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrStoreUnavailable is returned when the taxonomy/catalog store cannot be reached
	ErrStoreUnavailable = errors.New("taxonomy store unavailable")

	// ErrClassifierUnavailable is returned when the image classifier call fails
	ErrClassifierUnavailable = errors.New("image classifier unavailable")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
