package domain

import "errors"

var (
	// ErrEmptyQuery is returned when a search is submitted with a blank query
	ErrEmptyQuery = errors.New("search query is required")

	// ErrUpstreamFailure is returned when a single aggregation API attempt fails
	ErrUpstreamFailure = errors.New("aggregation API request failed")

	// ErrSearchFailed is returned when both the primary and the fallback
	// attempts fail; no products are available for the query
	ErrSearchFailed = errors.New("search failed on primary and fallback attempts")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
