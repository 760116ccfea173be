package catalog

import "errors"

var (
	ErrFetchFailed      = errors.New("catalog: failed to fetch pricing catalog")
	ErrUnexpectedStatus = errors.New("catalog: pricing endpoint returned non-2xx status")
	ErrMalformedBody    = errors.New("catalog: failed to decode pricing response")
	ErrEmptyCatalog     = errors.New("catalog: pricing response contains no products")
)
