package domain

import "errors"

var (
	// ErrCatalogUnavailable is returned when the products file is missing,
	// unreadable, or structurally invalid. Fatal for the request.
	ErrCatalogUnavailable = errors.New("product catalog unavailable")
)
