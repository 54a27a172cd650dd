package domain

import "context"

// CatalogSource loads product records from the scraper feed.
// Implementations return records in source order and skip malformed
// entries; a missing or invalid catalog is an error.
type CatalogSource interface {
	LoadProducts(ctx context.Context) ([]Product, error)
}

// SnapshotSource loads price snapshot records from the scraper feed.
// Price data is supplementary, so implementations never fail: any
// read or parse problem yields an empty sequence.
type SnapshotSource interface {
	LoadSnapshots(ctx context.Context) []PriceSnapshot
}
