package usecase

import (
	"strings"

	"github.com/shelfwatch/backend/internal/domain"
)

// storeKey groups snapshots for the comparison view. The product
// component is normalized; the store component is trimmed but keeps its
// case, since it doubles as the display name.
type storeKey struct {
	product string
	store   string
}

// latestByProduct collapses the snapshot log to the latest snapshot per
// normalized product key. ISO-8601 timestamps order correctly as
// strings; >= keeps the last-seen snapshot when timestamps tie.
func latestByProduct(snapshots []domain.PriceSnapshot) map[string]domain.PriceSnapshot {
	latest := make(map[string]domain.PriceSnapshot)
	for _, snapshot := range snapshots {
		key := NormalizeKey(snapshot.ProductKey)
		if key == "" {
			continue
		}
		current, ok := latest[key]
		if !ok || snapshot.ScrapedAt >= current.ScrapedAt {
			latest[key] = snapshot
		}
	}
	return latest
}

// latestByProductStore collapses the snapshot log to the latest snapshot
// per (product, store). Snapshots without a store name carry no store
// attribution and are excluded from comparison entirely.
func latestByProductStore(snapshots []domain.PriceSnapshot) map[storeKey]domain.PriceSnapshot {
	latest := make(map[storeKey]domain.PriceSnapshot)
	for _, snapshot := range snapshots {
		key := storeKey{
			product: NormalizeKey(snapshot.ProductKey),
			store:   strings.TrimSpace(snapshot.Store),
		}
		if key.product == "" || key.store == "" {
			continue
		}
		current, ok := latest[key]
		if !ok || snapshot.ScrapedAt >= current.ScrapedAt {
			latest[key] = snapshot
		}
	}
	return latest
}
