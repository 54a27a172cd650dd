package usecase

import (
	"context"

	"github.com/shelfwatch/backend/internal/domain"
)

// ViewService joins the product catalog against the price snapshot log
// into response-ready views. It is stateless: both sources are loaded
// fresh on every call, so concurrent requests never share data.
type ViewService struct {
	catalog   domain.CatalogSource
	snapshots domain.SnapshotSource
}

// NewViewService creates a view service over the given feed sources.
func NewViewService(catalog domain.CatalogSource, snapshots domain.SnapshotSource) *ViewService {
	return &ViewService{
		catalog:   catalog,
		snapshots: snapshots,
	}
}

// BuildProductViews emits one view per catalog product in source order,
// with price fields from the product's latest snapshot or nil when no
// snapshot matches. len(result) always equals the catalog length.
func (s *ViewService) BuildProductViews(ctx context.Context) ([]domain.ProductView, error) {
	products, err := s.catalog.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	latest := latestByProduct(s.snapshots.LoadSnapshots(ctx))

	views := make([]domain.ProductView, 0, len(products))
	for _, product := range products {
		key := ResolveKey(product.Key, product.Name, product.PackagingFormat)
		view := domain.ProductView{
			ProductKey:      key,
			Name:            product.Name,
			PackagingFormat: optional(product.PackagingFormat),
			Image:           optional(product.Image),
		}
		if snapshot, ok := latest[NormalizeKey(key)]; ok {
			view.Price = optional(snapshot.Price)
			view.UnitPrice = optional(snapshot.UnitPrice)
			view.SourceURL = optional(snapshot.SourceURL)
			view.ScrapedAt = optional(snapshot.ScrapedAt)
		}
		views = append(views, view)
	}

	return views, nil
}

// BuildCompareViews emits one comparison view per requested key:
// normalized, de-duplicated preserving first occurrence, empties
// dropped. A key without a catalog match still yields a view with the
// bare key as name, so callers can compare ad hoc keys.
func (s *ViewService) BuildCompareViews(ctx context.Context, requestedKeys []string) ([]domain.ProductCompareView, error) {
	keys := normalizeRequestedKeys(requestedKeys)
	if len(keys) == 0 {
		return []domain.ProductCompareView{}, nil
	}

	products, err := s.catalog.LoadProducts(ctx)
	if err != nil {
		return nil, err
	}
	latest := latestByProductStore(s.snapshots.LoadSnapshots(ctx))

	// First catalog occurrence wins when two products share a key.
	productsByKey := make(map[string]domain.Product, len(products))
	for _, product := range products {
		key := NormalizeKey(ResolveKey(product.Key, product.Name, product.PackagingFormat))
		if _, ok := productsByKey[key]; !ok {
			productsByKey[key] = product
		}
	}

	views := make([]domain.ProductCompareView, 0, len(keys))
	for _, key := range keys {
		view := domain.ProductCompareView{
			ProductKey: key,
			Name:       key,
			Prices:     make(map[string]domain.StorePrice),
		}
		if product, ok := productsByKey[key]; ok {
			view.Name = product.Name
			view.PackagingFormat = optional(product.PackagingFormat)
			view.Image = optional(product.Image)
		}
		for group, snapshot := range latest {
			if group.product != key {
				continue
			}
			view.Prices[group.store] = domain.StorePrice{
				Price:     snapshot.Price,
				UnitPrice: optional(snapshot.UnitPrice),
				SourceURL: optional(snapshot.SourceURL),
				ScrapedAt: snapshot.ScrapedAt,
			}
		}
		views = append(views, view)
	}

	return views, nil
}

// normalizeRequestedKeys trims, lowercases, drops empties, and
// de-duplicates preserving first-occurrence order.
func normalizeRequestedKeys(requested []string) []string {
	keys := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, raw := range requested {
		key := NormalizeKey(raw)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}
	return keys
}

// optional maps "" to nil so absent fields serialize as explicit null.
func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
