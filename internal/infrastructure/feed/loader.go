package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/shelfwatch/backend/internal/domain"
)

// Loader reads the scraper's flat JSON output files. It holds no state
// beyond the two paths: every call re-reads from disk so a scraper run
// is picked up by the next request.
type Loader struct {
	productsPath  string
	snapshotsPath string
}

// NewLoader creates a loader over the given feed files.
func NewLoader(productsPath, snapshotsPath string) *Loader {
	return &Loader{
		productsPath:  productsPath,
		snapshotsPath: snapshotsPath,
	}
}

// LoadProducts reads the product catalog, preserving source order.
// Individual malformed elements are skipped; a missing file, invalid
// JSON, or a non-array top level is fatal and wraps
// domain.ErrCatalogUnavailable with the offending path.
func (l *Loader) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	elements, err := readArray(l.productsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	products := make([]domain.Product, 0, len(elements))
	for _, element := range elements {
		product, err := parseProduct(element)
		if err != nil {
			continue
		}
		products = append(products, product)
	}

	return products, nil
}

// LoadSnapshots reads the price snapshot log. Price data is
// supplementary, so every failure mode degrades to an empty sequence:
// missing file, unreadable file, invalid JSON, non-array top level.
func (l *Loader) LoadSnapshots(ctx context.Context) []domain.PriceSnapshot {
	elements, err := readArray(l.snapshotsPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[FEED] Ignoring snapshot file %s: %v", l.snapshotsPath, err)
		}
		return nil
	}

	snapshots := make([]domain.PriceSnapshot, 0, len(elements))
	for _, element := range elements {
		snapshot, err := parseSnapshot(element)
		if err != nil {
			continue
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots
}

// readArray reads a file expected to hold a JSON array and returns its
// elements undecoded, so per-element parse failures stay per-element.
func readArray(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("%s is not a JSON array: %v", path, err)
	}

	return elements, nil
}

var errMalformedRecord = errors.New("malformed record")

// parseProduct coerces one catalog element. The element must be an
// object with a string name; other fields are best-effort.
func parseProduct(element json.RawMessage) (domain.Product, error) {
	fields, err := objectFields(element)
	if err != nil {
		return domain.Product{}, err
	}

	name, ok := fields["name"].(string)
	if !ok {
		return domain.Product{}, errMalformedRecord
	}

	return domain.Product{
		Key:             stringField(fields, "product_key"),
		Name:            name,
		PackagingFormat: stringField(fields, "packaging_format"),
		Image:           stringField(fields, "image"),
	}, nil
}

// parseSnapshot coerces one snapshot element. product_key, price, and
// scraped_at are required; supermarket_name, unit_price, and source_url
// are best-effort.
func parseSnapshot(element json.RawMessage) (domain.PriceSnapshot, error) {
	fields, err := objectFields(element)
	if err != nil {
		return domain.PriceSnapshot{}, err
	}

	key, ok := fields["product_key"].(string)
	if !ok || key == "" {
		return domain.PriceSnapshot{}, errMalformedRecord
	}
	price, ok := fields["price"].(string)
	if !ok {
		return domain.PriceSnapshot{}, errMalformedRecord
	}
	scrapedAt, ok := fields["scraped_at"].(string)
	if !ok {
		return domain.PriceSnapshot{}, errMalformedRecord
	}

	return domain.PriceSnapshot{
		ProductKey: key,
		Store:      stringField(fields, "supermarket_name"),
		Price:      price,
		UnitPrice:  stringField(fields, "unit_price"),
		SourceURL:  stringField(fields, "source_url"),
		ScrapedAt:  scrapedAt,
	}, nil
}

// objectFields decodes an element that must be a JSON object.
func objectFields(element json.RawMessage) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(element, &fields); err != nil {
		return nil, errMalformedRecord
	}
	return fields, nil
}

// stringField returns the named field when it is a string, "" otherwise.
func stringField(fields map[string]any, name string) string {
	value, _ := fields[name].(string)
	return value
}
