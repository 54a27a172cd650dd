package usecase

import (
	"sort"
	"strings"

	"github.com/shelfwatch/backend/internal/domain"
)

// SearchViews filters views whose name contains the query as a
// case-insensitive substring and ranks them: names starting with the
// query first, then shorter names, ties kept in their pre-sort order.
// An empty query returns the first limit views unre-sorted.
func SearchViews(views []domain.ProductView, query string, limit int) []domain.ProductView {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return truncate(views, limit)
	}

	matches := make([]domain.ProductView, 0, len(views))
	for _, view := range views {
		if strings.Contains(strings.ToLower(view.Name), q) {
			matches = append(matches, view)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		iPrefix, iLen := searchRank(matches[i].Name, q)
		jPrefix, jLen := searchRank(matches[j].Name, q)
		if iPrefix != jPrefix {
			return iPrefix < jPrefix
		}
		return iLen < jLen
	})

	return truncate(matches, limit)
}

// searchRank scores a matched name: 0 for prefix matches, 1 otherwise,
// with name length as the tiebreaker.
func searchRank(name, query string) (int, int) {
	lower := strings.ToLower(name)
	prefix := 1
	if strings.HasPrefix(lower, query) {
		prefix = 0
	}
	return prefix, len(lower)
}

func truncate(views []domain.ProductView, limit int) []domain.ProductView {
	if limit < len(views) {
		return views[:limit]
	}
	return views
}
