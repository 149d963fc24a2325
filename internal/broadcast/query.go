package broadcast

import (
	"strings"

	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/generator"
	"golang.org/x/text/cases"
)

// Snapshot returns the current catalog snapshot. The result must not be modified.
func (b *Broadcaster) Snapshot() *domain.Snapshot {
	return b.snapshot.Load()
}

// GetByID returns the supplier with the given id from the current snapshot.
func (b *Broadcaster) GetByID(id string) (domain.Supplier, error) {
	for _, s := range b.snapshot.Load().Suppliers {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Supplier{}, domain.ErrSupplierNotFound
}

// Search filters the current snapshot. See Search.
func (b *Broadcaster) Search(req domain.SearchRequest) []domain.Supplier {
	return Search(b.snapshot.Load().Suppliers, req)
}

// ByCategory returns the suppliers of the current snapshot whose category
// matches category ignoring case.
func (b *Broadcaster) ByCategory(category string) []domain.Supplier {
	fold := cases.Fold()
	want := fold.String(category)

	out := []domain.Supplier{}
	for _, s := range b.snapshot.Load().Suppliers {
		if fold.String(s.Category) == want {
			out = append(out, s)
		}
	}
	return out
}

// Stats summarises the current snapshot. All fields come from the same snapshot.
func (b *Broadcaster) Stats() domain.CatalogStats {
	snap := b.snapshot.Load()
	return domain.CatalogStats{
		Stats:         generator.ComputeStats(snap.Suppliers),
		CategoryNames: generator.DistinctCategories(snap.Suppliers),
		Timestamp:     snap.Timestamp,
	}
}

// Search returns the suppliers matching req. The query is a case-insensitive
// substring match against name, description and location; every filter that is
// set must also hold. The input slice is never modified.
func Search(suppliers []domain.Supplier, req domain.SearchRequest) []domain.Supplier {
	fold := cases.Fold()
	query := fold.String(req.Query)

	out := []domain.Supplier{}
	for _, s := range suppliers {
		if query != "" && !matchesQuery(fold, s, query) {
			continue
		}
		if !matchesFilters(s, req.Filters) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func matchesQuery(fold cases.Caser, s domain.Supplier, query string) bool {
	return strings.Contains(fold.String(s.Name), query) ||
		strings.Contains(fold.String(s.Description), query) ||
		strings.Contains(fold.String(s.Location), query)
}

func matchesFilters(s domain.Supplier, f *domain.SearchFilters) bool {
	if f == nil {
		return true
	}
	if f.MinRating != nil && s.Rating < *f.MinRating {
		return false
	}
	if f.Category != nil && *f.Category != "" && s.Category != *f.Category {
		return false
	}
	if f.InStock != nil && s.InStock != *f.InStock {
		return false
	}
	return true
}
