package generator

import (
	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeStats summarises suppliers. It never fails; an empty input reports an
// average rating of 0.
func ComputeStats(suppliers []domain.Supplier) domain.Stats {
	stats := domain.Stats{Total: len(suppliers)}
	if len(suppliers) == 0 {
		return stats
	}

	sum := decimal.Zero
	seen := make(map[string]struct{})
	for _, s := range suppliers {
		if s.InStock {
			stats.InStock++
		}
		if s.Verified {
			stats.Verified++
		}
		sum = sum.Add(decimal.NewFromFloat(s.Rating))
		seen[s.Category] = struct{}{}
	}

	stats.AverageRating = sum.DivRound(decimal.NewFromInt(int64(len(suppliers))), 2).InexactFloat64()
	stats.Categories = len(seen)
	return stats
}

// DistinctCategories returns the categories present in suppliers in first-seen order.
func DistinctCategories(suppliers []domain.Supplier) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(categories))
	for _, s := range suppliers {
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		out = append(out, s.Category)
	}
	return out
}
