package generator

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultCount is the catalog size used when none is configured.
	DefaultCount = 150
	// IDPrefix prefixes every supplier identifier.
	IDPrefix = "SUP"

	maxProducts       = 5
	recencyWindowMs   = 7 * 24 * 60 * 60 * 1000
	exactDigits       = 60
	inStockThreshold  = 0.2
	certThreshold     = 0.3
	verifiedThreshold = 0.1
)

// Generate returns count suppliers derived from Seed. now anchors the
// lastUpdated and lastStockCheck timestamps. count <= 0 yields an empty slice.
func Generate(count int, now time.Time) []domain.Supplier {
	return GenerateWithSeed(Seed, count, now)
}

// GenerateWithSeed is Generate with an explicit seed.
func GenerateWithSeed(seed int64, count int, now time.Time) []domain.Supplier {
	if count <= 0 {
		return []domain.Supplier{}
	}

	rng := NewRandom(seed)
	nowMs := now.UnixMilli()
	out := make([]domain.Supplier, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, nextSupplier(rng, i, nowMs))
	}
	return out
}

// nextSupplier consumes draws in the fixed per-record order.
func nextSupplier(rng *Random, index int, nowMs int64) domain.Supplier {
	seed := supplierSeeds[rng.Intn(len(supplierSeeds))%len(supplierSeeds)]
	category := categories[rng.Intn(len(categories))%len(categories)]

	productCount := rng.Intn(maxProducts) + 1
	selected := make([]string, 0, productCount)
	for range productCount {
		selected = append(selected, products[rng.Intn(len(products))%len(products)])
	}

	s := domain.Supplier{
		ID:       FormatID(index),
		Name:     seed.name,
		Category: category,
		Location: seed.city + ", " + seed.state,
		Products: selected,
	}

	// The conversion keeps the multiply and add from being fused.
	s.Rating = round2(float64(rng.Next()*2) + 3)
	s.Reviews = rng.Intn(1000) + 50
	s.Description = descriptions[rng.Intn(len(descriptions))%len(descriptions)]
	s.InStock = rng.Next() > inStockThreshold
	s.StockLevel = rng.Intn(10000)
	s.MinimumOrder = rng.Intn(100) + 10

	leadMin := rng.Intn(14) + 1
	leadMax := rng.Intn(7) + 8
	s.LeadTime = fmt.Sprintf("%d-%d days", leadMin, leadMax)

	certs := make([]string, 0, len(certifications))
	for _, c := range certifications {
		if rng.Next() > certThreshold {
			certs = append(certs, c)
		}
	}
	s.Certifications = certs

	s.ResponseTime = fmt.Sprintf("%d hours", rng.Intn(12)+1)
	s.ContractTerms = fmt.Sprintf("%d months", rng.Intn(24)+12)
	s.LastUpdated = nowMs - recencyOffset(rng.Next())
	s.LastStockCheck = nowMs
	s.Verified = rng.Next() > verifiedThreshold

	return s
}

// FormatID renders the identifier for the 1-based generation index.
func FormatID(index int) string {
	return fmt.Sprintf("%s-%04d", IDPrefix, index)
}

// recencyOffset scales d to a millisecond offset inside the recency window.
// Each factor is applied separately with float64 rounding in between; folding
// them into recencyWindowMs moves some offsets by one millisecond.
func recencyOffset(d float64) int64 {
	return int64(d * 7 * 24 * 60 * 60 * 1000)
}

// round2 rounds the exact binary value of v to two decimals, ties away from
// zero. Formatting with exactDigits loses nothing for ratings, whose fraction
// needs at most 52 decimal digits.
func round2(v float64) float64 {
	exact, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', exactDigits, 64))
	if err != nil {
		return v
	}
	return exact.Round(2).InexactFloat64()
}
