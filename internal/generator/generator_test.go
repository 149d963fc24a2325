package generator

import (
	"testing"
	"time"

	"github.com/nathaniellipsey-ai/Supplier-Hub-Final/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2025, 12, 12, 13, 51, 21, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(DefaultCount, refTime)
	b := Generate(DefaultCount, refTime)

	require.Len(t, a, DefaultCount)
	assert.Equal(t, a, b)
}

func TestGenerate_DifferentSeedDiffers(t *testing.T) {
	a := GenerateWithSeed(Seed, 20, refTime)
	b := GenerateWithSeed(Seed+1, 20, refTime)

	assert.NotEqual(t, a, b)
}

func TestGenerate_PrefixIsStable(t *testing.T) {
	// A longer run must start with exactly the shorter run.
	short := Generate(10, refTime)
	long := Generate(50, refTime)

	assert.Equal(t, short, long[:10])
}

func TestGenerate_NonPositiveCount(t *testing.T) {
	assert.Empty(t, Generate(0, refTime))
	assert.Empty(t, Generate(-5, refTime))
	assert.NotNil(t, Generate(0, refTime))
}

func TestGenerate_IDsUniqueAndIncreasing(t *testing.T) {
	suppliers := Generate(500, refTime)

	seen := make(map[string]struct{}, len(suppliers))
	for i, s := range suppliers {
		assert.Equal(t, FormatID(i+1), s.ID)
		_, dup := seen[s.ID]
		assert.False(t, dup, "duplicate id %s", s.ID)
		seen[s.ID] = struct{}{}
		if i > 0 {
			assert.Less(t, suppliers[i-1].ID, s.ID)
		}
	}
}

func TestGenerate_RangeInvariants(t *testing.T) {
	nowMs := refTime.UnixMilli()

	for _, s := range Generate(1000, refTime) {
		assert.GreaterOrEqual(t, s.Rating, 3.0, s.ID)
		assert.LessOrEqual(t, s.Rating, 5.0, s.ID)
		assert.GreaterOrEqual(t, s.StockLevel, 0, s.ID)
		assert.Less(t, s.StockLevel, 10000, s.ID)
		assert.GreaterOrEqual(t, len(s.Products), 1, s.ID)
		assert.LessOrEqual(t, len(s.Products), 5, s.ID)
		assert.GreaterOrEqual(t, s.Reviews, 50, s.ID)
		assert.Less(t, s.Reviews, 1050, s.ID)
		assert.GreaterOrEqual(t, s.MinimumOrder, 10, s.ID)
		assert.Less(t, s.MinimumOrder, 110, s.ID)
		assert.LessOrEqual(t, len(s.Certifications), 3, s.ID)
		assert.Contains(t, categories, s.Category)
		assert.Equal(t, nowMs, s.LastStockCheck)
		assert.LessOrEqual(t, s.LastUpdated, nowMs)
		assert.Greater(t, s.LastUpdated, nowMs-recencyWindowMs)
	}
}

func TestGenerate_GoldenRecords(t *testing.T) {
	suppliers := Generate(DefaultCount, refTime)
	nowMs := refTime.UnixMilli()

	first := domain.Supplier{
		ID:             "SUP-0001",
		Name:           "Quantum Logistics",
		Category:       "Furniture",
		Location:       "Atlanta, GA",
		Rating:         3.42,
		Reviews:        456,
		Description:    "Custom solutions for industry leaders",
		Products:       []string{"Raw Textiles", "HVAC Systems"},
		InStock:        true,
		StockLevel:     2211,
		MinimumOrder:   31,
		LeadTime:       "14-11 days",
		Certifications: []string{"ISO 9001", "ISO 14001", "OSHA Certified"},
		ResponseTime:   "1 hours",
		ContractTerms:  "26 months",
		LastUpdated:    nowMs - 595220370,
		LastStockCheck: nowMs,
		Verified:       true,
	}
	assert.Equal(t, first, suppliers[0])

	second := suppliers[1]
	assert.Equal(t, "TechCorp Industries", second.Name)
	assert.Equal(t, "Construction Materials", second.Category)
	assert.Equal(t, 3.94, second.Rating)
	assert.Equal(t, []string{"Safety Equipment", "Industrial Fasteners"}, second.Products)
	assert.False(t, second.InStock)
	assert.Equal(t, 8164, second.StockLevel)
	assert.Equal(t, []string{"ISO 9001", "ISO 14001"}, second.Certifications)

	last := suppliers[DefaultCount-1]
	assert.Equal(t, "SUP-0150", last.ID)
	assert.Equal(t, "EliteGoods Distributors", last.Name)
	assert.Equal(t, "Electronics", last.Category)
	assert.Equal(t, 3.07, last.Rating)
	assert.Equal(t, []string{"Chemical Compounds", "Packaging Materials", "Packaging Materials", "Concrete Mix"}, last.Products)
	assert.Equal(t, 6390, last.StockLevel)

	assert.Equal(t, nowMs-92889999, suppliers[85].LastUpdated)
}

func TestRecencyOffset_AppliesFactorsInOrder(t *testing.T) {
	tests := []struct {
		state int
		want  int64
	}{
		{0, 0},
		{135, 349999},
		{189, 489999},
		{270, 699999},
		{378, 979999},
		{233279, 604797407},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, recencyOffset(float64(tt.state)/float64(lcgModulus)), "state %d", tt.state)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{3.125, 3.13}, // exact binary ties round up
		{3.375, 3.38},
		{3.625, 3.63},
		{4.125, 4.13},
		{4.625, 4.63},
		{2.675, 2.67}, // stored just below the tie
		{1.005, 1.0},
		{3.4199999, 3.42},
		{5, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, round2(tt.in), "round2(%v)", tt.in)
	}
}

func TestCategories_ReturnsCopy(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 8)

	cats[0] = "mutated"
	assert.Equal(t, "Construction Materials", Categories()[0])
}

func TestFormatID(t *testing.T) {
	assert.Equal(t, "SUP-0001", FormatID(1))
	assert.Equal(t, "SUP-0150", FormatID(150))
	assert.Equal(t, "SUP-12345", FormatID(12345))
}
