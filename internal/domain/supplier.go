package domain

// Supplier is a single catalog record. Values are treated as immutable once
// published in a Snapshot; a tick produces new values instead of editing old ones.
type Supplier struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Location       string   `json:"location"`
	Rating         float64  `json:"rating"`
	Reviews        int      `json:"reviews"`
	Description    string   `json:"description"`
	Products       []string `json:"products"`
	InStock        bool     `json:"inStock"`
	StockLevel     int      `json:"stockLevel"`
	MinimumOrder   int      `json:"minimumOrder"`
	LeadTime       string   `json:"leadTime"`
	Certifications []string `json:"certifications"`
	ResponseTime   string   `json:"responseTime"`
	ContractTerms  string   `json:"contractTerms"`
	LastUpdated    int64    `json:"lastUpdated"`    // epoch ms
	LastStockCheck int64    `json:"lastStockCheck"` // epoch ms
	Verified       bool     `json:"verified"`
}

// Stats summarises a sequence of suppliers.
type Stats struct {
	Total         int     `json:"total"`
	InStock       int     `json:"inStock"`
	Verified      int     `json:"verified"`
	AverageRating float64 `json:"averageRating"`
	Categories    int     `json:"categories"`
}

// CatalogStats is Stats over a single snapshot, with that snapshot's
// categories in first-seen order and its timestamp.
type CatalogStats struct {
	Stats
	CategoryNames []string
	Timestamp     int64 // epoch ms
}
