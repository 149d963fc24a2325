package generator

type supplierSeed struct {
	name  string
	city  string
	state string
}

var supplierSeeds = []supplierSeed{
	{"TechCorp Industries", "San Francisco", "CA"},
	{"Global Materials Ltd", "Dallas", "TX"},
	{"Premium Textiles Inc", "Charlotte", "NC"},
	{"Apex Manufacturing", "Chicago", "IL"},
	{"Summit Supply Chain", "Denver", "CO"},
	{"EliteGoods Distributors", "Houston", "TX"},
	{"Quantum Logistics", "Atlanta", "GA"},
	{"ValueMax Enterprises", "Phoenix", "AZ"},
	{"Pinnacle Products", "Miami", "FL"},
	{"Zenith Trading", "Seattle", "WA"},
	{"ProSource Distribution", "Boston", "MA"},
	{"Nexus Components", "Austin", "TX"},
	{"Stellar Manufacturing", "Portland", "OR"},
	{"Titan Industrial Group", "Cleveland", "OH"},
	{"Horizon Supplies", "Minneapolis", "MN"},
}

var categories = []string{
	"Construction Materials",
	"Electronics",
	"Textiles",
	"Food & Beverage",
	"Packaging",
	"Hardware",
	"Furniture",
	"Home & Garden",
}

var products = []string{
	"Steel Beams",
	"Concrete Mix",
	"Lumber & Wood",
	"Industrial Fasteners",
	"Electrical Components",
	"HVAC Systems",
	"Safety Equipment",
	"Tools & Hardware",
	"Packaging Materials",
	"Raw Textiles",
	"Electronic Modules",
	"Chemical Compounds",
	"Industrial Oils",
	"Sensors & Controls",
	"Custom Components",
}

var descriptions = []string{
	"Leading supplier of premium materials",
	"Trusted partner for manufacturing",
	"Specializing in bulk distribution",
	"Custom solutions for industry leaders",
	"Quality assured production facility",
	"ISO certified operations",
	"Serving Walmart since 2010",
	"Advanced supply chain capabilities",
	"Same-day delivery available",
	"Global sourcing expertise",
}

var certifications = []string{
	"ISO 9001",
	"ISO 14001",
	"OSHA Certified",
}

// Categories returns the closed set of supplier categories.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}
