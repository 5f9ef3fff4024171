package domain

// Selection is a priced line item. The three tiers are authored
// independently in the price book; nothing here enforces min <= std <= max.
// A Selection is immutable once looked up.
type Selection struct {
	Key string  `json:"key" yaml:"key"`
	Min float64 `json:"min" yaml:"min"`
	Std float64 `json:"std" yaml:"std"`
	Max float64 `json:"max" yaml:"max"`
}

// CommonSelections holds the cross-category add-ons.
type CommonSelections struct {
	ExternalLink  *Selection `json:"external_link,omitempty" yaml:"external_link,omitempty"`
	DataMigration *Selection `json:"data_migration,omitempty" yaml:"data_migration,omitempty"`
}

// Common slot identifiers, matching the price book's common_options keys.
const (
	CommonSlotExternalLink  = "external_link"
	CommonSlotDataMigration = "data_migration"
)

// ScaleSelections holds the raw option keys chosen on scale questions.
// They are not priced items; the calculator resolves them to multiplicative
// factors. An empty string means the question was never answered.
type ScaleSelections struct {
	Users     string `json:"users,omitempty" yaml:"users,omitempty"`
	Locations string `json:"locations,omitempty" yaml:"locations,omitempty"`
	Deadline  string `json:"deadline,omitempty" yaml:"deadline,omitempty"`
}

// Scale dimension identifiers used by scale questions and factor tables.
const (
	ScaleKeyUsers     = "users"
	ScaleKeyLocations = "locations"
	ScaleKeyDeadline  = "deadline"
)

// Estimate is the three-tier output of the calculator. Each tier is rounded
// up to the nearest whole unit so the displayed figure never understates the
// aggregated cost.
type Estimate struct {
	Min float64 `json:"min"`
	Std float64 `json:"std"`
	Max float64 `json:"max"`
}
