package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CalcRules declares the category-to-scale-type mapping and, per scale-type,
// the users/locations/deadline factor tables.
type CalcRules struct {
	// ScaleTypes maps a category id to its scale-type name.
	ScaleTypes map[string]string `yaml:"scale_types"`

	// Factors maps scale-type -> dimension (users/locations/deadline) ->
	// option key -> multiplicative factor.
	Factors map[string]map[string]map[string]float64 `yaml:"factors"`
}

// ParseCalcRules unmarshals a calculation rules document.
func ParseCalcRules(data []byte) (*CalcRules, error) {
	var rules CalcRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("failed to parse calculation rules: %w", err)
	}
	return &rules, nil
}
