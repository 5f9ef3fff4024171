package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// PriceBook is the static price table: per-category bases and options, a
// global common-option map and optional per-category common overrides.
type PriceBook struct {
	Categories    map[string]CategoryPrices   `yaml:"categories"`
	CommonOptions map[string]domain.Selection `yaml:"common_options"`
}

// CategoryPrices holds the priced items of one system category.
type CategoryPrices struct {
	Bases           []domain.Selection          `yaml:"bases"`
	Options         []domain.Selection          `yaml:"options"`
	CommonOverrides map[string]domain.Selection `yaml:"common_overrides"`
}

// ParsePriceBook unmarshals a price book document.
func ParsePriceBook(data []byte) (*PriceBook, error) {
	var book PriceBook
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("failed to parse price book: %w", err)
	}
	return &book, nil
}

// Base looks up a base item in the given category.
func (b *PriceBook) Base(category, key string) (domain.Selection, bool) {
	for _, s := range b.Categories[category].Bases {
		if s.Key == key {
			return s, true
		}
	}
	return domain.Selection{}, false
}

// Option looks up an additive option item in the given category.
func (b *PriceBook) Option(category, key string) (domain.Selection, bool) {
	for _, s := range b.Categories[category].Options {
		if s.Key == key {
			return s, true
		}
	}
	return domain.Selection{}, false
}

// Common resolves a cross-category add-on for the given category,
// preferring the category's override over the global entry.
func (b *PriceBook) Common(category, slot string) (domain.Selection, bool) {
	if s, ok := b.Categories[category].CommonOverrides[slot]; ok {
		return s, true
	}
	s, ok := b.CommonOptions[slot]
	return s, ok
}
