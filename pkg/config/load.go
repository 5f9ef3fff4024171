package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// Document file names expected inside a configuration directory.
const (
	TreeFile   = "tree.yaml"
	PricesFile = "prices.yaml"
	RulesFile  = "rules.yaml"
)

// Config bundles the three parsed documents.
type Config struct {
	Tree  *domain.Tree
	Book  *PriceBook
	Rules *CalcRules
}

// Load reads and parses the three documents from dir. It does not run the
// authoring-time validation pass; call Config.Validate separately.
func Load(dir string) (*Config, error) {
	treeData, err := os.ReadFile(filepath.Join(dir, TreeFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", TreeFile, err)
	}
	tree, err := ParseTree(treeData)
	if err != nil {
		return nil, err
	}

	priceData, err := os.ReadFile(filepath.Join(dir, PricesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", PricesFile, err)
	}
	book, err := ParsePriceBook(priceData)
	if err != nil {
		return nil, err
	}

	rulesData, err := os.ReadFile(filepath.Join(dir, RulesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", RulesFile, err)
	}
	rules, err := ParseCalcRules(rulesData)
	if err != nil {
		return nil, err
	}

	return &Config{Tree: tree, Book: book, Rules: rules}, nil
}
