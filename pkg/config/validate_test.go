package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildConfig parses the three documents directly, failing the test on a
// parse error so validation cases stay focused on semantic defects.
func buildConfig(t *testing.T, tree, prices, rules string) *Config {
	t.Helper()
	parsedTree, err := ParseTree([]byte(tree))
	require.NoError(t, err)
	book, err := ParsePriceBook([]byte(prices))
	require.NoError(t, err)
	parsedRules, err := ParseCalcRules([]byte(rules))
	require.NoError(t, err)
	return &Config{Tree: parsedTree, Book: book, Rules: parsedRules}
}

func TestValidate_CleanConfig(t *testing.T) {
	cfg := buildConfig(t, testTree, testPrices, testRules)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_DanglingSuccessor(t *testing.T) {
	tree := `
entry_point: entry
questions:
  entry:
    type: free_text
    prompt: hi
    options:
      - category: inventory
        label: Inventory
        next: nowhere
  nowhere_else:
    prompt: q
    selection_type: base
    options:
      - { key: a, label: A, next: also_missing }
    next: result
`
	cfg := buildConfig(t, tree, testPrices, testRules)
	err := cfg.Validate()
	require.Error(t, err)

	errs := ValidationErrors(err)
	require.NotEmpty(t, errs)

	var reported []string
	for _, e := range errs {
		reported = append(reported, e.Error())
	}
	joined := strings.Join(reported, "\n")
	assert.Contains(t, joined, `"nowhere"`)
	assert.Contains(t, joined, `"also_missing"`)
}

func TestValidate_ResultIsNotDangling(t *testing.T) {
	// The terminal sentinel is not a tree node; referencing it is fine.
	tree := `
entry_point: entry
questions:
  entry:
    type: free_text
    prompt: hi
    options:
      - category: inventory
        label: Inventory
        next: q
  q:
    prompt: q
    selection_type: base
    options:
      - { key: a, label: A }
    next: result
`
	cfg := buildConfig(t, tree, testPrices, testRules)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_ConditionalDefects(t *testing.T) {
	tree := `
entry_point: entry
questions:
  entry:
    type: free_text
    prompt: hi
    options:
      - category: inventory
        label: Inventory
        next: cond
  cond:
    type: conditional
    condition: { kind: phase_of_moon, value: full }
    then: result
`
	cfg := buildConfig(t, tree, testPrices, testRules)
	err := cfg.Validate()
	require.Error(t, err)

	errs := ValidationErrors(err)
	joined := ""
	for _, e := range errs {
		joined += e.Error() + "\n"
	}
	assert.Contains(t, joined, "phase_of_moon")
	assert.Contains(t, joined, "both then and else")
}

func TestValidate_EnumDefects(t *testing.T) {
	tree := `
entry_point: entry
questions:
  entry:
    type: free_text
    prompt: hi
    options:
      - category: inventory
        label: Inventory
        next: q_bad
  q_bad:
    prompt: q
    selection_type: sideways
    next: result
  q_slot:
    prompt: q
    selection_type: common
    common_slot: coffee_machine
    next: result
  q_scale:
    prompt: q
    selection_type: scale
    scale_key: altitude
    next: result
`
	cfg := buildConfig(t, tree, testPrices, testRules)
	err := cfg.Validate()
	require.Error(t, err)

	errs := ValidationErrors(err)
	assert.Len(t, errs, 3)
}

func TestValidate_UnknownScaleTypeReferences(t *testing.T) {
	tree := `
entry_point: entry
questions:
  entry:
    type: free_text
    prompt: hi
    options:
      - category: inventory
        label: Inventory
        next: q_deadline
  q_deadline:
    prompt: when
    selection_type: scale
    scale_key: deadline
    options_by_scale_type:
      not_a_scale_type:
        - { key: a, label: A }
    next: result
`
	rules := `
scale_types:
  inventory: users_and_locations
  hr: ghost_type
factors:
  users_and_locations:
    users: { u10: 1.0 }
`
	cfg := buildConfig(t, tree, testPrices, rules)
	err := cfg.Validate()
	require.Error(t, err)

	joined := err.Error()
	assert.Contains(t, joined, "not_a_scale_type")
	assert.Contains(t, joined, "ghost_type")
}

func TestValidate_EntryPointMissing(t *testing.T) {
	tree := `
questions:
  q:
    prompt: q
    selection_type: base
    next: result
`
	cfg := buildConfig(t, tree, testPrices, testRules)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry_point is required")
}

func TestValidate_EntryPointMustBeFreeText(t *testing.T) {
	tree := `
entry_point: q
questions:
  q:
    prompt: q
    selection_type: base
    next: result
`
	cfg := buildConfig(t, tree, testPrices, testRules)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "free_text")
}

func TestValidate_EntryCategoryWithoutScaleType(t *testing.T) {
	tree := `
entry_point: entry
questions:
  entry:
    type: free_text
    prompt: hi
    options:
      - category: submarines
        label: Submarine fleet management
        next: result
`
	cfg := buildConfig(t, tree, testPrices, testRules)
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "submarines")
}
