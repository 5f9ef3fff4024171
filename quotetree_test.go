package quotetree_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitsumolabs/quotetree"
	"github.com/mitsumolabs/quotetree/pkg/domain"
)

const treeDoc = `
entry_point: entry
questions:
  entry:
    type: free_text
    prompt: What do you need?
    options:
      - category: inventory
        label: Inventory management
        next: q_base
        keywords: [inventory, stock]
      - free_text: true
        label: Something else
  q_base:
    prompt: Which edition?
    selection_type: base
    options:
      - { key: standard, label: Standard }
    next: q_users
  q_users:
    prompt: How many users?
    selection_type: scale
    scale_key: users
    options:
      - { key: u10, label: Up to 10 }
      - { key: u50, label: 11 to 50 }
    next: result
`

const pricesDoc = `
categories:
  inventory:
    bases:
      - { key: standard, min: 80, std: 100, max: 130 }
common_options: {}
`

const rulesDoc = `
scale_types:
  inventory: users_and_locations
factors:
  users_and_locations:
    users: { u10: 1.0, u50: 1.2 }
`

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"tree.yaml":   treeDoc,
		"prices.yaml": pricesDoc,
		"rules.yaml":  rulesDoc,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestFacade_Integration(t *testing.T) {
	dir := writeConfig(t)

	engine, err := quotetree.New(dir)
	if err != nil {
		t.Fatalf("Failed to initialize engine with path %s: %v", dir, err)
	}

	ctx := context.Background()
	s := engine.Start(ctx)
	if s.CurrentStepID != "entry" {
		t.Errorf("Expected initial step 'entry', got %q", s.CurrentStepID)
	}

	actions, terminal, err := engine.Render(ctx, s)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if terminal {
		t.Error("Fresh session must not be terminal")
	}
	if len(actions) == 0 {
		t.Fatal("Expected actions from the entry step, got 0")
	}

	// Premature estimate must be rejected.
	if _, err := engine.Estimate(s); err != domain.ErrNotTerminal {
		t.Errorf("Estimate before completion = %v, want ErrNotTerminal", err)
	}

	// Walk the tree to completion.
	for _, key := range []string{"inventory", "standard", "u50"} {
		s, err = engine.Navigate(ctx, s, domain.Action{Type: domain.ActionChoose, Key: key})
		if err != nil {
			t.Fatalf("Navigate(%q) failed: %v", key, err)
		}
	}

	if !s.Completed {
		t.Fatalf("Expected completed session, still at %q", s.CurrentStepID)
	}
	est, err := engine.Estimate(s)
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if est.Std != 120 { // ceil(100 * 1.2)
		t.Errorf("Std = %v, want 120", est.Std)
	}

	actions, terminal, err = engine.Render(ctx, s)
	if err != nil {
		t.Fatalf("Render of completed session failed: %v", err)
	}
	if !terminal {
		t.Error("Completed session must render as terminal")
	}
	if len(actions) != 1 || actions[0].Type != domain.ActionRenderEstimate {
		t.Errorf("Expected a single estimate action, got %+v", actions)
	}
}

func TestFacade_DefaultKeywordClassifier(t *testing.T) {
	dir := writeConfig(t)
	engine, err := quotetree.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	s := engine.Start(ctx)

	// Two keyword hits resolve with high confidence and advance directly.
	s, err = engine.Navigate(ctx, s, domain.Action{Type: domain.ActionFreeText, Text: "inventory of our stock"})
	if err != nil {
		t.Fatalf("Navigate failed: %v", err)
	}
	if s.Category != "inventory" {
		t.Errorf("Category = %q, want inventory", s.Category)
	}
	if s.CurrentStepID != "q_base" {
		t.Errorf("Step = %q, want q_base", s.CurrentStepID)
	}
}

func TestFacade_Categories(t *testing.T) {
	dir := writeConfig(t)
	engine, err := quotetree.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	cats := quotetree.Categories(engine.Config().Tree)
	if len(cats) != 1 {
		t.Fatalf("Expected 1 category (free-text escape excluded), got %d", len(cats))
	}
	if cats[0].ID != "inventory" || len(cats[0].Keywords) != 2 {
		t.Errorf("Unexpected category: %+v", cats[0])
	}
}

func TestFacade_MissingConfig(t *testing.T) {
	if _, err := quotetree.New(t.TempDir()); err == nil {
		t.Fatal("Expected error for empty config directory")
	}
}
