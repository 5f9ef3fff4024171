package pricing

import (
	"testing"

	"github.com/mitsumolabs/quotetree/pkg/config"
	"github.com/mitsumolabs/quotetree/pkg/domain"
)

func testRules() *config.CalcRules {
	return &config.CalcRules{
		ScaleTypes: map[string]string{
			"inventory":   "users_and_locations",
			"reservation": ScaleTypeDeadlineOnly,
		},
		Factors: map[string]map[string]map[string]float64{
			"users_and_locations": {
				"users":     {"u10": 1.0, "u50": 1.2, "u200": 1.5},
				"locations": {"single": 1.0, "multi_2_5": 1.3},
				"deadline":  {"standard": 1.0, "rush": 1.25},
			},
			ScaleTypeDeadlineOnly: {
				"deadline": {"flexible": 0.9, "asap": 1.4},
			},
		},
	}
}

func testCalculator() *Calculator {
	book := &config.PriceBook{}
	resolver := NewResolver(testRules())
	return NewCalculator(book, resolver)
}

func TestCalculator_StandardScenario(t *testing.T) {
	// base.std 100 + option.std 20, users factor 1.2:
	// ceil((100+20) * 1.2) = 144.
	calc := testCalculator()
	s := &domain.Session{
		Category: "inventory",
		Base:     &domain.Selection{Key: "standard", Min: 80, Std: 100, Max: 130},
		Options:  []domain.Selection{{Key: "barcode", Min: 15, Std: 20, Max: 30}},
		Scale:    domain.ScaleSelections{Users: "u50", Locations: "single", Deadline: "standard"},
	}

	est := calc.Estimate(s)
	if est.Std != 144 {
		t.Errorf("Std = %v, want 144", est.Std)
	}
	if est.Min != 114 { // ceil(95 * 1.2)
		t.Errorf("Min = %v, want 114", est.Min)
	}
	if est.Max != 192 { // ceil(160 * 1.2)
		t.Errorf("Max = %v, want 192", est.Max)
	}
}

func TestCalculator_CeilingPerTier(t *testing.T) {
	calc := testCalculator()
	s := &domain.Session{
		Category: "inventory",
		Base:     &domain.Selection{Key: "standard", Min: 81, Std: 85, Max: 90},
		Scale:    domain.ScaleSelections{Users: "u50"},
	}

	est := calc.Estimate(s)
	// 81*1.2=97.2, 85*1.2=102.0, 90*1.2=108.0
	if est.Min != 98 || est.Std != 102 || est.Max != 108 {
		t.Errorf("got %+v, want {98 102 108}", est)
	}
}

func TestCalculator_DeadlineOnlyIgnoresUsersKey(t *testing.T) {
	// The users factor must be short-circuited even when a users key is
	// stored on the session.
	calc := testCalculator()
	s := &domain.Session{
		Category: "reservation",
		Base:     &domain.Selection{Key: "standard_booking", Min: 45, Std: 55, Max: 70},
		Scale:    domain.ScaleSelections{Users: "u200", Deadline: "asap"},
	}

	est := calc.Estimate(s)
	if est.Std != 77 { // ceil(55 * 1.4), not 55 * 1.5 * 1.4
		t.Errorf("Std = %v, want 77", est.Std)
	}
}

func TestCalculator_NilBaseYieldsZero(t *testing.T) {
	calc := testCalculator()

	if est := calc.Estimate(&domain.Session{Category: "inventory"}); est != (domain.Estimate{}) {
		t.Errorf("nil base: got %+v, want zero estimate", est)
	}
	if est := calc.Estimate(nil); est != (domain.Estimate{}) {
		t.Errorf("nil session: got %+v, want zero estimate", est)
	}
}

func TestCalculator_CommonAddOns(t *testing.T) {
	calc := testCalculator()
	s := &domain.Session{
		Category: "inventory",
		Base:     &domain.Selection{Key: "standard", Min: 80, Std: 100, Max: 130},
		Common: domain.CommonSelections{
			ExternalLink:  &domain.Selection{Key: "external_link", Min: 15, Std: 20, Max: 30},
			DataMigration: &domain.Selection{Key: "data_migration", Min: 20, Std: 30, Max: 50},
		},
	}

	est := calc.Estimate(s)
	if est.Std != 150 { // 100+20+30, all factors 1.0
		t.Errorf("Std = %v, want 150", est.Std)
	}
}

func TestCalculator_UnknownFactorKeysDefaultToOne(t *testing.T) {
	calc := testCalculator()
	s := &domain.Session{
		Category: "inventory",
		Base:     &domain.Selection{Key: "standard", Std: 100},
		Scale:    domain.ScaleSelections{Users: "not_a_key", Locations: "also_missing"},
	}

	if est := calc.Estimate(s); est.Std != 100 {
		t.Errorf("Std = %v, want 100", est.Std)
	}
}

func TestCalculator_ZeroPricedMissingSelection(t *testing.T) {
	// A selection that never resolved in the price book contributes zero
	// but does not break the calculation.
	calc := testCalculator()
	s := &domain.Session{
		Category: "inventory",
		Base:     &domain.Selection{Key: "standard", Std: 100},
		Options:  []domain.Selection{{Key: "unpriced"}},
	}

	if est := calc.Estimate(s); est.Std != 100 {
		t.Errorf("Std = %v, want 100", est.Std)
	}
}

func TestCalculator_FactorMonotonicity(t *testing.T) {
	// Raising any single scale factor while every selection stays fixed
	// must never lower a tier.
	calc := testCalculator()
	baseline := func() *domain.Session {
		return &domain.Session{
			Category: "inventory",
			Base:     &domain.Selection{Key: "standard", Min: 80, Std: 100, Max: 130},
			Options:  []domain.Selection{{Key: "barcode", Min: 15, Std: 20, Max: 30}},
			Scale:    domain.ScaleSelections{Users: "u10", Locations: "single", Deadline: "standard"},
		}
	}

	cases := []struct {
		name string
		bump func(*domain.Session)
	}{
		{"users u10 to u50", func(s *domain.Session) { s.Scale.Users = "u50" }},
		{"users u10 to u200", func(s *domain.Session) { s.Scale.Users = "u200" }},
		{"locations single to multi_2_5", func(s *domain.Session) { s.Scale.Locations = "multi_2_5" }},
		{"deadline standard to rush", func(s *domain.Session) { s.Scale.Deadline = "rush" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := calc.Estimate(baseline())
			bumped := baseline()
			tc.bump(bumped)
			after := calc.Estimate(bumped)

			if after.Min < before.Min || after.Std < before.Std || after.Max < before.Max {
				t.Errorf("tier decreased on a factor increase: before %+v, after %+v", before, after)
			}
		})
	}
}

func TestCalculator_Deterministic(t *testing.T) {
	calc := testCalculator()
	s := &domain.Session{
		Category: "inventory",
		Base:     &domain.Selection{Key: "standard", Min: 80, Std: 100, Max: 130},
		Options:  []domain.Selection{{Key: "barcode", Min: 15, Std: 20, Max: 30}},
		Common: domain.CommonSelections{
			ExternalLink: &domain.Selection{Key: "external_link", Min: 15, Std: 20, Max: 30},
		},
		Scale: domain.ScaleSelections{Users: "u50", Locations: "multi_2_5", Deadline: "rush"},
	}

	first := calc.Estimate(s)
	if again := calc.Estimate(s); again != first {
		t.Errorf("repeated call diverged: %+v then %+v", first, again)
	}
	if cloned := calc.Estimate(s.Clone()); cloned != first {
		t.Errorf("equal session diverged: %+v vs %+v", first, cloned)
	}
}

func TestResolver_Factor(t *testing.T) {
	r := NewResolver(testRules())

	if f := r.Factor("users_and_locations", domain.ScaleKeyUsers, "u50"); f != 1.2 {
		t.Errorf("users u50 = %v, want 1.2", f)
	}
	if f := r.Factor("users_and_locations", domain.ScaleKeyUsers, ""); f != 1.0 {
		t.Errorf("empty key = %v, want 1.0", f)
	}
	if f := r.Factor(ScaleTypeDeadlineOnly, domain.ScaleKeyUsers, "u200"); f != 1.0 {
		t.Errorf("deadline-only users = %v, want 1.0", f)
	}
	if f := r.Factor(ScaleTypeDeadlineOnly, domain.ScaleKeyDeadline, "flexible"); f != 0.9 {
		t.Errorf("deadline flexible = %v, want 0.9", f)
	}
	if f := r.Factor("unknown_scale_type", domain.ScaleKeyLocations, "single"); f != 1.0 {
		t.Errorf("unknown scale-type = %v, want 1.0", f)
	}
}
