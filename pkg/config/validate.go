package config

import (
	"fmt"

	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// Validate runs the authoring-time integrity pass over the three documents.
// It aggregates every defect found rather than stopping at the first, so an
// author can fix a whole batch in one edit. Runtime behavior on a defect
// that slipped through is governed by the engine's strict/lenient mode, not
// by this pass.
func (c *Config) Validate() error {
	var errs []error

	report := func(step, format string, args ...any) {
		errs = append(errs, &ValidationError{Step: step, Reason: fmt.Sprintf(format, args...)})
	}

	if c.Tree.EntryPoint == "" {
		report("", "entry_point is required")
	} else if c.Tree.EntryStep() == nil {
		report("", "entry_point %q does not name a free_text question", c.Tree.EntryPoint)
	}

	resolves := func(id string) bool {
		if id == domain.StepResult {
			return true
		}
		_, ok := c.Tree.Lookup(id)
		return ok
	}

	checkSuccessor := func(step, field, id string) {
		if id == "" {
			return
		}
		if !resolves(id) {
			report(step, "%s references unknown step %q", field, id)
		}
	}

	for id, step := range c.Tree.Steps {
		switch s := step.(type) {
		case *domain.Entry:
			for i, o := range s.Options {
				if !o.FreeText {
					checkSuccessor(id, fmt.Sprintf("options[%d].next", i), o.Next)
					if o.Category == "" {
						report(id, "options[%d] is missing a category", i)
					} else if _, ok := c.Rules.ScaleTypes[o.Category]; !ok {
						report(id, "options[%d] category %q has no scale-type mapping", i, o.Category)
					}
				}
			}

		case *domain.Conditional:
			switch s.Cond.Kind {
			case domain.CondBase, domain.CondOption, domain.CondScaleType:
			default:
				report(id, "unsupported condition kind %q", s.Cond.Kind)
			}
			checkSuccessor(id, "then", s.Then)
			checkSuccessor(id, "else", s.Else)
			if s.Then == "" || s.Else == "" {
				report(id, "conditional requires both then and else")
			}

		case *domain.Question:
			switch s.SelectionType {
			case domain.SelectionBase, domain.SelectionOption, domain.SelectionCommon, domain.SelectionScale:
			default:
				report(id, "unsupported selection_type %q", s.SelectionType)
			}
			if s.SelectionType == domain.SelectionCommon {
				switch s.CommonSlot {
				case domain.CommonSlotExternalLink, domain.CommonSlotDataMigration:
				default:
					report(id, "unsupported common_slot %q", s.CommonSlot)
				}
			}
			if s.SelectionType == domain.SelectionScale {
				switch s.ScaleKey {
				case domain.ScaleKeyUsers, domain.ScaleKeyLocations, domain.ScaleKeyDeadline:
				default:
					report(id, "unsupported scale_key %q", s.ScaleKey)
				}
			}
			checkSuccessor(id, "next", s.Next)
			for i, o := range s.Options {
				checkSuccessor(id, fmt.Sprintf("options[%d].next", i), o.Next)
			}
			for st, opts := range s.OptionsByScaleType {
				if _, ok := c.Rules.Factors[st]; !ok {
					report(id, "options_by_scale_type references unknown scale-type %q", st)
				}
				for i, o := range opts {
					checkSuccessor(id, fmt.Sprintf("options_by_scale_type[%s][%d].next", st, i), o.Next)
				}
			}
		}
	}

	for category, st := range c.Rules.ScaleTypes {
		if _, ok := c.Rules.Factors[st]; !ok {
			report("", "category %q maps to scale-type %q with no factor tables", category, st)
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
