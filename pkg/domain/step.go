package domain

// SelectionType tells the navigator how to classify a chosen option key.
type SelectionType string

const (
	SelectionBase   SelectionType = "base"
	SelectionOption SelectionType = "option"
	SelectionCommon SelectionType = "common"
	SelectionScale  SelectionType = "scale"
)

// SelectMode defines how a question collects its answer.
type SelectMode string

const (
	SelectSingle SelectMode = "single"
	SelectMulti  SelectMode = "multi"
	// SelectScale is a single choice whose option list depends on the
	// category's scale-type.
	SelectScale SelectMode = "scale"
)

// CondKind is the predicate family of a conditional step.
type CondKind string

const (
	// CondBase tests equality of the base selection's key.
	CondBase CondKind = "base"
	// CondOption tests presence of a specific option selection.
	CondOption CondKind = "option"
	// CondScaleType tests equality of the category's derived scale-type.
	CondScaleType CondKind = "scale_type"
)

// Step is the closed set of decision-tree node variants. The navigator's
// transition logic type-switches over it exhaustively; the terminal state is
// the sentinel id StepResult, not a variant.
type Step interface {
	StepID() string
}

// Option is one selectable answer. Key references the price book (or a
// scale factor table); an empty Key records nothing. Next overrides the
// owning step's successor when set.
type Option struct {
	Key   string `json:"key,omitempty" yaml:"key,omitempty"`
	Label string `json:"label" yaml:"label"`
	Next  string `json:"next,omitempty" yaml:"next,omitempty"`
}

// EntryOption is a category choice on the entry step. Keywords feed the
// classifier's keyword fallback; FreeText marks the escape option that
// routes typed input through the classifier instead.
type EntryOption struct {
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Label    string   `json:"label" yaml:"label"`
	Next     string   `json:"next,omitempty" yaml:"next,omitempty"`
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	FreeText bool     `json:"free_text,omitempty" yaml:"free_text,omitempty"`
}

// Entry is the unique starting step: a fixed menu of categories plus the
// free-text escape.
type Entry struct {
	ID      string        `json:"id"`
	Prompt  string        `json:"prompt"`
	Options []EntryOption `json:"options"`
}

func (e *Entry) StepID() string { return e.ID }

// Question prompts the user and classifies the answer according to its
// SelectionType.
type Question struct {
	ID            string        `json:"id"`
	Prompt        string        `json:"prompt"`
	Mode          SelectMode    `json:"mode"`
	SelectionType SelectionType `json:"selection_type"`

	// CommonSlot names the CommonSelections field to fill when
	// SelectionType is SelectionCommon.
	CommonSlot string `json:"common_slot,omitempty"`

	// ScaleKey names the scale dimension when SelectionType is
	// SelectionScale (users, locations or deadline).
	ScaleKey string `json:"scale_key,omitempty"`

	Options []Option `json:"options,omitempty"`

	// OptionsByScaleType replaces Options on scale-tiered questions whose
	// choices differ per scale-type.
	OptionsByScaleType map[string][]Option `json:"options_by_scale_type,omitempty"`

	// Next is the successor when the chosen option declares none.
	Next string `json:"next,omitempty"`

	// AutoBase resolves and sets the base selection before the explicit
	// choice is applied, if the base is still nil when this step answers.
	AutoBase string `json:"auto_base,omitempty"`

	// System fixes the session's category the first time this step is
	// reached, if the category is still unresolved.
	System string `json:"system,omitempty"`

	// NoneKey designates the mutually-exclusive "nothing applies" choice of
	// a multi question; picking it clears every other pick in the round.
	NoneKey string `json:"none_key,omitempty"`
}

func (q *Question) StepID() string { return q.ID }

// Condition is the predicate of a conditional step.
type Condition struct {
	Kind  CondKind `json:"kind"`
	Value string   `json:"value"`
}

// Conditional routes deterministically without a user-visible prompt.
// Conditionals may chain: the navigator keeps resolving until it lands on a
// question, the entry, or the terminal sentinel.
type Conditional struct {
	ID   string    `json:"id"`
	Cond Condition `json:"condition"`
	Then string    `json:"then"`
	Else string    `json:"else"`
}

func (c *Conditional) StepID() string { return c.ID }

// Tree is the static decision graph: an entry point plus the step table.
type Tree struct {
	EntryPoint string
	Steps      map[string]Step
}

// Lookup resolves a step id. The terminal sentinel is not in the table.
func (t *Tree) Lookup(id string) (Step, bool) {
	s, ok := t.Steps[id]
	return s, ok
}

// EntryStep returns the entry node, or nil if the tree is malformed.
func (t *Tree) EntryStep() *Entry {
	if s, ok := t.Steps[t.EntryPoint]; ok {
		if e, ok := s.(*Entry); ok {
			return e
		}
	}
	return nil
}
