package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// Question type tags accepted in tree.yaml.
const (
	questionTypeNormal      = "normal"
	questionTypeConditional = "conditional"
	questionTypeFreeText    = "free_text"
)

// TreeDoc is the raw decision-tree document.
type TreeDoc struct {
	EntryPoint string                    `yaml:"entry_point"`
	Questions  map[string]map[string]any `yaml:"questions"`
}

// normalDoc is the decoded shape of a "normal" question entry.
type normalDoc struct {
	Prompt             string                 `mapstructure:"prompt"`
	SelectionType      string                 `mapstructure:"selection_type"`
	Mode               string                 `mapstructure:"mode"`
	CommonSlot         string                 `mapstructure:"common_slot"`
	ScaleKey           string                 `mapstructure:"scale_key"`
	Options            []optionDoc            `mapstructure:"options"`
	OptionsByScaleType map[string][]optionDoc `mapstructure:"options_by_scale_type"`
	Next               string                 `mapstructure:"next"`
	AutoBase           string                 `mapstructure:"auto_base"`
	System             string                 `mapstructure:"system"`
	NoneKey            string                 `mapstructure:"none_key"`
}

type optionDoc struct {
	Key   string `mapstructure:"key"`
	Label string `mapstructure:"label"`
	Next  string `mapstructure:"next"`
}

// conditionalDoc is the decoded shape of a "conditional" entry.
type conditionalDoc struct {
	Condition struct {
		Kind  string `mapstructure:"kind"`
		Value string `mapstructure:"value"`
	} `mapstructure:"condition"`
	Then string `mapstructure:"then"`
	Else string `mapstructure:"else"`
}

// entryDoc is the decoded shape of the "free_text" entry point: fixed
// category choices plus the free-text escape.
type entryDoc struct {
	Prompt  string           `mapstructure:"prompt"`
	Options []entryOptionDoc `mapstructure:"options"`
}

type entryOptionDoc struct {
	Category string   `mapstructure:"category"`
	Label    string   `mapstructure:"label"`
	Next     string   `mapstructure:"next"`
	Keywords []string `mapstructure:"keywords"`
	FreeText bool     `mapstructure:"free_text"`
}

// ParseTree unmarshals and compiles a tree document into the domain graph.
func ParseTree(data []byte) (*domain.Tree, error) {
	var doc TreeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse tree document: %w", err)
	}
	return compileTree(&doc)
}

func compileTree(doc *TreeDoc) (*domain.Tree, error) {
	tree := &domain.Tree{
		EntryPoint: doc.EntryPoint,
		Steps:      make(map[string]domain.Step, len(doc.Questions)),
	}

	for id, raw := range doc.Questions {
		typ, _ := raw["type"].(string)
		step, err := compileStep(id, typ, raw)
		if err != nil {
			return nil, fmt.Errorf("question %q: %w", id, err)
		}
		tree.Steps[id] = step
	}
	return tree, nil
}

func compileStep(id, typ string, raw map[string]any) (domain.Step, error) {
	switch typ {
	case questionTypeFreeText:
		var d entryDoc
		if err := mapstructure.Decode(raw, &d); err != nil {
			return nil, fmt.Errorf("decoding entry: %w", err)
		}
		entry := &domain.Entry{ID: id, Prompt: d.Prompt}
		for _, o := range d.Options {
			entry.Options = append(entry.Options, domain.EntryOption{
				Category: o.Category,
				Label:    o.Label,
				Next:     o.Next,
				Keywords: o.Keywords,
				FreeText: o.FreeText,
			})
		}
		return entry, nil

	case questionTypeConditional:
		var d conditionalDoc
		if err := mapstructure.Decode(raw, &d); err != nil {
			return nil, fmt.Errorf("decoding conditional: %w", err)
		}
		return &domain.Conditional{
			ID:   id,
			Cond: domain.Condition{Kind: domain.CondKind(d.Condition.Kind), Value: d.Condition.Value},
			Then: d.Then,
			Else: d.Else,
		}, nil

	case questionTypeNormal, "":
		var d normalDoc
		if err := mapstructure.Decode(raw, &d); err != nil {
			return nil, fmt.Errorf("decoding question: %w", err)
		}
		q := &domain.Question{
			ID:            id,
			Prompt:        d.Prompt,
			Mode:          domain.SelectMode(d.Mode),
			SelectionType: domain.SelectionType(d.SelectionType),
			CommonSlot:    d.CommonSlot,
			ScaleKey:      d.ScaleKey,
			Next:          d.Next,
			AutoBase:      d.AutoBase,
			System:        d.System,
			NoneKey:       d.NoneKey,
		}
		if q.Mode == "" {
			q.Mode = domain.SelectSingle
		}
		for _, o := range d.Options {
			q.Options = append(q.Options, domain.Option{Key: o.Key, Label: o.Label, Next: o.Next})
		}
		if len(d.OptionsByScaleType) > 0 {
			q.OptionsByScaleType = make(map[string][]domain.Option, len(d.OptionsByScaleType))
			for st, opts := range d.OptionsByScaleType {
				converted := make([]domain.Option, 0, len(opts))
				for _, o := range opts {
					converted = append(converted, domain.Option{Key: o.Key, Label: o.Label, Next: o.Next})
				}
				q.OptionsByScaleType[st] = converted
			}
		}
		return q, nil

	default:
		return nil, fmt.Errorf("unsupported question type: %s", typ)
	}
}
