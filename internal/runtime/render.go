package runtime

import (
	"context"
	"fmt"

	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// Render calculates the presentation (actions) for the current state
// without advancing it. The boolean reports whether the session is terminal.
func (n *Navigator) Render(ctx context.Context, s *domain.Session) ([]domain.ActionRequest, bool, error) {
	if s.Completed || s.CurrentStepID == domain.StepResult {
		est := domain.Estimate{}
		if s.Result != nil {
			est = *s.Result
		}
		return []domain.ActionRequest{
			{Type: domain.ActionRenderEstimate, Payload: est},
		}, true, nil
	}

	if s.CurrentStepID == domain.StepAIConfirm {
		name := ""
		if s.Pending != nil {
			name = s.Pending.CategoryName
		}
		return []domain.ActionRequest{
			{Type: domain.ActionRenderContent, Payload: fmt.Sprintf("It sounds like you need a **%s** system. Is that right?", name)},
			{Type: domain.ActionRequestInput, Payload: domain.InputRequest{
				Type:      domain.InputConfirm,
				CanGoBack: s.HistoryDepth() > 0,
			}},
		}, false, nil
	}

	step, ok := n.tree.Lookup(s.CurrentStepID)
	if !ok {
		if err := n.danglingRef(s.CurrentStepID); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}

	switch st := step.(type) {
	case *domain.Entry:
		req := domain.InputRequest{
			Type:          domain.InputSingle,
			AllowFreeText: true,
			CanGoBack:     s.HistoryDepth() > 0,
		}
		for _, opt := range st.Options {
			key := opt.Category
			if opt.FreeText {
				key = ""
			}
			req.Choices = append(req.Choices, domain.Choice{Key: key, Label: opt.Label})
		}
		return []domain.ActionRequest{
			{Type: domain.ActionRenderContent, Payload: st.Prompt},
			{Type: domain.ActionRequestInput, Payload: req},
		}, false, nil

	case *domain.Question:
		inputType := domain.InputSingle
		if st.Mode == domain.SelectMulti {
			inputType = domain.InputMulti
		}
		req := domain.InputRequest{
			Type:      inputType,
			NoneKey:   st.NoneKey,
			CanGoBack: s.HistoryDepth() > 0,
		}
		for _, opt := range n.optionsFor(s, st) {
			req.Choices = append(req.Choices, domain.Choice{Key: opt.Key, Label: opt.Label})
		}
		return []domain.ActionRequest{
			{Type: domain.ActionRenderContent, Payload: st.Prompt},
			{Type: domain.ActionRequestInput, Payload: req},
		}, false, nil

	default:
		// Conditionals never land; rendering one means resolution was
		// bypassed somehow.
		return nil, false, fmt.Errorf("step %q is not renderable", s.CurrentStepID)
	}
}
