package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/mitsumolabs/quotetree"
	"github.com/mitsumolabs/quotetree/internal/presentation/tui"
	"github.com/mitsumolabs/quotetree/pkg/domain"
)

// RunSession drives one interactive estimation session on the terminal.
func RunSession(engine *quotetree.Engine, opts RunOptions) error {
	interactive := !opts.Plain && term.IsTerminal(int(os.Stdin.Fd()))

	if interactive {
		tui.PrintBanner(quotetree.Version)
	}

	render := tui.NewRenderer()
	reader := bufio.NewReader(os.Stdin)

	sigCtx := NewSignalContext(context.Background())
	defer sigCtx.Cancel()

	state := engine.Start(sigCtx)

	for {
		if sigCtx.Err() != nil {
			printSystemMessage("interrupted")
			return nil
		}

		actions, terminal, err := engine.Render(sigCtx, state)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}

		var input *domain.InputRequest
		for _, a := range actions {
			switch a.Type {
			case domain.ActionRenderContent:
				printMarkdown(render, a.Payload.(string))
			case domain.ActionRenderEstimate:
				printEstimate(render, state, a.Payload.(domain.Estimate))
			case domain.ActionRequestInput:
				req := a.Payload.(domain.InputRequest)
				input = &req
			}
		}

		if terminal {
			again, err := askRestart(interactive, reader)
			if err != nil || !again {
				return err
			}
			state, err = engine.Navigate(sigCtx, state, domain.Action{Type: domain.ActionRestart})
			if err != nil {
				return fmt.Errorf("restart failed: %w", err)
			}
			continue
		}

		if input == nil {
			return fmt.Errorf("no input requested at step %q", state.CurrentStepID)
		}

		action, quit, err := promptFor(input, interactive, reader)
		if err != nil {
			return err
		}
		if quit {
			printSystemMessage("session aborted")
			return nil
		}

		next, err := engine.Navigate(sigCtx, state, action)
		if err != nil {
			return fmt.Errorf("navigation failed: %w", err)
		}
		state = next
	}
}

// promptFor collects a single answer matching the input request. The quit
// flag is set when the user aborts and there is nothing to go back to.
func promptFor(req *domain.InputRequest, interactive bool, reader *bufio.Reader) (domain.Action, bool, error) {
	if !interactive {
		return promptPlain(req, reader)
	}

	switch req.Type {
	case domain.InputConfirm:
		var accept bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Confirm?").
				Affirmative("Yes").
				Negative("No").
				Value(&accept),
		))
		if err := form.Run(); err != nil {
			return abortAction(req, err)
		}
		return domain.Action{Type: domain.ActionConfirm, Accept: accept}, false, nil

	case domain.InputMulti:
		var keys []string
		options := make([]huh.Option[string], 0, len(req.Choices))
		for _, c := range req.Choices {
			options = append(options, huh.NewOption(c.Label, c.Key))
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select all that apply").
				Options(options...).
				Value(&keys),
		))
		if err := form.Run(); err != nil {
			return abortAction(req, err)
		}
		return domain.Action{Type: domain.ActionChooseMulti, Keys: keys}, false, nil

	default:
		options := make([]huh.Option[string], 0, len(req.Choices)+2)
		for _, c := range req.Choices {
			key := c.Key
			if key == "" && req.AllowFreeText {
				key = freeTextKey
			}
			options = append(options, huh.NewOption(c.Label, key))
		}
		if req.CanGoBack {
			options = append(options, huh.NewOption("← Go back", backKey))
		}

		var key string
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose one").
				Options(options...).
				Value(&key),
		))
		if err := form.Run(); err != nil {
			return abortAction(req, err)
		}

		switch key {
		case backKey:
			return domain.Action{Type: domain.ActionBack}, false, nil
		case freeTextKey:
			var text string
			input := huh.NewForm(huh.NewGroup(
				huh.NewInput().
					Title("Describe what you need").
					Value(&text),
			))
			if err := input.Run(); err != nil {
				return abortAction(req, err)
			}
			return domain.Action{Type: domain.ActionFreeText, Text: text}, false, nil
		default:
			return domain.Action{Type: domain.ActionChoose, Key: key}, false, nil
		}
	}
}

const (
	backKey     = "__back"
	freeTextKey = "__free_text"
)

// abortAction maps a form abort (esc / ctrl-c) to back when possible,
// otherwise to quit.
func abortAction(req *domain.InputRequest, err error) (domain.Action, bool, error) {
	if errors.Is(err, huh.ErrUserAborted) {
		if req.CanGoBack {
			return domain.Action{Type: domain.ActionBack}, false, nil
		}
		return domain.Action{}, true, nil
	}
	return domain.Action{}, false, err
}

// promptPlain is the non-TTY fallback: numbered choices on stdout, one
// answer per line on stdin. "b" goes back, "r" restarts, "q" quits.
func promptPlain(req *domain.InputRequest, reader *bufio.Reader) (domain.Action, bool, error) {
	for i, c := range req.Choices {
		fmt.Printf("  %d) %s\n", i+1, c.Label)
	}
	if req.CanGoBack {
		fmt.Println("  b) go back")
	}
	fmt.Print("> ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return domain.Action{}, true, nil
	}
	line = strings.TrimSpace(line)

	switch {
	case line == "q":
		return domain.Action{}, true, nil
	case line == "b" && req.CanGoBack:
		return domain.Action{Type: domain.ActionBack}, false, nil
	case line == "r":
		return domain.Action{Type: domain.ActionRestart}, false, nil
	}

	switch req.Type {
	case domain.InputConfirm:
		accept := line == "y" || line == "yes"
		return domain.Action{Type: domain.ActionConfirm, Accept: accept}, false, nil

	case domain.InputMulti:
		var keys []string
		for _, part := range strings.Split(line, ",") {
			idx, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || idx < 1 || idx > len(req.Choices) {
				continue
			}
			keys = append(keys, req.Choices[idx-1].Key)
		}
		return domain.Action{Type: domain.ActionChooseMulti, Keys: keys}, false, nil

	default:
		if idx, err := strconv.Atoi(line); err == nil && idx >= 1 && idx <= len(req.Choices) {
			choice := req.Choices[idx-1]
			if choice.Key == "" && req.AllowFreeText {
				fmt.Print("describe> ")
				text, err := reader.ReadString('\n')
				if err != nil {
					return domain.Action{}, true, nil
				}
				return domain.Action{Type: domain.ActionFreeText, Text: strings.TrimSpace(text)}, false, nil
			}
			return domain.Action{Type: domain.ActionChoose, Key: choice.Key}, false, nil
		}
		if req.AllowFreeText && line != "" {
			return domain.Action{Type: domain.ActionFreeText, Text: line}, false, nil
		}
		return domain.Action{}, false, fmt.Errorf("unrecognized input %q", line)
	}
}

// askRestart asks whether to run another estimate after a terminal step.
func askRestart(interactive bool, reader *bufio.Reader) (bool, error) {
	if !interactive {
		fmt.Print("start over? (y/N) > ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return false, nil
		}
		line = strings.TrimSpace(line)
		return line == "y" || line == "yes", nil
	}

	var again bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Start another estimate?").
			Affirmative("Yes").
			Negative("No").
			Value(&again),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return again, nil
}

func printMarkdown(render func(string) (string, error), content string) {
	out, err := render(content)
	if err != nil {
		fmt.Println(content)
		return
	}
	fmt.Print(out)
}

func printEstimate(render func(string) (string, error), s *domain.Session, est domain.Estimate) {
	var b strings.Builder
	if s.Category != "" {
		fmt.Fprintf(&b, "## Estimate (%s)\n\n", s.Category)
	} else {
		b.WriteString("## Estimate\n\n")
	}
	b.WriteString("| Tier | Amount |\n")
	b.WriteString("|------|--------|\n")
	fmt.Fprintf(&b, "| Minimum  | %s |\n", formatAmount(est.Min))
	fmt.Fprintf(&b, "| Standard | %s |\n", formatAmount(est.Std))
	fmt.Fprintf(&b, "| Maximum  | %s |\n", formatAmount(est.Max))
	printMarkdown(render, b.String())
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
