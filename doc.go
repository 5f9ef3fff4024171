/*
Package quotetree is a configuration-driven conversational cost-estimation
engine. It walks a user through a decision tree of questions, accumulates
priced selections, resolves conditional branches, applies scale multipliers,
and produces a three-tier (minimum / standard / maximum) estimate.

# Concept

The engine treats an estimation conversation as a graph of steps declared in
three YAML documents: the decision tree, the price book, and the calculation
rules. The core manages state transitions, selection classification and
price aggregation, while your application ("Host") manages the I/O. This
Hexagonal Architecture lets the engine be embedded in any interface: CLI,
HTTP server, or a chat widget backend.

# Key Pieces

  - Navigator: the state machine advancing a Session through the tree,
    including conditional chaining, skip rules, and one-step undo.
  - Classifier: resolves free-text input to a category via a remote
    chat-completion call, degrading to keyword scoring on any failure.
  - Calculator: the pure function from a completed Session to the estimate.

# Usage

	engine, err := quotetree.New("./examples/office-systems")
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	sess := engine.Start(ctx)

	actions, terminal, err := engine.Render(ctx, sess)
	// present actions, collect an answer...

	sess, err = engine.Navigate(ctx, sess, domain.Action{
		Type: domain.ActionChoose, Key: "inventory",
	})

Hosts loop Render/Navigate until the terminal state, then read the estimate
with engine.Estimate(sess).
*/
package quotetree
