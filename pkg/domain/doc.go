/*
Package domain contains the core domain models for the quotetree engine.

It defines the fundamental entities of the estimation conversation, such as
the decision-tree step variants, the Session accumulator, priced Selections,
and the three-tier Estimate. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Step: a node in the decision tree (Entry, Question or Conditional).
  - Session: the mutable accumulator of a single estimation run, including
    the snapshot stack that backs one-step undo.
  - Selection: a priced line item with independent min/std/max values.
  - ActionRequest: a structural representation of what the host should
    render or ask the user.
*/
package domain
