/*
Package config loads and validates the three static documents that drive the
engine: the decision tree (tree.yaml), the price book (prices.yaml) and the
calculation rules (rules.yaml).

Question entries in the tree document are heterogeneous (normal, conditional
and free_text variants share a map), so each entry is first unmarshaled into
a raw map and then decoded into its variant struct with mapstructure, keyed
by the "type" field.

Validation is an authoring-time pass (see Validate); the runtime engine does
not re-validate and treats dangling references per its strict/lenient mode.
*/
package config
