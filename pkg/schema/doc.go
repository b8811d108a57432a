// Package schema validates scenario documents before they enter the store.
//
// Structural rules (required identifiers and names, required edge endpoints)
// are declared as struct tags on the domain types and checked with
// go-playground/validator. Referential rules that tags cannot express are
// checked by hand:
//
//   - node IDs are unique within a scenario,
//   - every edge endpoint references a node of the same scenario,
//   - scenario IDs are unique within a collection.
//
// All failures are collected and returned together as an *AggregateError
// so that an author can fix a fixture in a single pass.
package schema
