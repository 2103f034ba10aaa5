// Package reactor is a reactive value-propagation library: signals whose
// dependents update automatically when their inputs change, batched into
// transactions and scheduled in dependency order.
//
// A Context owns one reactive graph. Vars are the graph's inputs; Signals
// (built with Map1/Map2/Map3 or published with Compute1/Compute2/Compute3)
// derive from other signals; Flatten follows a signal that itself names
// another signal; Observe attaches a side effect to a signal's changes.
// Every exported type here is a thin, generic wrapper around the untyped
// engine in this module's internal/graph package.
package reactor
