// Package graph implements the untyped reactive propagation engine: the
// directed acyclic graph of nodes, the level-based topological scheduler,
// transaction batching, dynamic topology rebuilding for flatten, and
// observer lifetime management.
//
// Every value in this package is boxed as any. The generic, type-safe
// surface application code actually imports lives one level up, in the
// root reactor package; this package exists purely so that surface can
// stay a thin, mechanical layer over a single well-tested engine.
package graph
