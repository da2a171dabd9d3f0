// Package compiler transforms a blueprint graph into source code.
//
// Compilation follows the Blueprint execution model: entry-point nodes
// (begin_play, on_tick, on_input, on_event) become top-level functions,
// every node type reachable from an entry point via execution connections
// gets exactly one generated function definition, and each entry function's
// body is the pre-order walk of its execution chain, one call statement per
// visited node.
//
// CompileGraph is a pure function of the graph and the node definition
// table: no I/O, no shared mutable state. A Compiler may be used from many
// goroutines at once; independent graphs compile independently.
package compiler
