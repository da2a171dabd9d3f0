// Package graph defines the in-memory model of a blueprint graph: node
// instances, their pins, the connections between them, and the literal
// property values a user has set on unconnected input pins.
//
// A GraphDescription is the unit of compilation. It is produced by external
// editor tooling (typically decoded from its JSON export via DecodeJSON)
// and consumed read-only by the compiler.
package graph
