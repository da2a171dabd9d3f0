// Package app wires the application together: logger construction, node
// definition loading, compiler setup, and the compile-and-write run path.
package app
