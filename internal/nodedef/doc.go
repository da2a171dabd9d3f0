// Package nodedef holds the node definition table: the static registry
// describing every node type a graph may instantiate: its named input and
// output pins, their data types and defaults, and the code template the
// compiler renders for it.
//
// Definitions are loaded once from HCL manifests (with template content
// inline or in a sidecar .tron file) and are immutable afterwards.
package nodedef
