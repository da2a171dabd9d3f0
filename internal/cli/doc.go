// Package cli handles command-line argument parsing and validation.
package cli
