// Package cli implements the poliscout command line interface.
package cli
