// Package app wires application dependencies for the CLI.
//
// It layers configuration (defaults, then an optional JSON file, then flags
// applied by the caller), validates it, and builds the vault store, the
// credential service and per-session login guards from it.
package app
