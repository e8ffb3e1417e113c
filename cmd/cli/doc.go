// Package cli constructs the ghmirror command-line interface. The root Cobra
// command is the mirror command itself; this package layers configuration
// loading, logger construction, and version reporting on top of it.
package cli
