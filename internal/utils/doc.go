// Package utils holds the ambient plumbing shared by the ghmirror command:
// Viper-backed configuration loading, zap logger construction, and a writer
// wrapper that keeps report output visible as it is produced.
package utils
