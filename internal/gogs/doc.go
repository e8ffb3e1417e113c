// Package gogs talks to the Gogs REST API on behalf of the mirror command.
//
// Client resolves the numeric identifier of the authenticated account and asks
// the server to create pull mirrors through the repository migration endpoint.
// Mirror creation reports the raw HTTP status so callers can classify outcomes;
// only transport failures are returned as errors.
package gogs
