// Package credentials resolves the username and password pairs used against the
// source and target services.
//
// Resolution happens once, before any client is constructed: explicit values
// win, GitHub falls back to the usual token environment variables, and anything
// still missing is collected through a PasswordPrompter. The resulting
// Credentials values are immutable and handed to the clients directly.
package credentials
