// Package cli provides the interactive emprende command-line client.
//
// It wires configuration, the local session database, the backend gateway
// and the application services into a small REPL. Navigation is modelled
// on routes ("/home", "/perfil", ...): protected routes go through the
// session guard, and a denied route is resumed after a successful login.
//
// Key features:
//   - Login / Logout, page or modal style depending on the current route
//   - Forgotten-password recovery (email, 6-digit code, new password)
//   - Profile view and edit, document download, account registration
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
