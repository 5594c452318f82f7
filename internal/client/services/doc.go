// Package services contains the application services of the emprende
// client. They sit between the CLI and the backend gateway, keep the
// session store in step with what the server says, and validate forms
// before anything goes on the wire.
package services
