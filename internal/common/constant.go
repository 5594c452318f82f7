// Package common contains constants and helpers shared by the client
// packages.
package common

const (
	// AuthorizationHeaderName carries the bearer token on authenticated calls.
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "

	// RequestIDHeaderName tags every outbound request so client and server
	// logs can be correlated.
	RequestIDHeaderName = "X-Request-ID"
)
