// Package client is the auth gateway: the HTTP contract with the
// business-directory backend plus the local state database bootstrap.
//
// # Overview
//
//  1. Client is the transport-agnostic contract used by the services: login,
//     the three password-recovery calls, profile read/update, document
//     download and account registration.
//  2. HTTPClient implements it over net/http with JSON bodies. It tags every
//     request with an X-Request-ID, attaches the bearer token from a
//     TokenSource on authenticated calls and makes exactly one attempt.
//  3. InitDatabase / RunMigrations open the SQLite state file and apply the
//     embedded goose migrations.
//
// # Error Handling
//
// No transport error escapes the gateway. Every failure is an *AuthError
// whose Kind is one of the fixed taxonomy; a request that got no response
// (refused connection, timeout, cancelled context) is always
// KindNetworkUnavailable. Match with errors.Is against the Err* sentinels
// or use KindOf.
package client
