// Package client contains the client-side building blocks that talk to the
// outside world.
//
// # Overview
//
// The package provides:
//  1. The Client interface: the REST contract of the notes service
//     (register, login, current user, note CRUD, archive/unarchive).
//  2. HTTPClient, the net/http implementation. Every response uses the
//     service envelope {status, message, data}; a status other than
//     "success" is normalised to an *APIError whatever the HTTP code was.
//     Authenticated calls read the bearer token from a TokenSource on each
//     request.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring the
//     sqlite state store and applying the embedded goose migrations.
//
// # Error Handling
//
// Callers match errors with errors.Is: ErrUnavailable for transport
// failures, ErrRemote for anything the service rejected. No call is
// retried.
package client
