// Package client talks to the TaskFlow server over gRPC on behalf of the CLI.
//
// GRPCClient keeps the session token returned by Signup or Login and attaches
// it to every call as "authorization: Bearer <token>". gRPC status codes are
// mapped to the sentinel errors in errors.go so callers can match them with
// errors.Is.
package client
