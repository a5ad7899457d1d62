// Package common contains constants and sentinel errors shared by the
// server packages.
package common

const (
	// AuthorizationHeader carries the caller's bearer token.
	AuthorizationHeader = "Authorization"

	// BearerPrefix precedes the token inside AuthorizationHeader.
	BearerPrefix = "Bearer "
)
