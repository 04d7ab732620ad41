// Package common contains shared constants and sentinel errors used across
// gophnotes components.
package common

// AuthorizationHeaderName is the HTTP header that carries the bearer token
// on authenticated requests to the notes service.
const AuthorizationHeaderName = "Authorization"

// BearerScheme prefixes the access token in the Authorization header.
const BearerScheme = "Bearer "

// Keys of the persisted local state.
const (
	MetadataKeyAccessToken = "accessToken"
	MetadataKeyUser        = "user"
	MetadataKeyLocale      = "locale"
	MetadataKeyTheme       = "theme"
)
