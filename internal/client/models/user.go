// Package models defines the client-side data models of gophnotes: the
// authenticated user and the notes returned by the remote service.
package models

// User is the identity returned by GET /users/me. It is mirrored into the
// local state store so a restart can show who was signed in.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the body of POST /login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body of POST /register.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the data payload of a successful POST /login.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
}
