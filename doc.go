// Package auth implements the credential and token core of the Noteful API:
// user registration with ordered field validation, bcrypt password digests,
// and HS256 auth-token issuance and refresh.
//
// The package is transport-agnostic at its center (Auther, TokenService,
// RegisterUserHandler) and ships a JSON HTTP controller wired for the
// go-router abstraction:
//
//	POST /api/users    register a user, returns {id, username, fullname}
//	POST /api/login    exchange credentials for {authToken}
//	POST /api/refresh  exchange a valid bearer token for a fresher one
//
// Tokens embed a sanitized user view under the "user" claim and are valid
// until expiry; there is no server-side revocation.
package auth
