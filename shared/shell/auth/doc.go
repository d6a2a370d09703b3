// Package auth hashes passwords with bcrypt and issues and verifies the HS256 bearer
// tokens carrying the user id. A verified token is the only source of the acting user id.
package auth
