// Package httpapi exposes the marketplace over HTTP with gin.
//
// Every route except registration, login, health, metrics and cover downloads requires a
// bearer token. The user id always comes from the verified token, never from the request.
// Business errors are mapped to status codes in one place, see statusFor.
package httpapi
