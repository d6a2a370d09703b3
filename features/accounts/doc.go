// Package accounts implements user registration, login and profile lookup.
//
// Passwords are hashed before the registration event is built, the event store never sees
// a clear text password. Login answers core.ErrUnauthenticated for an unknown email and for
// a wrong password alike.
package accounts
