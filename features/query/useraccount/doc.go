// Package useraccount implements the user lookup query use case, by id or by email.
//
// The result carries the password hash so login can check credentials. Callers must not
// hand it to clients.
package useraccount
