// Package registeruser implements the Register User use case.
//
// A user signs up with full name, email, phone number and a password hash.
// Emails are unique across all users, the email predicate of the event filter makes
// the uniqueness check part of the consistency boundary of the append.
// Registering the same user id again is idempotent.
package registeruser
