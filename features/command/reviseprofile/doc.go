// Package reviseprofile implements the Revise Profile use case.
//
// A user changes their full name, email or phone number. Fields left empty keep their current value.
// A new email must not be held by another user. The event filter reads every claim and release of the
// new email, so the conditional append fails when someone takes it concurrently.
package reviseprofile
