// Package changebookstatus implements the owner route of setting a book's status.
// Only the owner may change the status here; the status flip of an accepted swap is
// part of decideswap and never goes through this route.
package changebookstatus
