// Package bookdetails implements the single book lookup query use case.
package bookdetails
