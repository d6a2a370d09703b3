// Package swaplist implements the received and sent swap listing query use case.
//
// The query runs in two reads. The first selects the swaps the user takes part in on the
// requested side, the second loads the books and users those swaps reference so every
// swap can be returned with book and user summaries. Withdrawn swaps are not listed.
package swaplist
