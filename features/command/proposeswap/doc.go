// Package proposeswap implements proposing a swap of one of the proposer's books for
// another user's book.
//
// The consistency boundary spans the histories of both books, so a concurrent status change
// or delisting of either book makes the append fail and the decision is taken again.
package proposeswap
