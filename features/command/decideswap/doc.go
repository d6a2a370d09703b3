// Package decideswap implements accepting or rejecting a pending swap.
//
// Only the owner of the requested book decides. Acceptance appends SwapAccepted and the
// status change of both books to swapped in one conditional append, whose consistency boundary
// covers the swap and both books. Of two concurrent decisions one append fails on the
// concurrency conflict, is retried, and then sees a swap that is no longer pending.
package decideswap
