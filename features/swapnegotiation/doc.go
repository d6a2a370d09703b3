// Package swapnegotiation implements the SwapNegotiation operations on top of the swap
// command slices and the swaplist query.
package swapnegotiation
