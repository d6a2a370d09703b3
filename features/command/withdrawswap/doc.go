// Package withdrawswap implements deleting a swap. Either participant may withdraw a swap
// in any status; book statuses are left as they are.
package withdrawswap
