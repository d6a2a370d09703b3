package shell

import (
	"time"

	"github.com/bookswap-hub/bookswap/shared/core"
)

// HandlerResult is the outcome of a command handler execution: the business outcome
// (idempotency) plus the retry metadata the observable wrapper turns into metrics.
type HandlerResult struct {
	// Idempotent is true when the command needed no state change.
	Idempotent bool

	// RetryAttempts is the total number of attempts made (1 for no retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative backoff time, excluding execution time.
	TotalRetryDelay time.Duration

	// LastErrorType is "none", "concurrency_conflict", "context_canceled", "context_deadline_exceeded" or "other".
	LastErrorType string

	// RetriesExhausted is true when every attempt ended in a retryable error.
	RetriesExhausted bool

	// Appended are the events the successful attempt wrote. Only filled by handlers whose callers need them.
	Appended core.DomainEvents
}

func resultFrom(idempotent bool, retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		Idempotent:       idempotent,
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}

// NewSuccessResult creates a HandlerResult for operations that changed state.
func NewSuccessResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(false, retryMetrics)
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(true, retryMetrics)
}

// NewErrorResult creates a HandlerResult for failed operations, keeping the retry metadata.
func NewErrorResult(retryMetrics RetryMetrics) HandlerResult {
	return resultFrom(false, retryMetrics)
}

// WithAppended returns a copy of the result that carries the appended events.
func (r HandlerResult) WithAppended(events core.DomainEvents) HandlerResult {
	r.Appended = events
	return r
}
