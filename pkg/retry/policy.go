// Package retry implements the pure retry decision function used by the
// fetch pipeline: exponential backoff with a cap over a transient/permanent
// error classification. The package performs no I/O and holds no state, so
// decisions are fully deterministic when Jitter is zero.
package retry

import (
	"math/rand"
	"time"
)

// Class is the retryability classification of a failure.
type Class int

const (
	// Transient failures (timeouts, connection resets, 5xx) may succeed
	// on a later attempt.
	Transient Class = iota

	// Permanent failures (4xx, malformed bodies) will not improve with
	// retrying and must surface immediately.
	Permanent
)

func (c Class) String() string {
	switch c {
	case Transient:
		return "transient"
	case Permanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Policy holds the retry configuration. The zero value retries nothing;
// construct one from the client's NetworkConfig.
type Policy struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int

	// InitialDelay is the backoff before the first retry.
	InitialDelay time.Duration

	// MaxDelay caps the exponential growth.
	MaxDelay time.Duration

	// Jitter in [0, 1] adds up to that fraction of random extra delay.
	// Zero keeps delays exactly at min(MaxDelay, InitialDelay*2^n).
	Jitter float64
}

// Next decides whether to retry after the given zero-based failed attempt.
// It returns the backoff to wait and true, or zero and false to give up.
// Permanent failures are never retried. Cancellation is not this package's
// concern: the caller checks its context before and while sleeping.
func (p Policy) Next(attempt int, class Class) (time.Duration, bool) {
	if class == Permanent {
		return 0, false
	}
	if attempt >= p.MaxRetries {
		return 0, false
	}
	return p.Delay(attempt), true
}

// Delay computes the backoff for the zero-based attempt number:
// min(MaxDelay, InitialDelay * 2^attempt), plus optional jitter.
// The result is never negative and never exceeds MaxDelay.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	// 2^attempt overflows int64 well before 63 doublings of any sane
	// initial delay; clamp the exponent instead of checking products.
	if attempt > 30 {
		attempt = 30
	}

	delay := p.InitialDelay << uint(attempt)
	if delay < 0 || delay > p.MaxDelay {
		delay = p.MaxDelay
	}

	jitter := p.Jitter
	if jitter < 0 {
		jitter = 0
	}
	if jitter > 1 {
		jitter = 1
	}
	if jitter > 0 {
		extra := time.Duration(float64(delay) * jitter * rand.Float64())
		if delay+extra > p.MaxDelay {
			delay = p.MaxDelay
		} else {
			delay += extra
		}
	}

	if delay < 0 {
		delay = 0
	}
	return delay
}
