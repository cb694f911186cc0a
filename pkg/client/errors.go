package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/chunghha/hn-client/pkg/retry"
)

// ErrCancelled is returned when a fetch is abandoned because its context
// was cancelled, at whichever suspension point the cancellation was
// observed (permit wait, network call, backoff sleep, or dedup join).
var ErrCancelled = errors.New("hn: fetch cancelled")

// ErrorKind classifies a transport failure.
type ErrorKind string

const (
	// KindTimeout is a request that exceeded its deadline.
	KindTimeout ErrorKind = "timeout"

	// KindConnect is a refused or reset connection.
	KindConnect ErrorKind = "connect"

	// KindDNS is a name resolution failure.
	KindDNS ErrorKind = "dns"

	// KindStatus is a non-2xx HTTP response.
	KindStatus ErrorKind = "status"

	// KindBody is a failure while reading the response body.
	KindBody ErrorKind = "body"

	// KindNetwork is any other network-level failure.
	KindNetwork ErrorKind = "network"
)

// TransportError is a network-level failure from the transport boundary.
type TransportError struct {
	URL        string
	Kind       ErrorKind
	StatusCode int // set when Kind is KindStatus
	Err        error
}

func (e *TransportError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("hn: %s error (status %d) fetching %s", e.Kind, e.StatusCode, e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("hn: %s error fetching %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("hn: %s error fetching %s", e.Kind, e.URL)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool {
	return e.Kind == KindTimeout
}

// ExhaustedError is returned when the retry budget was used up on
// transient failures and no stale cache entry could cover for it.
type ExhaustedError struct {
	URL      string
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("hn: gave up on %s after %d attempts: %v", e.URL, e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

// PermanentError is returned for failures that retrying cannot fix: 4xx
// responses and malformed bodies. It is never masked by stale cache data.
type PermanentError struct {
	URL   string
	Cause error
}

func (e *PermanentError) Error() string {
	return fmt.Sprintf("hn: permanent failure fetching %s: %v", e.URL, e.Cause)
}

func (e *PermanentError) Unwrap() error {
	return e.Cause
}

// classify maps a transport failure onto the retry classification.
// 429 counts as transient: the upstream asked us to slow down, not stop.
func classify(err error) retry.Class {
	var te *TransportError
	if errors.As(err, &te) {
		switch te.Kind {
		case KindTimeout, KindConnect, KindDNS, KindNetwork, KindBody:
			return retry.Transient
		case KindStatus:
			if te.StatusCode == 429 || te.StatusCode >= 500 {
				return retry.Transient
			}
			return retry.Permanent
		}
	}
	return retry.Transient
}

// isCancellation reports whether err stems from context cancellation or
// a caller deadline, at any level of wrapping.
func isCancellation(err error) bool {
	return errors.Is(err, ErrCancelled) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
