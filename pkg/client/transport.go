package client

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
)

// Transport is the injected boundary to the network: fetch a URL, return
// the raw body. The core depends only on this signature, never on a
// concrete HTTP stack. Implementations must honor ctx and should return
// *TransportError so failures classify correctly.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, url string) ([]byte, error)

// Get implements Transport.
func (f TransportFunc) Get(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// maxBodySize caps response bodies; item payloads are a few KB, the
// largest list endpoint is around 500 ids.
const maxBodySize = 10 * 1024 * 1024

// HTTPTransport is the default Transport over net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport creates a transport with the given per-request timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		client: &http.Client{Timeout: timeout},
	}
}

// Get fetches url and returns the response body. Non-2xx statuses, network
// failures, and body-read failures all come back as *TransportError.
func (t *HTTPTransport) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Kind: networkKind(err), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: url, Kind: KindStatus, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &TransportError{URL: url, Kind: KindBody, Err: err}
	}
	return body, nil
}

// networkKind narrows a request error to a transport error kind.
func networkKind(err error) ErrorKind {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNS
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return KindConnect
	}
	if errors.Is(err, net.ErrClosed) {
		return KindConnect
	}
	return KindNetwork
}
