package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPTransport_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Accept header = %q", got)
		}
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(5 * time.Second)
	body, err := tr.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(body) != "[1,2,3]" {
		t.Errorf("Get() body = %q", body)
	}
}

func TestHTTPTransport_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(5 * time.Second)
	_, err := tr.Get(context.Background(), srv.URL)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Get() error = %v, want *TransportError", err)
	}
	if te.Kind != KindStatus || te.StatusCode != 404 {
		t.Errorf("TransportError = (%s, %d), want (status, 404)", te.Kind, te.StatusCode)
	}
}

func TestHTTPTransport_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(20 * time.Millisecond)
	_, err := tr.Get(context.Background(), srv.URL)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Get() error = %v, want *TransportError", err)
	}
	if te.Kind != KindTimeout {
		t.Errorf("TransportError kind = %s, want timeout", te.Kind)
	}
	if !te.Timeout() {
		t.Error("Timeout() = false for a timeout error")
	}
}

func TestHTTPTransport_ConnectFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nobody listening anymore

	tr := NewHTTPTransport(time.Second)
	_, err := tr.Get(context.Background(), url)

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("Get() error = %v, want *TransportError", err)
	}
	if te.Kind == KindStatus {
		t.Errorf("TransportError kind = %s, want a network-level kind", te.Kind)
	}
	if classify(te) != 0 { // retry.Transient
		t.Errorf("connect failure classified as %v, want transient", classify(te))
	}
}

func TestTransportFunc(t *testing.T) {
	tf := TransportFunc(func(ctx context.Context, url string) ([]byte, error) {
		return []byte(url), nil
	})
	body, err := tf.Get(context.Background(), "u")
	if err != nil || string(body) != "u" {
		t.Errorf("TransportFunc.Get() = (%q, %v)", body, err)
	}
}
