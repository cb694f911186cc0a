package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestNew_Capacity(t *testing.T) {
	tests := []struct {
		rate float64
		want int
	}{
		{3.0, 3},
		{0.5, 1},
		{0.0, 1},
		{-1.0, 1},
		{2.4, 2},
		{2.5, 3},
		{10.0, 10},
	}
	for _, tt := range tests {
		if got := New(tt.rate).Capacity(); got != tt.want {
			t.Errorf("New(%v).Capacity() = %d, want %d", tt.rate, got, tt.want)
		}
	}
}

func TestLimiter_AcquireRelease(t *testing.T) {
	l := New(2)
	ctx := context.Background()

	p1, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	p2, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}

	// Budget exhausted.
	if _, ok := l.TryAcquire(); ok {
		t.Error("TryAcquire() succeeded with all permits held")
	}

	p1.Release()
	p3, ok := l.TryAcquire()
	if !ok {
		t.Fatal("TryAcquire() failed after a release")
	}
	p3.Release()
	p2.Release()
}

func TestLimiter_ReleaseIdempotent(t *testing.T) {
	l := New(1)

	p, err := l.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	p.Release()
	p.Release() // must not release a second permit

	q, ok := l.TryAcquire()
	if !ok {
		t.Fatal("TryAcquire() failed after release")
	}
	defer q.Release()

	if _, ok := l.TryAcquire(); ok {
		t.Error("double Release() freed more than one permit")
	}
}

func TestLimiter_CancelledAcquireDoesNotLeak(t *testing.T) {
	l := New(1)

	held, err := l.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}

	// A cancelled waiter must consume nothing.
	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := l.Acquire(ctx)
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("Acquire() succeeded despite cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("cancelled Acquire() did not return")
	}

	held.Release()
	p, ok := l.TryAcquire()
	if !ok {
		t.Fatal("permit leaked by cancelled acquisition")
	}
	p.Release()
}

func TestLimiter_AcquireWithExpiredContext(t *testing.T) {
	l := New(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Acquire(ctx); err == nil {
		t.Error("Acquire() with cancelled context returned no error")
	}

	// The permit must still be available.
	p, ok := l.TryAcquire()
	if !ok {
		t.Fatal("permit consumed by failed acquisition")
	}
	p.Release()
}
