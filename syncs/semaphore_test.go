package syncs

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSemaphore(t *testing.T) {
	sem := NewSemaphore(2)
	ctx := context.Background()
	if err := sem.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if err := sem.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	timeout, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if err := sem.Acquire(timeout); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v", err)
	}

	sem.Release()
	if err := sem.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestNilSemaphore(t *testing.T) {
	var sem Semaphore
	for range 10 {
		if err := sem.Acquire(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	sem.Release()
}
