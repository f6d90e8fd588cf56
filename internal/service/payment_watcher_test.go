package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"teamshop/pkg/logger"
)

// fakeClock 立即触发的假时钟，避免测试真实等待
type fakeClock struct {
	waits int
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.waits++
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

func newTestWatcher(maxAttempts int, clock Clock) *PaymentWatcher {
	return NewPaymentWatcherWithClock(3*time.Second, maxAttempts, clock, logger.NewLogger("error"))
}

func TestAwaitStopsOnPaid(t *testing.T) {
	clock := &fakeClock{}
	w := newTestWatcher(10, clock)

	attempts := 0
	paid, err := w.Await(context.Background(), "TS1", func(ctx context.Context) (bool, error) {
		attempts++
		return attempts == 3, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !paid {
		t.Fatal("expected paid=true")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestAwaitBoundedTermination(t *testing.T) {
	clock := &fakeClock{}
	w := newTestWatcher(5, clock)

	attempts := 0
	paid, err := w.Await(context.Background(), "TS2", func(ctx context.Context) (bool, error) {
		attempts++
		return false, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid {
		t.Fatal("expected paid=false after budget exhaustion")
	}
	if attempts != 5 {
		t.Fatalf("expected exactly 5 attempts, got %d", attempts)
	}
	// 最后一次尝试后不再等待
	if clock.waits != 4 {
		t.Fatalf("expected 4 waits, got %d", clock.waits)
	}
}

func TestAwaitSwallowsTransientErrors(t *testing.T) {
	clock := &fakeClock{}
	w := newTestWatcher(4, clock)

	attempts := 0
	paid, err := w.Await(context.Background(), "TS3", func(ctx context.Context) (bool, error) {
		attempts++
		if attempts < 3 {
			return false, errors.New("gateway timeout")
		}
		return true, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !paid {
		t.Fatal("expected paid=true despite transient errors")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestAwaitContextCancel(t *testing.T) {
	clock := &fakeClock{}
	w := newTestWatcher(10, clock)

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	paid, err := w.Await(ctx, "TS4", func(ctx context.Context) (bool, error) {
		attempts++
		if attempts == 2 {
			cancel()
		}
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if paid {
		t.Fatal("expected paid=false after cancel")
	}
	if attempts > 3 {
		t.Fatalf("polling continued after cancel: %d attempts", attempts)
	}
}
