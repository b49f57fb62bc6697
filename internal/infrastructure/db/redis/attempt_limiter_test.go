package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestAttemptKey(t *testing.T) {
	if got := attemptKey("a@x.com"); got != "login_attempts:a@x.com" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestNewAttemptLimiter_DefaultWindow(t *testing.T) {
	l := NewAttemptLimiter(nil, 5, 0)
	if l.window != defaultLockoutWindow {
		t.Fatalf("expected default window, got %s", l.window)
	}
}

func TestAttemptLimiter_DisabledNeverBlocks(t *testing.T) {
	l := NewAttemptLimiter(nil, 0, time.Minute)
	blocked, err := l.Blocked(context.Background(), "a@x.com")
	if err != nil || blocked {
		t.Fatalf("expected disabled limiter to allow, got blocked=%v err=%v", blocked, err)
	}
}

func TestAttemptLimiter_BlocksAtMaxAttempts(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	identity := "limiter@x.com"

	l := NewAttemptLimiter(client, 2, time.Minute)
	for i := 0; i < 2; i++ {
		if blocked, err := l.Blocked(ctx, identity); err != nil || blocked {
			t.Fatalf("attempt %d: blocked=%v err=%v", i, blocked, err)
		}
		if err := l.RecordFailure(ctx, identity); err != nil {
			t.Fatalf("RecordFailure: %v", err)
		}
	}

	if blocked, err := l.Blocked(ctx, identity); err != nil || !blocked {
		t.Fatalf("expected blocked after limit, got blocked=%v err=%v", blocked, err)
	}
	if got, _ := mr.Get(attemptKey(identity)); got != "2" {
		t.Fatalf("expected counter 2, got %q", got)
	}

	if blocked, _ := l.Blocked(ctx, "someone-else@x.com"); blocked {
		t.Fatalf("limit must be tracked per identity")
	}
}

func TestAttemptLimiter_FailureRefreshesWindow(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	identity := "limiter@x.com"
	key := attemptKey(identity)

	l := NewAttemptLimiter(client, 2, time.Minute)
	if err := l.RecordFailure(ctx, identity); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Fatalf("expected ttl 1m, got %s", ttl)
	}

	mr.FastForward(40 * time.Second)
	if err := l.RecordFailure(ctx, identity); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if ttl := mr.TTL(key); ttl != time.Minute {
		t.Fatalf("expected ttl refreshed to 1m, got %s", ttl)
	}

	mr.FastForward(40 * time.Second)
	if blocked, err := l.Blocked(ctx, identity); err != nil || !blocked {
		t.Fatalf("expected still blocked inside refreshed window, got blocked=%v err=%v", blocked, err)
	}

	mr.FastForward(time.Minute)
	if blocked, err := l.Blocked(ctx, identity); err != nil || blocked {
		t.Fatalf("expected window to lapse, got blocked=%v err=%v", blocked, err)
	}
}

func TestAttemptLimiter_Reset(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	identity := "limiter@x.com"

	l := NewAttemptLimiter(client, 1, time.Minute)
	if err := l.RecordFailure(ctx, identity); err != nil {
		t.Fatalf("RecordFailure: %v", err)
	}
	if err := l.Reset(ctx, identity); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if mr.Exists(attemptKey(identity)) {
		t.Fatalf("expected key removed")
	}
	if blocked, _ := l.Blocked(ctx, identity); blocked {
		t.Fatalf("expected unblocked after reset")
	}
}

func TestAttemptLimiter_ServerErrors(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()
	l := NewAttemptLimiter(client, 1, time.Minute)

	mr.SetError("ERR unavailable")
	if _, err := l.Blocked(ctx, "a@x.com"); err == nil {
		t.Fatalf("expected Blocked to surface server error")
	}
	if err := l.RecordFailure(ctx, "a@x.com"); err == nil {
		t.Fatalf("expected RecordFailure to surface server error")
	}
}
