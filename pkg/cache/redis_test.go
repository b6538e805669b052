package cache

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/redis/go-redis/v9"
)

func TestClassify(t *testing.T) {
	if classify(nil) != nil {
		t.Error("classify(nil) should be nil")
	}

	netErr := classify(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")})
	if !IsRetryable(netErr) || !errors.Is(netErr, ErrNetwork) {
		t.Errorf("network failure = %v, want retryable ErrNetwork", netErr)
	}

	if err := classify(redis.ErrClosed); !errors.Is(err, ErrClosed) || IsRetryable(err) {
		t.Errorf("closed client = %v, want ErrClosed", err)
	}

	other := errors.New("WRONGTYPE")
	if classify(other) != other {
		t.Error("server errors should pass through")
	}
}

func TestNewRedisCacheCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("NewRedisCache with canceled context should fail")
	}
}
