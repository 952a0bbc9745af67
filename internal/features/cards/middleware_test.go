package cards

import (
	"testing"
	"time"
)

func TestRateLimiterBlocksPastLimit(t *testing.T) {
	limiter := newRateLimiter(2, time.Minute)
	now := time.Now()

	if ok, _ := limiter.Allow("1.2.3.4", now); !ok {
		t.Fatal("first request blocked")
	}
	if ok, _ := limiter.Allow("1.2.3.4", now); !ok {
		t.Fatal("second request blocked")
	}
	if ok, _ := limiter.Allow("1.2.3.4", now); ok {
		t.Fatal("third request allowed")
	}
	// Other clients have their own bucket.
	if ok, _ := limiter.Allow("5.6.7.8", now); !ok {
		t.Fatal("other client blocked")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	limiter := newRateLimiter(1, time.Minute)
	now := time.Now()

	if ok, _ := limiter.Allow("1.2.3.4", now); !ok {
		t.Fatal("first request blocked")
	}
	if ok, _ := limiter.Allow("1.2.3.4", now); ok {
		t.Fatal("second request allowed inside window")
	}
	if ok, _ := limiter.Allow("1.2.3.4", now.Add(2*time.Minute)); !ok {
		t.Fatal("request blocked after window reset")
	}
}
