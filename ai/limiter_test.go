package ai

import (
	"testing"
	"time"
)

func TestLimiterBurstThenDeny(t *testing.T) {
	l := NewLimiter(time.Hour, 2)

	if !l.Allow("g1") {
		t.Fatal("first request should be allowed")
	}
	if !l.Allow("g1") {
		t.Fatal("second request should be allowed within burst")
	}
	if l.Allow("g1") {
		t.Fatal("third request should be denied until the interval passes")
	}
}

func TestLimiterIsolatesGuilds(t *testing.T) {
	l := NewLimiter(time.Hour, 1)

	if !l.Allow("g1") {
		t.Fatal("g1 should be allowed")
	}
	if !l.Allow("g2") {
		t.Fatal("g2 has its own bucket and should be allowed")
	}
	if l.Allow("g1") {
		t.Fatal("g1 should be rate limited")
	}
}
