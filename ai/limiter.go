package ai

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter はギルドごとのAI利用頻度を制限します。
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// NewLimiter はギルドあたり interval につき1回 (バーストburstまで) 許可するリミッターを作成します。
func NewLimiter(interval time.Duration, burst int) *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Every(interval),
		burst:    burst,
	}
}

// Allow はそのギルドのリクエストを今すぐ実行してよいか判定します。
func (l *Limiter) Allow(guildID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[guildID]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.limiters[guildID] = lim
	}
	return lim.Allow()
}
