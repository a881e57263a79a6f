package service

import (
	"sync"
	"time"
)

// PostLimiter enforces a sliding-window cap on guestbook submissions
// per client IP. State lives in process memory only and is lost on
// restart, which is fine for a single-instance deployment
type PostLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	posts  map[string][]time.Time

	// now is swappable so tests can move the clock
	now func() time.Time
}

func NewPostLimiter(limit int, window time.Duration) *PostLimiter {
	return &PostLimiter{
		limit:  limit,
		window: window,
		posts:  map[string][]time.Time{},
		now:    time.Now,
	}
}

// Allow reports whether ip may post right now. The prune, check and
// record steps happen under one lock so concurrent requests from the
// same IP can't slip past the cap
func (l *PostLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.posts[ip][:0]
	for _, t := range l.posts[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.limit {
		l.posts[ip] = kept
		return false
	}

	l.posts[ip] = append(kept, now)
	return true
}

// Reset drops all recorded windows
func (l *PostLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.posts = map[string][]time.Time{}
}
