package apiserver

import (
	"errors"
	"github.com/alphadose/haxmap"
	"golang.org/x/time/rate"
	"net/http"
	"sync"
)

var errRateLimited = errors.New("rate limit exceeded")

type subjectLimiter struct {
	limit    rate.Limit
	burst    int
	limiters *haxmap.Map[string, *rate.Limiter]
	lock     sync.Mutex
}

func newSubjectLimiter(perSecond float64) *subjectLimiter {
	if perSecond <= 0 {
		return nil
	}

	return &subjectLimiter{
		limit:    rate.Limit(perSecond),
		burst:    max(1, int(perSecond*2)),
		limiters: haxmap.New[string, *rate.Limiter](),
	}
}

func (l *subjectLimiter) Allow(subject string) bool {
	return l.limiter(subject).Allow()
}

func (l *subjectLimiter) limiter(subject string) *rate.Limiter {
	if limiter, ok := l.limiters.Get(subject); ok {
		return limiter
	}

	l.lock.Lock()
	defer l.lock.Unlock()
	limiter, _ := l.limiters.GetOrSet(subject, rate.NewLimiter(l.limit, l.burst))
	return limiter
}

// rateLimit throttles health polling per authenticated caller.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow(subjectFromContext(r.Context())) {
			s.writeError(w, r, errRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}
