package server

import (
	"sync"

	"golang.org/x/time/rate"
)

// LimitReason names why a connection attempt was rejected.
type LimitReason string

const (
	limitReasonNone LimitReason = ""
	limitReasonIP   LimitReason = "ip_limit"
	limitReasonRate LimitReason = "rate_limit"
)

// ConnectionLimits enforces a per-IP concurrent connection cap and a global
// connection rate. The global subscriber cap lives in the hub.
type ConnectionLimits struct {
	mu      sync.Mutex
	perIP   map[string]int
	maxIP   int
	limiter *rate.Limiter
}

func NewConnectionLimits(maxPerIP int, connRate float64, burst int) *ConnectionLimits {
	return &ConnectionLimits{
		perIP:   make(map[string]int),
		maxIP:   maxPerIP,
		limiter: rate.NewLimiter(rate.Limit(connRate), burst),
	}
}

// Acquire reserves a connection slot for ip. On success the caller must call
// Release with the same ip when the connection ends.
func (l *ConnectionLimits) Acquire(ip string) (bool, LimitReason) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.maxIP > 0 && l.perIP[ip] >= l.maxIP {
		return false, limitReasonIP
	}
	if !l.limiter.Allow() {
		return false, limitReasonRate
	}

	l.perIP[ip]++
	return true, limitReasonNone
}

func (l *ConnectionLimits) Release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.perIP[ip] <= 1 {
		delete(l.perIP, ip)
		return
	}
	l.perIP[ip]--
}
