package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor - limiter одного IP и время последнего запроса
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter выдает token bucket на каждый IP клиента.
// Посетители без запросов дольше idleTTL удаляются фоновой goroutine
type IPRateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rps      rate.Limit
	burst    int
	idleTTL  time.Duration
	onDrop   func()
	now      func() time.Time
	// заголовки X-Forwarded-For/X-Real-IP учитываются только от этих адресов
	trusted  []netip.Prefix
}

// NewIPRateLimiter создает limiter: rps запросов в секунду на IP, burst - размер всплеска.
// Очистка останавливается при отмене ctx
func NewIPRateLimiter(ctx context.Context, rps float64, burst int) *IPRateLimiter {
	limiter := &IPRateLimiter{
		visitors: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}

	go limiter.cleanupRoutine(ctx, time.Minute)

	return limiter
}

// OnDrop registers a callback invoked for every rejected request (metrics).
func (i *IPRateLimiter) OnDrop(fn func()) {
	i.onDrop = fn
}

// TrustProxies задает адреса reverse proxy перед сервером. Вызывается до начала обслуживания
func (i *IPRateLimiter) TrustProxies(prefixes []netip.Prefix) {
	i.trusted = append([]netip.Prefix(nil), prefixes...)
}

// Len возвращает число отслеживаемых IP
func (i *IPRateLimiter) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.visitors)
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, exists := i.visitors[ip]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(i.rps, i.burst)}
		i.visitors[ip] = v
	}
	v.lastSeen = i.now()

	return v.limiter
}

// evictIdle удаляет посетителей, не приходивших дольше idleTTL
func (i *IPRateLimiter) evictIdle() int {
	i.mu.Lock()
	defer i.mu.Unlock()

	cutoff := i.now().Add(-i.idleTTL)
	removed := 0
	for ip, v := range i.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(i.visitors, ip)
			removed++
		}
	}
	return removed
}

func (i *IPRateLimiter) cleanupRoutine(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.evictIdle()
		}
	}
}

// RateLimit middleware limits requests per IP address
func RateLimit(limiter *IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.getLimiter(limiter.clientIP(r)).Allow() {
				if limiter.onDrop != nil {
					limiter.onDrop()
				}
				http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (i *IPRateLimiter) isTrusted(addr netip.Addr) bool {
	addr = addr.Unmap()
	for _, prefix := range i.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP возвращает адрес клиента. Для недоверенного peer это RemoteAddr.
// За доверенным proxy берется ближайший справа hop X-Forwarded-For, не являющийся proxy,
// иначе X-Real-IP. Левые hop'ы задает сам клиент, им не верим
func (i *IPRateLimiter) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	peer, err := netip.ParseAddr(host)
	if err != nil || !i.isTrusted(peer) {
		return host
	}

	if forwarded := r.Header.Values("X-Forwarded-For"); len(forwarded) > 0 {
		hops := strings.Split(strings.Join(forwarded, ","), ",")
		for k := len(hops) - 1; k >= 0; k-- {
			hop, err := netip.ParseAddr(strings.TrimSpace(hops[k]))
			if err != nil {
				return host
			}
			if k == 0 || !i.isTrusted(hop) {
				return hop.Unmap().String()
			}
		}
	}

	if realIP, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return realIP.Unmap().String()
	}
	return host
}
