package resolver

import (
	"context"
	"net"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds a single hostname lookup.
const DefaultTimeout = 2 * time.Second

// LookupFunc performs the actual hostname lookup.
type LookupFunc func(ctx context.Context, host string) ([]string, error)

// Resolver resolves hostnames with a per-lookup timeout and a run-scoped cache.
type Resolver struct {
	lookup  LookupFunc
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.RWMutex
	cache map[string][]string
	sf    singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLookup replaces the system resolver.
func WithLookup(fn LookupFunc) Option {
	return func(r *Resolver) {
		r.lookup = fn
	}
}

// New creates a Resolver backed by the system resolver.
// A non-positive timeout falls back to DefaultTimeout.
func New(timeout time.Duration, logger *zap.Logger, opts ...Option) *Resolver {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Resolver{
		lookup:  net.DefaultResolver.LookupHost,
		timeout: timeout,
		logger:  logger,
		cache:   make(map[string][]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the sorted addresses of hostname. It never fails: lookup
// errors and timeouts return nil and are cached like any other answer.
func (r *Resolver) Resolve(ctx context.Context, hostname string) []string {
	host := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(hostname)), ".")
	if host == "" {
		return nil
	}

	r.mu.RLock()
	addrs, ok := r.cache[host]
	r.mu.RUnlock()
	if ok {
		return addrs
	}

	result, _, _ := r.sf.Do(host, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		r.mu.RLock()
		addrs, ok := r.cache[host]
		r.mu.RUnlock()
		if ok {
			return addrs, nil
		}

		addrs = r.query(ctx, host)

		r.mu.Lock()
		r.cache[host] = addrs
		r.mu.Unlock()

		return addrs, nil
	})

	return result.([]string)
}

// query performs one bounded lookup.
func (r *Resolver) query(ctx context.Context, host string) []string {
	lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	addrs, err := r.lookup(lookupCtx, host)
	if err != nil {
		r.logger.Debug("DNS lookup failed", zap.String("host", host), zap.Error(err))
		return nil
	}

	unique := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		if _, dup := unique[a]; dup || a == "" {
			continue
		}
		unique[a] = struct{}{}
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of cached hostnames.
func (r *Resolver) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.cache)
}
