package scanner

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ResolverAvailability treats a name that fails to resolve as unregistered
type ResolverAvailability struct {
	resolver *net.Resolver
	timeout  time.Duration
	cache    *resolverCache
}

// NewResolverAvailability creates an availability probe backed by the given resolver, or the system resolver when nil
func NewResolverAvailability(resolver *net.Resolver, timeout, ttl time.Duration) *ResolverAvailability {
	if resolver == nil {
		resolver = net.DefaultResolver
	}

	if timeout <= 0 {
		timeout = defaultResolverTimeout
	}

	return &ResolverAvailability{
		resolver: resolver,
		timeout:  timeout,
		cache:    newResolverCache(ttl),
	}
}

// IsAvailable reports true when the name does not resolve to any address.
// A cancelled caller context never reports a name as available.
func (r *ResolverAvailability) IsAvailable(ctx context.Context, domain string) bool {
	if ctx.Err() != nil {
		return false
	}

	resolves, err := r.cache.lookup(ctx, domain, func(ctx context.Context) (bool, error) {
		lookupCtx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()

		addrs, err := r.resolver.LookupIPAddr(lookupCtx, domain)
		if err != nil {
			return false, err
		}

		return len(addrs) > 0, nil
	})
	if ctx.Err() != nil {
		log.Debug().Err(ctx.Err()).Str("domain", domain).Msg("availability check cancelled")

		return false
	}

	if err != nil {
		log.Debug().Err(err).Str("domain", domain).Msg("name did not resolve, treating as available")
	}

	return !resolves
}

// resolverCache is a concurrency-safe TTL cache of successful resolutions
type resolverCache struct {
	// mu guards data
	mu sync.RWMutex
	// ttl is the lifetime of an entry
	ttl time.Duration
	// data maps names to their cached outcome
	data map[string]resolverCacheEntry
}

// resolverCacheEntry holds one cached resolution
type resolverCacheEntry struct {
	expires time.Time
}

func newResolverCache(ttl time.Duration) *resolverCache {
	if ttl <= 0 {
		ttl = defaultResolverCacheTTL
	}

	return &resolverCache{
		ttl:  ttl,
		data: make(map[string]resolverCacheEntry),
	}
}

// lookup reports whether domain resolves, calling resolve when no fresh entry exists.
// Only names that resolved are cached; failures are retried on the next lookup.
func (c *resolverCache) lookup(ctx context.Context, domain string, resolve func(context.Context) (bool, error)) (bool, error) {
	now := time.Now()

	c.mu.RLock()
	entry, ok := c.data[domain]
	c.mu.RUnlock()

	if ok && entry.expires.After(now) {
		return true, nil
	}

	resolves, err := resolve(ctx)
	if err != nil || !resolves || ctx.Err() != nil {
		return resolves, err
	}

	c.mu.Lock()
	c.data[domain] = resolverCacheEntry{expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return resolves, err
}
