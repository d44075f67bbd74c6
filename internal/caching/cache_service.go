package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache namespaces and their TTLs. Volatile, request-shaped payloads
// (filtered listings, facet counts, stock) stay under 30 seconds so
// concurrent writes are corrected quickly; near-static detail pages hold
// for minutes. Namespace-wide eviction on writes is the coarse correction
// path on top of the TTLs.
const (
	NamespaceProductDetail  = "product-detail"
	NamespaceProductListing = "product-listing"
	NamespaceSearchResults  = "search-results"
	NamespaceInventory      = "inventory"
	NamespaceCategoryBrowse = "category-browse"
	NamespaceCategoryFacets = "category-facets"
)

const keyPrefix = "storefront:"

// TTLFor returns the expiry for one namespace. Unknown namespaces get a
// conservative one minute.
func TTLFor(namespace string) time.Duration {
	switch namespace {
	case NamespaceProductDetail:
		return 5 * time.Minute
	case NamespaceProductListing, NamespaceSearchResults,
		NamespaceCategoryBrowse, NamespaceCategoryFacets:
		return 30 * time.Second
	case NamespaceInventory:
		return 15 * time.Second
	default:
		return time.Minute
	}
}

// CacheService is the shared (L2) cache tier. A miss is (false, nil), not
// an error; infrastructure failures come back as errors so callers can log
// and fall through to the store.
type CacheService interface {
	Get(ctx context.Context, namespace, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, namespace, key string, value interface{}) error
	Delete(ctx context.Context, namespace, key string) error
	InvalidateNamespace(ctx context.Context, namespace string) error
	InvalidateAll(ctx context.Context) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept both bare host:port and redis:// URLs.
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "rediss://"), "redis://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

// BuildKey joins a namespace and an already-canonicalized request key into
// the stored Redis key.
func BuildKey(namespace, key string) string {
	return keyPrefix + namespace + ":" + key
}

func (r *redisCacheService) Get(ctx context.Context, namespace, key string, dest interface{}) (bool, error) {
	data, err := r.client.Get(ctx, BuildKey(namespace, key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s entry: %w", namespace, err)
	}
	return true, nil
}

func (r *redisCacheService) Set(ctx context.Context, namespace, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, BuildKey(namespace, key), data, TTLFor(namespace)).Err()
}

func (r *redisCacheService) Delete(ctx context.Context, namespace, key string) error {
	return r.client.Del(ctx, BuildKey(namespace, key)).Err()
}

// InvalidateNamespace drops every entry of one namespace. Coarse by design:
// the write path does not know which request shapes a SKU change touches,
// and the TTLs are short enough that precision buys little.
func (r *redisCacheService) InvalidateNamespace(ctx context.Context, namespace string) error {
	return r.deleteByPattern(ctx, keyPrefix+namespace+":*")
}

func (r *redisCacheService) InvalidateAll(ctx context.Context) error {
	return r.deleteByPattern(ctx, keyPrefix+"*")
}

func (r *redisCacheService) deleteByPattern(ctx context.Context, pattern string) error {
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
