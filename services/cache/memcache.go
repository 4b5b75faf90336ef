package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheService implements CacheService on memcached. The scraper
// keeps its HelloWork throttle block key here, so concurrent runs on
// the same machine share one back-off window instead of each tripping
// the rate limit on their own.
type MemcacheService struct {
	client *memcache.Client
}

// NewMemcacheService connects to the memcached instance at serverAddr
func NewMemcacheService(serverAddr string) *MemcacheService {
	return &MemcacheService{
		client: memcache.New(serverAddr),
	}
}

// Get retrieves a value. A missing key returns memcache.ErrCacheMiss,
// which the scraper reads as "not blocked".
func (m *MemcacheService) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value with an expiration. memcached expirations have
// second granularity; sub-second durations round down to "no expiry",
// which is fine for the multi-minute block windows used here.
func (m *MemcacheService) Set(key string, value []byte, expiration time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(expiration.Seconds()),
	})
}

// Delete lifts a block before its expiry
func (m *MemcacheService) Delete(key string) error {
	return m.client.Delete(key)
}
