package ekispert

import (
	"context"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const stationCacheKeyPrefix = "expolly:stationlight:"

// StationCache keeps raw stationLight response bodies by station name.
// It is backed by redis when available and by an in-process LRU otherwise.
type StationCache struct {
	shared *cache.Cache[string]
	local  *lru.Cache[string, string]
}

func NewRedisStationCache(client *redis.Client, expiration time.Duration) *StationCache {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &StationCache{
		shared: cache.New[string](redisStore),
	}
}

func NewLocalStationCache(size int) (*StationCache, error) {
	local, err := lru.New[string, string](size)
	if err != nil {
		return nil, err
	}

	return &StationCache{local: local}, nil
}

func (s *StationCache) Get(ctx context.Context, name string) (string, bool) {
	if s.shared != nil {
		value, err := s.shared.Get(ctx, stationCacheKeyPrefix+name)
		if err != nil {
			return "", false
		}
		return value, true
	}

	return s.local.Get(name)
}

func (s *StationCache) Set(ctx context.Context, name string, body string) {
	if s.shared != nil {
		if err := s.shared.Set(ctx, stationCacheKeyPrefix+name, body); err != nil {
			log.Warn().Err(err).Str("name", name).Msg("Failed to cache station lookup")
		}
		return
	}

	s.local.Add(name, body)
}
