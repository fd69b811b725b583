package repository

import (
	"context"
	"encoding/json"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/alexanderchen5966/cwa-weather-api/internal/cache"
	"github.com/alexanderchen5966/cwa-weather-api/internal/config"
	"github.com/alexanderchen5966/cwa-weather-api/internal/model"
	"github.com/alexanderchen5966/cwa-weather-api/internal/redis"
	"github.com/alexanderchen5966/cwa-weather-api/internal/upstream"
)

// Fetcher is the upstream call the repository depends on.
type Fetcher interface {
	Fetch(ctx context.Context, stationID string) (*model.Forecast, error)
}

// ForecastRepository defines the interface for forecast data access.
type ForecastRepository interface {
	GetForecast(ctx context.Context, stationID string) (*model.Forecast, error)
}

// forecastRepository layers the in-process single-flight cache over the
// shared Redis cache over the CWA client. It is the only mutable shared state
// in the request path.
type forecastRepository struct {
	mem         *cache.Store[*model.Forecast]
	redisClient *redisv9.Client
	fetcher     Fetcher
	ttl         time.Duration
	log         *zap.SugaredLogger
}

// NewForecastRepository creates a repository wired from config. An optional
// Fetcher may be injected, primarily for tests.
func NewForecastRepository(fetcher ...Fetcher) ForecastRepository {
	var f Fetcher
	if len(fetcher) > 0 && fetcher[0] != nil {
		f = fetcher[0]
	} else {
		f = upstream.NewClient()
	}
	return &forecastRepository{
		mem:         cache.New[*model.Forecast](config.GetCacheCapacity()),
		redisClient: redis.GetClient(),
		fetcher:     f,
		ttl:         config.GetCacheExpiration(),
		log:         config.GetLogger(),
	}
}

// GetForecast returns the forecast for a station, fetching at most once per
// key no matter how many callers miss concurrently. Upstream failures pass
// through with their kind intact.
func (r *forecastRepository) GetForecast(ctx context.Context, stationID string) (*model.Forecast, error) {
	if f, ok := r.mem.Get(stationID); ok {
		hit := *f
		hit.Cached = true
		return &hit, nil
	}

	return r.mem.GetOrLoad(ctx, stationID, r.ttl, func(loadCtx context.Context) (*model.Forecast, error) {
		if f, err := r.getFromRedis(loadCtx, stationID); err == nil {
			return f, nil
		}

		f, err := r.fetcher.Fetch(loadCtx, stationID)
		if err != nil {
			return nil, err
		}
		r.cacheToRedis(loadCtx, stationID, f)
		return f, nil
	})
}

// getFromRedis retrieves a forecast from the shared Redis cache.
func (r *forecastRepository) getFromRedis(ctx context.Context, stationID string) (*model.Forecast, error) {
	val, err := r.redisClient.Get(ctx, cacheKey(stationID)).Result()
	if err != nil {
		return nil, err
	}

	var f model.Forecast
	if err := json.Unmarshal([]byte(val), &f); err != nil {
		return nil, err
	}
	f.Cached = true
	return &f, nil
}

// cacheToRedis stores a forecast in the shared Redis cache. Failures are
// logged, not surfaced: Redis being down must not fail a served fetch.
func (r *forecastRepository) cacheToRedis(ctx context.Context, stationID string, f *model.Forecast) {
	b, err := json.Marshal(f)
	if err != nil {
		return
	}
	if err := r.redisClient.Set(ctx, cacheKey(stationID), b, r.ttl).Err(); err != nil {
		r.log.Warnw("redis cache write failed", "station", stationID, "error", err)
	}
}

func cacheKey(stationID string) string {
	return "forecast:" + stationID
}
