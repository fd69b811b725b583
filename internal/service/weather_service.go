// Package service orchestrates one lookup: resolve the free-text place name,
// decide between no-match / ambiguous / resolved, then fetch through the
// cache layers. Resolution misses are ordinary outcomes; only upstream
// failures are errors, and their kind always reaches the caller.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderchen5966/cwa-weather-api/internal/config"
	"github.com/alexanderchen5966/cwa-weather-api/internal/model"
	"github.com/alexanderchen5966/cwa-weather-api/internal/repository"
	"github.com/alexanderchen5966/cwa-weather-api/internal/resolver"
	"github.com/alexanderchen5966/cwa-weather-api/internal/upstream"
)

// LookupServiceInterface is the single call surface the core exposes outward.
type LookupServiceInterface interface {
	Lookup(ctx context.Context, query string, timeout time.Duration) *model.LookupResult
}

// WeatherService composes resolver, cache, and upstream into one
// request/response cycle.
type WeatherService struct {
	Resolver       *resolver.Resolver
	Repo           repository.ForecastRepository
	MinScore       float64
	Margin         float64
	Limit          int
	DefaultTimeout time.Duration
	Log            *zap.SugaredLogger
}

// NewWeatherService creates a service wired from config. An optional
// repository may be injected, primarily for tests.
func NewWeatherService(res *resolver.Resolver, repo ...repository.ForecastRepository) *WeatherService {
	var r repository.ForecastRepository
	if len(repo) > 0 && repo[0] != nil {
		r = repo[0]
	} else {
		r = repository.NewForecastRepository()
	}
	return &WeatherService{
		Resolver:       res,
		Repo:           r,
		MinScore:       config.GetResolverMinScore(),
		Margin:         config.GetResolverMargin(),
		Limit:          config.GetResolverLimit(),
		DefaultTimeout: config.GetUpstreamTimeout(),
		Log:            config.GetLogger(),
	}
}

// Lookup resolves a free-text place name and returns a discriminated outcome:
// a forecast, a disambiguation list, a no-match, or a typed upstream failure.
// timeout <= 0 applies the configured default.
func (s *WeatherService) Lookup(ctx context.Context, query string, timeout time.Duration) *model.LookupResult {
	matches := s.Resolver.Resolve(query, s.Limit, s.MinScore)
	if len(matches) == 0 {
		return &model.LookupResult{Status: model.StatusNoMatch}
	}

	if isAmbiguous(matches, s.Margin) {
		return &model.LookupResult{
			Status:     model.StatusAmbiguous,
			Candidates: candidates(matches),
		}
	}

	top := matches[0]
	if timeout <= 0 {
		timeout = s.DefaultTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	forecast, err := s.Repo.GetForecast(fetchCtx, top.Entry.CanonicalID)
	if err != nil {
		s.Log.Warnw("forecast fetch failed", "station", top.Entry.CanonicalID, "error", err)
		return &model.LookupResult{
			Status:  model.StatusFailed,
			Station: top.Entry.CanonicalID,
			Score:   top.Score,
			Failure: failureInfo(err),
		}
	}

	return &model.LookupResult{
		Status:   model.StatusResolved,
		Station:  top.Entry.CanonicalID,
		Score:    top.Score,
		Forecast: forecast,
	}
}

// isAmbiguous reports whether the top candidate fails to clear the runner-up
// by the disambiguation margin. A unique exact match wins outright; two exact
// matches are always ambiguous.
func isAmbiguous(matches []resolver.Match, margin float64) bool {
	if len(matches) < 2 {
		return false
	}
	if matches[0].Score == 100 && matches[1].Score < 100 {
		return false
	}
	return matches[0].Score-matches[1].Score < margin
}

func candidates(matches []resolver.Match) []model.Candidate {
	out := make([]model.Candidate, len(matches))
	for i, m := range matches {
		out[i] = model.Candidate{
			Station:     m.Entry.CanonicalID,
			DisplayName: m.Entry.DisplayName,
			Score:       m.Score,
		}
	}
	return out
}

// failureInfo converts a fetch error to the wire failure shape, preserving
// the upstream kind. A caller-side deadline becomes a timeout failure.
func failureInfo(err error) *model.FailureInfo {
	if ue, ok := upstream.AsError(err); ok {
		return &model.FailureInfo{Kind: string(ue.Kind), Detail: ue.Detail}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &model.FailureInfo{Kind: string(upstream.KindTimeout)}
	}
	return &model.FailureInfo{Kind: string(upstream.KindUnreachable), Detail: err.Error()}
}
