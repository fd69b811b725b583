// Package upstream is the CWA open-data client: one Fetch per station, with
// per-attempt timeouts, bounded retries with jittered exponential backoff,
// and an outbound courtesy throttle.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/alexanderchen5966/cwa-weather-api/internal/config"
	"github.com/alexanderchen5966/cwa-weather-api/internal/model"
)

// Client issues forecast requests against the CWA F-C0032-001 datastore.
type Client struct {
	baseURL        string
	apiKey         string
	httpClient     *http.Client
	limiter        *rate.Limiter
	maxTries       int
	baseDelay      time.Duration
	attemptTimeout time.Duration
	log            *zap.SugaredLogger
}

// NewClient creates a CWA client from config. An optional custom http.Client
// may be injected, primarily for tests.
func NewClient(httpClient ...*http.Client) *Client {
	hc := http.DefaultClient
	if len(httpClient) > 0 && httpClient[0] != nil {
		hc = httpClient[0]
	}
	r, burst := config.GetUpstreamRateLimit()
	return &Client{
		baseURL:        config.GetCWAApiURL(),
		apiKey:         config.GetCWAAPIKey(),
		httpClient:     hc,
		limiter:        rate.NewLimiter(rate.Limit(r), burst),
		maxTries:       config.GetUpstreamMaxTries(),
		baseDelay:      config.GetUpstreamBaseDelay(),
		attemptTimeout: config.GetUpstreamTimeout(),
		log:            config.GetLogger(),
	}
}

// Fetch retrieves and parses the forecast for one station. Timeout and
// Unreachable failures are retried up to the attempt budget; UpstreamRejected
// and MalformedResponse are permanent. The whole call is bounded by the sum
// of attempt timeouts plus backoff delays; hitting that ceiling reports a
// Timeout.
func (c *Client) Fetch(ctx context.Context, stationID string) (*model.Forecast, error) {
	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.baseDelay

	forecast, err := backoff.Retry(ctx,
		func() (*model.Forecast, error) { return c.fetchOnce(ctx, stationID) },
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(uint(c.maxTries)),
		backoff.WithMaxElapsedTime(c.ceiling()),
	)
	if err != nil {
		if ue, ok := AsError(err); ok {
			return nil, ue
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: KindTimeout, Err: err}
		}
		return nil, &Error{Kind: KindUnreachable, Err: err}
	}
	return forecast, nil
}

// ceiling is the hard upper bound on one Fetch: every attempt's timeout plus
// the worst-case backoff schedule between attempts.
func (c *Client) ceiling() time.Duration {
	total := time.Duration(c.maxTries) * c.attemptTimeout
	delay := c.baseDelay
	for i := 1; i < c.maxTries; i++ {
		total += 2 * delay // jitter can stretch a delay up to 1.5x; leave headroom
		delay *= 2
	}
	return total
}

func (c *Client) fetchOnce(ctx context.Context, stationID string) (*model.Forecast, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, backoff.Permanent(&Error{Kind: KindTimeout, Err: err})
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("Authorization", c.apiKey)
	params.Set("locationName", stationID)

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, backoff.Permanent(&Error{Kind: KindUnreachable, Err: err})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.log.Warnw("CWA request timed out", "station", stationID)
			return nil, &Error{Kind: KindTimeout, Err: err}
		}
		c.log.Warnw("CWA request failed", "station", stationID, "error", err)
		return nil, &Error{Kind: KindUnreachable, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		detail := fmt.Sprintf("status %d: %s", resp.StatusCode, string(body))
		return nil, backoff.Permanent(&Error{Kind: KindUpstreamRejected, Detail: detail})
	}

	var data model.CWAForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, backoff.Permanent(&Error{Kind: KindMalformedResponse, Err: err})
	}

	forecast, err := parseForecast(stationID, &data, time.Now())
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	return forecast, nil
}
