package config

import (
	"flag"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func initConfig() {
	once.Do(func() {
		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Errorw("Error finding project root", "error", err)
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			viper.AddConfigPath(root)
		}

		err = viper.MergeInConfig()
		if err != nil {
			GetLogger().Errorw("Error reading config file", "error", err)
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

func getDuration(key string, fallback time.Duration) time.Duration {
	initConfig()
	durStr := viper.GetString(key)
	if durStr == "" {
		return fallback
	}
	dur, err := time.ParseDuration(durStr)
	if err != nil {
		return fallback
	}
	return dur
}

func GetCWAApiURL() string {
	initConfig()
	return viper.GetString("cwa.api_url")
}

// GetCWAAPIKey returns the CWA open-data authorization key from the
// environment (.env supported via godotenv).
func GetCWAAPIKey() string {
	_ = godotenv.Load()
	return os.Getenv("CWA_API_KEY")
}

func GetRedisAddr() string {
	initConfig()
	addr := viper.GetString("redis.addr")
	if addr == "" {
		addr = "localhost:6379"
	}
	return addr
}

func GetServerPort() string {
	initConfig()
	port := viper.GetString("server.port")
	if port == "" {
		port = "8080"
	}
	return port
}

// GetCacheExpiration returns the forecast cache TTL. Defaults to 10m, the
// refresh cadence of the CWA 36-hour forecast feed.
func GetCacheExpiration() time.Duration {
	return getDuration("cache.expiration", 10*time.Minute)
}

// GetCacheCapacity returns the in-process cache entry bound.
func GetCacheCapacity() int {
	initConfig()
	capacity := viper.GetInt("cache.capacity")
	if capacity <= 0 {
		capacity = 128
	}
	return capacity
}

// GetResolverMinScore returns the minimum fuzzy-match score a candidate must
// clear to be considered at all.
func GetResolverMinScore() float64 {
	initConfig()
	minScore := viper.GetFloat64("resolver.min_score")
	if minScore == 0 {
		minScore = 75
	}
	return minScore
}

// GetResolverMargin returns the disambiguation margin: the score gap the top
// candidate needs over the runner-up before the lookup proceeds unasked.
func GetResolverMargin() float64 {
	initConfig()
	margin := viper.GetFloat64("resolver.margin")
	if margin == 0 {
		margin = 5
	}
	return margin
}

func GetResolverLimit() int {
	initConfig()
	limit := viper.GetInt("resolver.limit")
	if limit <= 0 {
		limit = 5
	}
	return limit
}

// GetResolverCorrections returns the manual correction table mapping common
// input variants straight to a catalog name, applied before fuzzy scoring.
func GetResolverCorrections() map[string]string {
	initConfig()
	return viper.GetStringMapString("resolver.corrections")
}

// GetUpstreamTimeout returns the per-attempt timeout for CWA calls.
func GetUpstreamTimeout() time.Duration {
	return getDuration("upstream.timeout", 10*time.Second)
}

// GetUpstreamMaxTries returns the total attempt budget per fetch (first try
// plus retries).
func GetUpstreamMaxTries() int {
	initConfig()
	tries := viper.GetInt("upstream.max_tries")
	if tries <= 0 {
		tries = 3
	}
	return tries
}

// GetUpstreamBaseDelay returns the initial retry backoff interval.
func GetUpstreamBaseDelay() time.Duration {
	return getDuration("upstream.base_delay", 500*time.Millisecond)
}

// GetUpstreamRateLimit returns the outbound courtesy throttle for the CWA
// API as requests-per-second and burst.
func GetUpstreamRateLimit() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("upstream.rate")
	if rate == 0 {
		rate = 5
	}
	burst = viper.GetInt("upstream.burst")
	if burst == 0 {
		burst = 5
	}
	return
}

// GetCatalogPath returns the location catalog JSON path, empty when the
// built-in default catalog should be used.
func GetCatalogPath() string {
	initConfig()
	return viper.GetString("catalog.path")
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		l, err := zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
