// Package redis holds the shared second-level forecast cache client. Replicas
// behind one Redis share upstream fetches across processes.
package redis

import (
	"sync"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/alexanderchen5966/cwa-weather-api/internal/config"
)

var (
	client *redisv9.Client
	once   sync.Once
)

func GetClient() *redisv9.Client {
	once.Do(func() {
		client = redisv9.NewClient(&redisv9.Options{
			Addr: config.GetRedisAddr(),
		})
	})
	return client
}

// ResetClientForTest resets the Redis client singleton. Use only in tests.
func ResetClientForTest() {
	once = sync.Once{}
	client = nil
}
