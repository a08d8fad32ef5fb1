package helpers

import "github.com/redis/go-redis/v9"

// NewRedisClient builds the client backing the rating cache. Connectivity
// is not probed here: a Redis outage degrades cache reads to SQL and must
// not block startup.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
