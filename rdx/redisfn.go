package rdx

import (
	"log"
	"time"

	"soko/config"
	"soko/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init opens the shared Redis connection used for caching and the listing
// event channel. The service degrades to uncached reads if Redis is down.
func Init() {
	Conn = redis.NewClient(&redis.Options{
		Addr: config.App.RedisAddr,
	})
	if err := Conn.Ping(globals.Ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s: %v (continuing without cache)", config.App.RedisAddr, err)
	}
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxSet(key, value string) error {
	return Conn.Set(globals.Ctx, key, value, 0).Err()
}

func RdxSetWithTTL(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}
