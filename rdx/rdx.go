package rdx

import (
	"os"
	"time"

	"lotoria/globals"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init creates the shared redis client. Pub/sub carries collection change
// notifications; plain keys carry short-lived OTP codes.
func Init() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})
	return Conn.Ping(globals.Ctx).Err()
}

func RdxSet(key, value string, ttl time.Duration) error {
	return Conn.Set(globals.Ctx, key, value, ttl).Err()
}

func RdxGet(key string) (string, error) {
	return Conn.Get(globals.Ctx, key).Result()
}

func RdxDel(key string) error {
	return Conn.Del(globals.Ctx, key).Err()
}
