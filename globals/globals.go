package globals

import (
	"context"
	"os"
)

var JwtSecret = []byte(Getenv("JWT_SECRET", "lotoria_dev_secret"))

// Context keys
type ContextKey string

const RoleKey ContextKey = "role"
const UserIDKey ContextKey = "userId"

var Ctx = context.Background()

// Getenv reads an environment variable with a fallback default.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
