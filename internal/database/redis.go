package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CiurtinAndrei/ChatApp-backend/internal/config"
)

var Redis *redis.Client
var Ctx = context.Background()

func InitRedis() {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	_, err := Redis.Ping(Ctx).Result()
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Token revocation will be disabled.", err)
	} else {
		log.Println("Connected to Redis successfully")
	}
}

// BlacklistToken revokes a token by JTI until its natural expiry.
func BlacklistToken(jti string, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	key := fmt.Sprintf("token_blacklist:%s", jti)
	return Redis.Set(Ctx, key, "revoked", ttl).Err()
}

// IsTokenBlacklisted reports whether a JTI has been revoked. Fails open when
// Redis is unavailable so a cache outage cannot lock everyone out.
func IsTokenBlacklisted(jti string) bool {
	if Redis == nil || jti == "" {
		return false
	}
	key := fmt.Sprintf("token_blacklist:%s", jti)
	exists, err := Redis.Exists(Ctx, key).Result()
	if err != nil {
		return false
	}
	return exists > 0
}
