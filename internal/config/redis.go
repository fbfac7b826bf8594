package config

import (
	"context"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var RedisClient *redis.Client

// InitRedis connects to the Redis instance holding notification inboxes.
func InitRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     Cfg.RedisAddr,
		Password: Cfg.RedisPassword,
		DB:       Cfg.RedisDB,
	})

	s, err := RedisClient.Ping(context.Background()).Result()
	if err != nil {
		Logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	Logger.Info("Connected to Redis", zap.String("ping", s))
}
