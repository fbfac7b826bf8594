package config

import (
	"log"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitLogger builds the process logger. A production logger is used when
// APP_ENV=production, the development one otherwise.
func InitLogger() {
	var err error
	if getEnv("APP_ENV", "development") == "production" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}

	Logger.Info("Zap logger initialized")
}
