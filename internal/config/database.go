package config

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the shared gorm handle. Repositories prefer the transaction carried by their context.
var DB *gorm.DB

// InitDB opens the relational store selected by DB_DRIVER.
func InitDB() {
	var dialector gorm.Dialector
	switch Cfg.DBDriver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  Cfg.DBDSN,
			PreferSimpleProtocol: true,
		})
	default:
		dialector = mysql.Open(Cfg.DBDSN)
	}

	var err error
	DB, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		Logger.Fatal("Error connecting to the database", zap.Error(err))
	}

	if Cfg.DBTracing {
		InitTracing()
		if err := DB.Use(otelgorm.NewPlugin(otelgorm.WithTracerProvider(TracerProvider))); err != nil {
			Logger.Fatal("Failed to use otelgorm", zap.Error(err))
		}
	}
	Logger.Info("Database connected", zap.String("driver", Cfg.DBDriver))
}
