package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds everything read from the environment at boot.
type Settings struct {
	AppPort          string
	AppEnv           string
	DBDriver         string
	DBDSN            string
	DBTracing        bool
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	JWTSecret        string
	BatchSize        int
	SubCommentAuthor string
	Categories       []string
	CORSOrigins      []string
	AWSBucket        string
	AWSRegion        string
	AWSAccessKeyID   string
	AWSSecretKey     string
}

var Cfg Settings

func Init() {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	Cfg = Load()

	if Cfg.DBDSN == "" {
		Logger.Fatal("DB_DSN is not set")
	}
	if Cfg.RedisAddr == "" {
		Logger.Fatal("REDIS_ADDR is not set")
	}
	if Cfg.JWTSecret == "" {
		Logger.Fatal("JWT_SECRET is not set")
	}
	if Cfg.DBDriver != "mysql" && Cfg.DBDriver != "postgres" {
		Logger.Fatal("DB_DRIVER must be mysql or postgres")
	}
	if Cfg.SubCommentAuthor != "parent" && Cfg.SubCommentAuthor != "own" {
		Logger.Fatal("SUBCOMMENT_AUTHOR must be parent or own")
	}
}

// Load reads the settings from the process environment, applying defaults.
func Load() Settings {
	return Settings{
		AppPort:          getEnv("APP_PORT", "8080"),
		AppEnv:           getEnv("APP_ENV", "development"),
		DBDriver:         getEnv("DB_DRIVER", "mysql"),
		DBDSN:            os.Getenv("DB_DSN"),
		DBTracing:        getBool("DB_TRACING"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		RedisDB:          getInt("REDIS_DB", 0),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		BatchSize:        getInt("BATCH_SIZE", 100),
		SubCommentAuthor: getEnv("SUBCOMMENT_AUTHOR", "parent"),
		Categories:       splitList(os.Getenv("BOARD_CATEGORIES")),
		CORSOrigins:      splitList(os.Getenv("CORS_ORIGINS")),
		AWSBucket:        os.Getenv("AWS_BUCKET_NAME"),
		AWSRegion:        os.Getenv("AWS_REGION"),
		AWSAccessKeyID:   os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:     os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func getBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
