package config

import (
	"sync"
	"time"

	"github.com/muhammadMilon/FruitPanda-sub001/structs"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "FruitPanda"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8082"),
				ServerURL:      getEnvAsString("SERVER_URL", "http://localhost:8082"),
				FrontendURL:    getEnvAsString("FRONTEND_URL", "http://localhost:3000"),
				SupportEmail:   getEnvAsString("SUPPORT_EMAIL", "support@fruitpanda.com.bd"),
				SupportPhone:   getEnvAsString("SUPPORT_PHONE", "+880 1700-000000"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowOrigins:     getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"localhost", "http://localhost:3000"}),
				AllowMethods:     getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
				AllowHeaders:     getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Content-Disposition"}),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "fruitpanda_db"),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Cache: &structs.CacheConfig{
				Address:      getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:     getEnvAsString("REDIS_USERNAME", ""),
				Password:     getEnvAsString("REDIS_PASSWORD", ""),
				DB:           getEnvAsInt("REDIS_DB", 0),
				PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				DialTimeout:  getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
				DefaultTTL:   getEnvAsTimeDuration("REDIS_DEFAULT_TTL", 5*time.Minute),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret:  getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
				AccessTokenExpiry:  getEnvAsTimeDuration("AUTH_ACCESS_TOKEN_EXPIRY", 15*time.Minute),
				RefreshTokenSecret: getEnvAsString("AUTH_REFRESH_TOKEN_SECRET", "default_refresh_secret"),
				RefreshTokenExpiry: getEnvAsTimeDuration("AUTH_REFRESH_TOKEN_EXPIRY", 7*24*time.Hour),
			},
			Email: &structs.EmailConfig{
				ApiKey: getEnvAsString("RESEND_API_KEY", ""),
				From:   getEnvAsString("EMAIL_FROM", "Fruit Panda <orders@fruitpanda.com.bd>"),
			},
			Storage: &structs.StorageConfig{
				ReceiptDir:    getEnvAsString("RECEIPT_DIR", "./uploads/receipts"),
				PublicBaseURL: getEnvAsString("RECEIPT_PUBLIC_BASE_URL", "/receipts/files"),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if IsProduction() {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
