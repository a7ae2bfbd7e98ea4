package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Cache    *CacheConfig
	Auth     *AuthConfig
	Email    *EmailConfig
	Storage  *StorageConfig
}

type ServerConfig struct {
	AppName        string        // FruitPanda
	Environment    string        // development, production
	Port           string        // :8082
	ServerURL      string        // public base URL of this API
	FrontendURL    string        // storefront base URL
	SupportEmail   string        // printed on receipts and in emails
	SupportPhone   string
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type CacheConfig struct {
	Address      string
	Username     string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DefaultTTL   time.Duration
}

type AuthConfig struct {
	AccessTokenSecret  string
	AccessTokenExpiry  time.Duration
	RefreshTokenSecret string
	RefreshTokenExpiry time.Duration
}

type EmailConfig struct {
	ApiKey string
	From   string
}

type StorageConfig struct {
	// ReceiptDir is the filesystem directory for generated receipt PDFs.
	ReceiptDir string
	// PublicBaseURL is prefixed to stored filenames to form pdf_url.
	PublicBaseURL string
}
