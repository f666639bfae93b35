package structs

import "time"

type Config struct {
	Server     *ServerConfig
	Cors       *CorsConfig
	Database   *DatabaseConfig
	Auth       *AuthConfig
	Cache      *CacheConfig
	Email      *EmailConfig
	Wallet     *WalletConfig
	Encryption *EncryptionConfig
	RateLimit  *RateLimitConfig
}

type RateLimitConfig struct {
	Enabled bool

	GeneralLimit  int
	GeneralWindow time.Duration

	// Order and payment mutations
	MutationLimit  int
	MutationWindow time.Duration

	// The unauthenticated gateway callback
	CallbackLimit  int
	CallbackWindow time.Duration
}

type EncryptionConfig struct {
	Key string // 32 bytes, AES-256
}

type ServerConfig struct {
	AppName        string        // MerchantDesk
	Environment    string        // development, production
	Port           string        // :8084
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
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

type AuthConfig struct {
	AccessTokenSecret string
}

type CacheConfig struct {
	Address  string
	Username string
	Password string
	DB       int

	PoolSize     int
	MinIdleConns int
	MaxIdleConns int
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration

	PromoTTL      time.Duration
	CredentialTTL time.Duration
}

type EmailConfig struct {
	ApiKey string
	From   string
}

type WalletConfig struct {
	Provider        string // gateway name as stored on payment rows
	BaseURL         string
	WebsiteURL      string // storefront origin reported to the provider
	ReturnURL       string // where the gateway redirects the shopper, must resolve to /payment/callback
	SuccessURL      string // landing page after a confirmed payment
	FailureURL      string // landing page for every failure branch
	InitiateTimeout time.Duration
	LookupTimeout   time.Duration
}
