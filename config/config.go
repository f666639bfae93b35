package config

import (
	"merchantdesk_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:        getEnvAsString("APP_NAME", "MerchantDesk_no_env"),
				Environment:    getEnvAsString("APP_ENV", "development"),
				Port:           getEnvAsString("APP_PORT", ":8084"),
				ReadTimeout:    getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:   getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 15*time.Second),
				IdleTimeout:    getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				MaxHeaderBytes: getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
			},
			Cors: &structs.CorsConfig{
				AllowedOrigins:   getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"localhost", "http://localhost:3000"}),
				AllowedMethods:   getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowedHeaders:   getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length", "Authorization"}),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "merchantdesk_db"),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret: getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
			},
			Cache: &structs.CacheConfig{
				Address:  getEnvAsString("CACHE_ADDRESS", "localhost:6379"),
				Username: getEnvAsString("CACHE_USERNAME", ""),
				Password: getEnvAsString("CACHE_PASSWORD", ""),
				DB:       getEnvAsInt("CACHE_DB", 0),

				PoolSize:     getEnvAsInt("CACHE_POOL_SIZE", 10),
				MinIdleConns: getEnvAsInt("CACHE_MIN_IDLE_CONNS", 2),
				MaxIdleConns: getEnvAsInt("CACHE_MAX_IDLE_CONNS", 5),
				PoolTimeout:  getEnvAsTimeDuration("CACHE_POOL_TIMEOUT", 30*time.Second),
				IdleTimeout:  getEnvAsTimeDuration("CACHE_IDLE_TIMEOUT", 5*time.Minute),

				DialTimeout:  getEnvAsTimeDuration("CACHE_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:  getEnvAsTimeDuration("CACHE_READ_TIMEOUT", 3*time.Second),
				WriteTimeout: getEnvAsTimeDuration("CACHE_WRITE_TIMEOUT", 3*time.Second),

				MaxRetries:      getEnvAsInt("CACHE_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("CACHE_MIN_RETRY_BACKOFF", 100*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("CACHE_MAX_RETRY_BACKOFF", 2*time.Second),

				PromoTTL:      getEnvAsTimeDuration("CACHE_PROMO_TTL", 5*time.Minute),
				CredentialTTL: getEnvAsTimeDuration("CACHE_CREDENTIAL_TTL", 15*time.Minute),
			},
			Email: &structs.EmailConfig{
				ApiKey: getEnvAsString("EMAIL_API_KEY", ""),
				From:   getEnvAsString("EMAIL_FROM", "orders@merchantdesk.example"),
			},
			Encryption: &structs.EncryptionConfig{
				Key: getEnvAsString("ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef"),
			},
			Wallet: &structs.WalletConfig{
				Provider:        getEnvAsString("WALLET_PROVIDER", "Khalti"),
				BaseURL:         getEnvAsString("WALLET_BASE_URL", "https://a.khalti.com/api/v2"),
				WebsiteURL:      getEnvAsString("WALLET_WEBSITE_URL", "http://localhost:3000"),
				ReturnURL:       getEnvAsString("WALLET_RETURN_URL", "http://localhost:8084/payment/callback"),
				SuccessURL:      getEnvAsString("WALLET_SUCCESS_URL", "http://localhost:3000/payment/success"),
				FailureURL:      getEnvAsString("WALLET_FAILURE_URL", "http://localhost:3000/payment/failure"),
				InitiateTimeout: getEnvAsTimeDuration("WALLET_INITIATE_TIMEOUT", 10*time.Second),
				LookupTimeout:   getEnvAsTimeDuration("WALLET_LOOKUP_TIMEOUT", 10*time.Second),
			},
			RateLimit: &structs.RateLimitConfig{
				Enabled: getEnvAsBool("RATE_LIMIT_ENABLED", true),

				GeneralLimit:  getEnvAsInt("RATE_LIMIT_GENERAL_LIMIT", 120),
				GeneralWindow: getEnvAsTimeDuration("RATE_LIMIT_GENERAL_WINDOW", time.Minute),

				MutationLimit:  getEnvAsInt("RATE_LIMIT_MUTATION_LIMIT", 30),
				MutationWindow: getEnvAsTimeDuration("RATE_LIMIT_MUTATION_WINDOW", time.Minute),

				CallbackLimit:  getEnvAsInt("RATE_LIMIT_CALLBACK_LIMIT", 60),
				CallbackWindow: getEnvAsTimeDuration("RATE_LIMIT_CALLBACK_WINDOW", time.Minute),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if GetConfig().Server.Environment == "production" {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
