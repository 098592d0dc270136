package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Where hotels, room types and availability are read from: "postgrest" or "sql".
	DataSource  string `mapstructure:"DATA_SOURCE"`
	SQLDriver   string `mapstructure:"SQL_DRIVER"` // "postgres" or "sqlite"
	DatabaseDSN string `mapstructure:"DATABASE_DSN"`

	// Orders are stored in MongoDB unless ORDER_STORE is "sql".
	OrderStore string `mapstructure:"ORDER_STORE"`
	MongoURL   string `mapstructure:"MONGO_URL"`
	MongoDB    string `mapstructure:"MONGO_DB"`

	// Hosted database REST endpoint.
	SupabaseURL            string  `mapstructure:"SUPABASE_URL"`
	SupabaseKey            string  `mapstructure:"SUPABASE_KEY"`
	SupabaseTimeoutSeconds int     `mapstructure:"SUPABASE_TIMEOUT_SECONDS"`
	SupabaseRPS            float64 `mapstructure:"SUPABASE_RPS"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	SearchCacheTTLSeconds int `mapstructure:"SEARCH_CACHE_TTL_SECONDS"`

	// Payments. An empty key keeps checkout on the simulated gateway.
	StripeKey string `mapstructure:"STRIPE_KEY"`
	Currency  string `mapstructure:"CURRENCY"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 200)
	viper.SetDefault("DATA_SOURCE", "postgrest")
	viper.SetDefault("SQL_DRIVER", "postgres")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("ORDER_STORE", "mongo")
	viper.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "hotelbook")
	viper.SetDefault("SUPABASE_URL", "")
	viper.SetDefault("SUPABASE_KEY", "")
	viper.SetDefault("SUPABASE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("SUPABASE_RPS", 20)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SEARCH_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("CURRENCY", "cny")
}

func LoadConfig() {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// SupabaseTimeout is the per-request timeout of the hosted database client.
func (c Config) SupabaseTimeout() time.Duration {
	if c.SupabaseTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.SupabaseTimeoutSeconds) * time.Second
}

// SearchCacheTTL is how long hotel listings stay cached.
func (c Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.SearchCacheTTLSeconds) * time.Second
}
