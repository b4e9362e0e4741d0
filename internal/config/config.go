package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// BackendURL is the remote storefront API root, including the /api/ prefix.
	BackendURL string
	HTTPPort   string

	// StorageBackend selects where client state lives: "file", "redis" or "memory".
	StorageBackend string
	StatePath      string
	RedisAddr      string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	LogLevel string
	Env      string

	// Variant flags. The two deployed web clients differ on these points.
	IncludeEmailOnSignup      bool
	ClearRefreshTokenOnLogout bool
	RequireLoginForCart       bool
	SendCartItems             bool
}

// Load reads configuration from the environment, with an optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		BackendURL:      getEnv("BACKEND_URL", "https://ecommerce-backend-2-qntk.onrender.com/api/"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		StorageBackend:  getEnv("STORAGE_BACKEND", "file"),
		StatePath:       getEnv("STATE_PATH", "storefront-state.json"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Env:             getEnv("APP_ENV", "dev"),

		IncludeEmailOnSignup:      getEnvBool("INCLUDE_EMAIL_ON_SIGNUP", true),
		ClearRefreshTokenOnLogout: getEnvBool("CLEAR_REFRESH_TOKEN_ON_LOGOUT", true),
		RequireLoginForCart:       getEnvBool("REQUIRE_LOGIN_FOR_CART", true),
		SendCartItems:             getEnvBool("SEND_CART_ITEMS", true),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
