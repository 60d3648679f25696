package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server        ServerConfig
	Classifier    ClassifierConfig
	UI            UIConfig
	OpenAI        OpenAIConfig
	RedisConfig   RedisConfig
	CacheEnable   bool `env:"CACHE_ENABLE"`
	AdvisorEnable bool `env:"ADVISOR_ENABLE"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
}

// ClassifierConfig points at the server that owns /model_status, /upload
// and /train_model. A zero timeout means the call is bounded only by the
// request context.
type ClassifierConfig struct {
	BaseURL       string        `env:"CLASSIFIER_BASE_URL" envDefault:"http://localhost:5000"`
	UploadTimeout time.Duration `env:"CLASSIFIER_UPLOAD_TIMEOUT" envDefault:"60s"`
	TrainTimeout  time.Duration `env:"CLASSIFIER_TRAIN_TIMEOUT" envDefault:"0s"`
}

type UIConfig struct {
	NotificationTTL time.Duration `env:"UI_NOTIFICATION_TTL" envDefault:"5s"`
	SessionIdleTTL  time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	SecureCookie    bool          `env:"SESSION_SECURE_COOKIE"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"http://localhost:8000/v1"`
	Model   string `env:"OPENAI_MODEL" envDefault:"default"`
}

// Load reads an optional .env file from the working directory and then
// parses the process environment. Variables already set in the
// environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
