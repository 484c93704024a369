package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"quiz-portal/pkg/database"
	"quiz-portal/pkg/validator"
)

type Config struct {
	Env     string        `mapstructure:"env" validate:"oneof=development production staging"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Store   StoreConfig   `mapstructure:"store"`
	Redis   RedisConfig   `mapstructure:"redis"`
	DB      DBConfig      `mapstructure:"db"`
	Latency LatencyConfig `mapstructure:"latency"`
	Token   TokenConfig   `mapstructure:"token"`
}

type HTTPConfig struct {
	Addr           string   `mapstructure:"addr" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"min=1"`
}

type StoreConfig struct {
	Driver    string `mapstructure:"driver" validate:"oneof=memory redis postgres"`
	Namespace string `mapstructure:"namespace" validate:"required"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type DBConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     string `mapstructure:"port" validate:"required"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required"`
	SSL      string `mapstructure:"ssl" validate:"oneof=disable require verify-full"`
}

type LatencyConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type TokenConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

var defaults = map[string]interface{}{
	"env":                  "development",
	"http.addr":            ":8080",
	"http.allowed_origins": []string{"http://localhost:3000"},
	"store.driver":         "memory",
	"store.namespace":      "demo",
	"redis.addr":           "localhost:6379",
	"db.host":              "localhost",
	"db.port":              "5432",
	"db.user":              "postgres",
	"db.password":          "",
	"db.name":              "quiz",
	"db.ssl":               "disable",
	"latency.enabled":      true,
	"token.ttl":            "8760h",
}

var envBindings = map[string]string{
	"env":                  "APP_ENV",
	"http.addr":            "HTTP_ADDR",
	"http.allowed_origins": "ALLOWED_ORIGINS",
	"store.driver":         "STORE_DRIVER",
	"store.namespace":      "STORE_NAMESPACE",
	"redis.addr":           "REDIS_ADDR",
	"db.host":              "DB_HOST",
	"db.port":              "DB_PORT",
	"db.user":              "DB_USER",
	"db.password":          "DB_PASSWORD",
	"db.name":              "DB_NAME",
	"db.ssl":               "DB_SSL",
	"latency.enabled":      "LATENCY_ENABLED",
	"token.ttl":            "TOKEN_TTL",
}

// Init reads .env, an optional configs/<configName> file and the environment, in
// increasing precedence. An empty configName falls back to $CONFIG_NAME, then "default".
func Init(configName string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configName == "" {
		configName = os.Getenv("CONFIG_NAME")
	}
	if configName == "" {
		configName = "default"
	}
	v.AddConfigPath("configs")
	v.SetConfigName(configName)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c DBConfig) Postgres() *database.Config {
	return &database.Config{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		DBName:   c.Name,
		SSLMode:  c.SSL,
	}
}
