package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env               string `yaml:"env" default:"development"`
	BackendConfig     `yaml:"backend"`
	SessionConfig     `yaml:"session"`
	Server            `yaml:"server"`
	RateLimiterConfig `yaml:"rate_limiter"`
	RedisConfig       `yaml:"redis"`
}

// BackendConfig points the gateway at the commerce platform's REST API.
// The base URL must come from configuration, never from code.
type BackendConfig struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_BASE_URL" env-default:"http://localhost:3030"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"10s"`
}

type SessionConfig struct {
	Secret          string        `yaml:"secret" env:"SESSION_SECRET"`
	CookieName      string        `yaml:"cookie_name" env:"SESSION_COOKIE_NAME" env-default:"session"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"SESSION_ACCESS_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"SESSION_REFRESH_TTL" env-default:"20m"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type RateLimiterConfig struct {
	Limit  int           `yaml:"limit" env:"RATE_LIMITER_LIMIT" env-default:"10"`
	Window time.Duration `yaml:"window" env:"RATE_LIMITER_WINDOW" env-default:"1m"`
}

type Server struct {
	Port        int           `yaml:"port" env:"SERVER_PORT" env-default:"8082"`
	Host        string        `yaml:"host" env:"SERVER_HOST" env-default:"localhost"`
	Timeout     time.Duration `yaml:"timeout" env:"SERVER_TIMEOUT" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// -------------Get Config Path from Flag or Env --------------
var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "Path to the config file")
}

func fetchConfigPath() string {
	var res string

	if !flag.Parsed() {
		flag.Parse()
	}

	res = configPath

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		panic("config path is not provided")
	}

	return res
}

func LoadConfig() Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}
	return LoadConfigFromPath(path)
}

func LoadConfigFromPath(path string) Config {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic(err)
	}
	return cfg
}
