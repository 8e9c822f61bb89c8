package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultBackendURL       = "http://localhost:3000"
	defaultPort             = 8080
	defaultPlaceholderImage = "https://via.placeholder.com/150"
)

// ProvideConfig reads the configuration from the environment. Variables found in the file named by
// ENV_FILE, ".env" by default, are added to the environment unless already set.
func ProvideConfig() Config {
	loadEnvFile(getEnv("ENV_FILE", ".env"))

	return Config{
		BasePath:         getEnv("BASE_PATH", ""),
		Port:             getEnvAsInt("PORT", defaultPort),
		Backend:          backend{URL: getEnvAsURL("BACKEND_URL", defaultBackendURL)},
		PlaceholderImage: getEnv("PLACEHOLDER_IMAGE", defaultPlaceholderImage),
		AllowedOrigins:   getEnvAsList("ALLOWED_ORIGINS"),
		Logging: logging{
			Level:  getEnvAsLevel("LOG_LEVEL", slog.LevelInfo),
			Pretty: getEnvAsBool("LOG_PRETTY", false),
		},
		Tracing: tracing{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),
		},
	}
}

type Config struct {
	BasePath         string
	Port             int
	Backend          backend
	PlaceholderImage string
	AllowedOrigins   []string
	Logging          logging
	Tracing          tracing
}

type backend struct {
	URL string
}

type logging struct {
	Level  slog.Level
	Pretty bool
}

// tracing is disabled if JaegerEndpoint is empty.
type tracing struct {
	JaegerEndpoint string
}

// Address returns the address the HTTP server listens on.
func (c Config) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}

func getEnvAsInt(key string, fallback int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value of %s as integer: %s", key, err.Error())
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("Can't parse value of %s as bool: %s", key, err.Error())
	}
	return value
}

func getEnvAsURL(key, fallback string) string {
	value := strings.TrimSuffix(getEnv(key, fallback), "/")
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		log.Fatalf("Can't parse value of %s as absolute URL: %q", key, value)
	}
	return value
}

func getEnvAsLevel(key string, fallback slog.Level) slog.Level {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(valueStr)); err != nil {
		log.Fatalf("Can't parse value of %s as log level: %s", key, err.Error())
	}
	return level
}

func getEnvAsList(key string) []string {
	value := getEnv(key, "")
	if value == "" {
		return nil
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func loadEnvFile(name string) {
	err := godotenv.Load(name)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Can't load environment file %s: %s", name, err.Error())
	}
}
