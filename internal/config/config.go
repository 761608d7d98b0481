package config

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/cors"
)

// SnapshotConfig points at the S3-compatible bucket used by `server export`.
// When AccountID is set the endpoint is derived for Cloudflare R2.
type SnapshotConfig struct {
	AccountID       string `envconfig:"ACCOUNT_ID"`
	Endpoint        string `envconfig:"ENDPOINT"`
	AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
	Bucket          string `envconfig:"BUCKET"`
	Region          string `envconfig:"REGION" default:"auto"`
}

type Config struct {
	DB_URL         string   `envconfig:"DB_URL" default:"sqlite:robofriends.db"`
	Port           string   `envconfig:"PORT" default:"5000"`
	Environment    string   `envconfig:"ENV" default:"development"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	Snapshot       SnapshotConfig

	// EnvFile is the dotenv file that was looked up; EnvFileLoaded reports whether it was found.
	EnvFile       string `ignored:"true"`
	EnvFileLoaded bool   `ignored:"true"`
}

// ClientConfig is read by the robofriends CLI.
type ClientConfig struct {
	APIURL string `envconfig:"ROBOFRIENDS_API_URL" default:"http://localhost:5000"`
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads the optional dotenv file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	var c Config
	c.EnvFile, c.EnvFileLoaded = loadEnvFile()
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return c, nil
}

func LoadClient() (ClientConfig, error) {
	var c ClientConfig
	loadEnvFile()
	if err := envconfig.Process("", &c); err != nil {
		return ClientConfig{}, fmt.Errorf("load client config: %w", err)
	}
	return c, nil
}

func loadEnvFile() (string, bool) {
	envFile := getEnv("ENV_FILE", ".env")
	return envFile, godotenv.Load(envFile) == nil
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}
}
