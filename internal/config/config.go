package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"disease-diagnosis-service/internal/core/domain"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Models   ModelsConfig
	Database DatabaseConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level  string
	Format string
}

// ModelsConfig locates the scaler and model artifact of every domain.
// Relative file names are resolved against Dir.
type ModelsConfig struct {
	Dir             string
	HeartModel      string
	HeartScaler     string
	DiabetesModel   string
	DiabetesScaler  string
	ParkinsonModel  string
	ParkinsonScaler string
}

type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// DSN renders a postgres URL with user info and path escaped.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// Layout maps each domain to its artifact paths.
func (m ModelsConfig) Layout() map[domain.Domain]domain.ArtifactPaths {
	return map[domain.Domain]domain.ArtifactPaths{
		domain.DomainHeart:     {Scaler: m.HeartScaler, Model: m.HeartModel},
		domain.DomainDiabetes:  {Scaler: m.DiabetesScaler, Model: m.DiabetesModel},
		domain.DomainParkinson: {Scaler: m.ParkinsonScaler, Model: m.ParkinsonModel},
	}
}

func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")

	v.SetDefault("MODEL_DIR", "Model")
	v.SetDefault("MODEL_HEART_MODEL", "heart_disease_model.json")
	v.SetDefault("MODEL_HEART_SCALER", "scaler_heart.json")
	v.SetDefault("MODEL_DIABETES_MODEL", "diabetes_model.json")
	v.SetDefault("MODEL_DIABETES_SCALER", "scaler_diabetes.json")
	v.SetDefault("MODEL_PARKINSON_MODEL", "parkinsons_model.json")
	v.SetDefault("MODEL_PARKINSON_SCALER", "scaler_parkinsons.json")

	v.SetDefault("DATABASE_ENABLED", false)
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_NAME", "diagnosis")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 5)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 1)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	// Env. An empty MODEL_* value disables that artifact.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	shutdownTimeout, err := time.ParseDuration(v.GetString("SERVER_SHUTDOWN_TIMEOUT"))
	if err != nil {
		shutdownTimeout = 10 * time.Second
	}
	connMaxLifetime, err := time.ParseDuration(v.GetString("DATABASE_CONN_MAX_LIFETIME"))
	if err != nil {
		connMaxLifetime = 30 * time.Minute
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: shutdownTimeout,
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Models: ModelsConfig{
			Dir:             v.GetString("MODEL_DIR"),
			HeartModel:      v.GetString("MODEL_HEART_MODEL"),
			HeartScaler:     v.GetString("MODEL_HEART_SCALER"),
			DiabetesModel:   v.GetString("MODEL_DIABETES_MODEL"),
			DiabetesScaler:  v.GetString("MODEL_DIABETES_SCALER"),
			ParkinsonModel:  v.GetString("MODEL_PARKINSON_MODEL"),
			ParkinsonScaler: v.GetString("MODEL_PARKINSON_SCALER"),
		},
		Database: DatabaseConfig{
			Enabled:         v.GetBool("DATABASE_ENABLED"),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid SERVER_PORT %d", cfg.Server.Port)
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
