package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort string `envconfig:"HTTP_PORT" default:"3900"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
	// APIKey is optional; when empty the API is open, which is the normal
	// single-user local setup.
	APIKey string `envconfig:"API_KEY"`
}

type StorageEnv struct {
	Type    string `envconfig:"STORAGE_TYPE" default:"local"`
	BaseDir string `envconfig:"STORAGE_BASE_DIR" default:".formlab/data"`
	// S3 settings (used when Type == "s3")
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"formlab/"`
	S3Region string `envconfig:"S3_REGION" default:"us-east-1"`
}

type EditorEnv struct {
	// CatalogPath optionally points at a YAML file overriding the built-in
	// field type catalog.
	CatalogPath string `envconfig:"CATALOG_PATH"`
	// StatusTTL is how long transient notices stay visible, in seconds.
	StatusTTLSeconds int `envconfig:"STATUS_TTL_SECONDS" default:"3"`
}

type Env struct {
	BaseEnv
	StorageEnv
	EditorEnv
}

const namespace = "FORMLAB"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelDebug
	}
	return level
}
