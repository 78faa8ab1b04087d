package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"quizzapp-service/internal/infra/media"
	"quizzapp-service/internal/logging"
)

// Media drivers.
const (
	MediaLocal = "local"
	MediaS3    = "s3"
)

type Config struct {
	Server struct {
		Port      string `yaml:"port"`
		PublicDir string `yaml:"public_dir"`
	} `yaml:"server"`
	Log   logging.Config `yaml:"log"`
	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
		Channel  string `yaml:"channel"`
	} `yaml:"redis"`
	Media struct {
		Driver    string         `yaml:"driver"`
		Dir       string         `yaml:"dir"`
		URLPrefix string         `yaml:"url_prefix"`
		S3        media.S3Config `yaml:"s3"`
	} `yaml:"media"`
	Upload struct {
		MaxBytes int64 `yaml:"max_bytes"`
	} `yaml:"upload"`
}

// Default returns the settings used when no file is present: in-memory
// stores, local avatars under public/images, info logs.
func Default() Config {
	var cfg Config
	cfg.Server.Port = "3000"
	cfg.Server.PublicDir = "public"
	cfg.Log.Level = "info"
	cfg.Mongo.Database = "quizzapp"
	cfg.Media.Driver = MediaLocal
	cfg.Media.Dir = "public/images"
	cfg.Media.URLPrefix = "/images"
	cfg.Upload.MaxBytes = 5 << 20
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
