package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "3000" || cfg.Media.Driver != MediaLocal || cfg.Media.URLPrefix != "/images" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Mongo.URI != "" || cfg.Postgres.URL != "" || cfg.Redis.Addr != "" {
		t.Fatalf("defaults must not select an external backend: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "8081"
log:
  level: debug
mongo:
  uri: mongodb://localhost:27017
redis:
  addr: localhost:6379
  ttl: 30s
media:
  driver: s3
  s3:
    bucket: avatars
    use_path_style: true
    public_url: http://localhost:9000/avatars
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "8081" || cfg.Log.Level != "debug" {
		t.Fatalf("unexpected server/log %+v", cfg)
	}
	if cfg.Server.PublicDir != "public" || cfg.Mongo.Database != "quizzapp" {
		t.Fatalf("unset keys should keep defaults: %+v", cfg)
	}
	if cfg.Media.Driver != MediaS3 || cfg.Media.S3.Bucket != "avatars" || !cfg.Media.S3.UsePathStyle {
		t.Fatalf("unexpected media config %+v", cfg.Media)
	}
	if got := TTLDuration(cfg.Redis.TTL, time.Minute); got != 30*time.Second {
		t.Fatalf("expected 30s ttl, got %s", got)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTTLDuration(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("empty should fall back, got %s", got)
	}
	if got := TTLDuration("nonsense", time.Minute); got != time.Minute {
		t.Fatalf("invalid should fall back, got %s", got)
	}
	if got := TTLDuration("2m", time.Minute); got != 2*time.Minute {
		t.Fatalf("expected 2m, got %s", got)
	}
}
