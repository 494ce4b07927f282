package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration, loaded from config.yaml (or the
// file named by CONFIG_PATH) with env-var overrides on top.
type Config struct {
	ServerAddr     string   `yaml:"server_addr"`
	GinMode        string   `yaml:"gin_mode"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	DBPath             string `yaml:"db_path"`
	ResultCacheTTLSecs int    `yaml:"result_cache_ttl_seconds"`

	VideoFrameCount  int `yaml:"video_frame_count"`
	WebcamFrameCount int `yaml:"webcam_frame_count"`

	ReportTitle string `yaml:"report_title"`
}

// Load reads the YAML config if present, applies env overrides, and fills
// in defaults for anything still unset.
func Load() (Config, error) {
	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing %s: %w", configPath, err)
		}
	}

	// Env vars override YAML values
	envOverride(&cfg.ServerAddr, "SERVER_ADDR")
	envOverride(&cfg.GinMode, "GIN_MODE")
	envOverrideList(&cfg.AllowedOrigins, "ALLOWED_ORIGINS")
	envOverride(&cfg.DBPath, "DB_PATH")
	envOverrideInt(&cfg.ResultCacheTTLSecs, "RESULT_CACHE_TTL_SECONDS")
	envOverrideInt(&cfg.VideoFrameCount, "VIDEO_FRAME_COUNT")
	envOverrideInt(&cfg.WebcamFrameCount, "WEBCAM_FRAME_COUNT")
	envOverride(&cfg.ReportTitle, "REPORT_TITLE")

	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":8080"
	}
	if cfg.GinMode == "" {
		cfg.GinMode = "debug"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "./deepcheck.db"
	}
	if cfg.ResultCacheTTLSecs <= 0 {
		cfg.ResultCacheTTLSecs = 3600
	}
	if cfg.VideoFrameCount <= 0 {
		cfg.VideoFrameCount = 10
	}
	if cfg.WebcamFrameCount <= 0 {
		cfg.WebcamFrameCount = 5
	}
	if cfg.ReportTitle == "" {
		cfg.ReportTitle = "DeepCheck Analysis Report"
	}
	return cfg, nil
}

// ResultCacheTTL returns the configured cache TTL as a duration.
func (c Config) ResultCacheTTL() time.Duration {
	return time.Duration(c.ResultCacheTTLSecs) * time.Second
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envOverrideList(dst *[]string, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		*dst = out
	}
}
