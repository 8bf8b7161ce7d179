package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"timerdash/internal/actionlog"
)

const EnvPrefix = "TIMERDASH"

type Config struct {
	LogPath        string
	TickInterval   time.Duration
	AlertEnabled   bool
	AlertWorkers   int
	Listen         string
	JWTSecret      string
	TokenTTL       time.Duration
	CORSOrigins    []string
	SeparatorWidth int
}

// SetDefaults registers every key so environment variables bind even without
// a config file.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_path", "")
	v.SetDefault("tick_interval", "100ms")
	v.SetDefault("alert.enabled", true)
	v.SetDefault("alert.workers", 2)
	v.SetDefault("server.listen", "")
	v.SetDefault("server.jwt_secret", "change-this-secret")
	v.SetDefault("server.token_ttl_hours", 72)
	v.SetDefault("server.cors_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})
	v.SetDefault("history.separator_width", 60)
}

// New returns a viper instance reading TIMERDASH_* variables and, when
// present, the YAML config file at path (or $HOME/.timer_cli/config.yaml).
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		logPath, err := actionlog.DefaultPath()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(filepath.Dir(logPath))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		LogPath:        v.GetString("log_path"),
		AlertEnabled:   v.GetBool("alert.enabled"),
		AlertWorkers:   v.GetInt("alert.workers"),
		Listen:         v.GetString("server.listen"),
		JWTSecret:      v.GetString("server.jwt_secret"),
		TokenTTL:       time.Duration(v.GetInt("server.token_ttl_hours")) * time.Hour,
		CORSOrigins:    getList(v, "server.cors_origins"),
		SeparatorWidth: v.GetInt("history.separator_width"),
	}

	tick, err := time.ParseDuration(v.GetString("tick_interval"))
	if err != nil {
		return Config{}, fmt.Errorf("parse tick_interval: %w", err)
	}
	if tick <= 0 {
		return Config{}, fmt.Errorf("tick_interval must be positive, got %s", tick)
	}
	cfg.TickInterval = tick

	if cfg.LogPath == "" {
		path, err := actionlog.DefaultPath()
		if err != nil {
			return Config{}, err
		}
		cfg.LogPath = path
	}
	if cfg.AlertWorkers <= 0 {
		cfg.AlertWorkers = 1
	}
	return cfg, nil
}

// getList accepts both YAML lists and comma-separated env values.
func getList(v *viper.Viper, key string) []string {
	var raw []string
	for _, value := range v.GetStringSlice(key) {
		raw = append(raw, strings.Split(value, ",")...)
	}

	items := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
