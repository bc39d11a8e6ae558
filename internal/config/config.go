package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Supported CLI operations.
const (
	OperationInfo        = "info"
	OperationAnalyze     = "analyze"
	OperationEndpoint    = "endpoint"
	OperationStatusCodes = "status-codes"
	OperationHistory     = "history"
)

// Config holds the application configuration loaded from flags, env and defaults.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	APIURL             string        `mapstructure:"api_url"`
	UserAgent          string        `mapstructure:"user_agent"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	PublishersFile     string        `mapstructure:"publishers_file"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	Operation  string `mapstructure:"operation"`
	Host       string `mapstructure:"host"`
	Endpoint   string `mapstructure:"endpoint"`
	Publish    string `mapstructure:"publish"`
	ClearCache string `mapstructure:"clear_cache"`
	FromCache  string `mapstructure:"from_cache"`
	All        string `mapstructure:"all"`
}

// Load reads configuration from configs/.env, SSLL_* environment variables and args.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "ssll-wrapper")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("api_url", "https://api.ssllabs.com/api/v2/")
	v.SetDefault("user_agent", "ssll-wrapper/1.0")
	v.SetDefault("http_timeout_seconds", 30)
	v.SetDefault("publishers_file", "")
	v.SetDefault("storage_type", "none")
	v.SetDefault("bbolt_path", "./data/reports.db")
	v.SetDefault("storage_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
	v.SetDefault("operation", OperationInfo)

	v.SetEnvPrefix("ssll")
	v.AutomaticEnv()

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("ssllabs", pflag.ContinueOnError)
	fs.String("operation", OperationInfo, "operation to run: info, analyze, endpoint, status-codes, history")
	fs.String("host", "", "host to assess (analyze, endpoint) or list (history)")
	fs.String("endpoint", "", "endpoint IP address (endpoint)")
	fs.String("publish", "", "publish results on the public boards: on|off")
	fs.String("clear_cache", "", "discard cached results: on|off|ignore")
	fs.String("from_cache", "", "accept cached results: on|off|ignore")
	fs.String("all", "", "endpoint detail level: on|done")
	fs.String("api_url", "", "base API URL")
	fs.String("log_level", "", "debug, info, warn or error")
	fs.String("publishers_file", "", "optional publishers registry (yaml/json)")
	fs.String("storage_type", "", "report archive backend: none|bbolt")
	fs.String("bbolt_path", "", "report archive path for bbolt")
	return fs
}

func (cfg *Config) normalize() error {
	cfg.Operation = strings.ToLower(strings.TrimSpace(cfg.Operation))
	cfg.Host = strings.TrimSpace(cfg.Host)
	cfg.Endpoint = strings.TrimSpace(cfg.Endpoint)

	switch cfg.Operation {
	case OperationInfo, OperationStatusCodes:
	case OperationAnalyze, OperationHistory:
		if cfg.Host == "" {
			return fmt.Errorf("operation %q requires --host", cfg.Operation)
		}
	case OperationEndpoint:
		if cfg.Host == "" || cfg.Endpoint == "" {
			return fmt.Errorf("operation %q requires --host and --endpoint", cfg.Operation)
		}
	default:
		return fmt.Errorf("unsupported operation %q", cfg.Operation)
	}

	if strings.TrimSpace(cfg.APIURL) == "" {
		return fmt.Errorf("invalid api_url (must not be empty)")
	}
	if cfg.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.StorageTTLSeconds <= 0 {
		return fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return nil
}
