package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix prefixes every environment override, e.g. FORMS_SERVER_PORT
const EnvPrefix = "FORMS"

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Endpoints EndpointsConfig `mapstructure:"endpoints"`
	Forms     FormsConfig     `mapstructure:"forms"`
	Receipts  ReceiptsConfig  `mapstructure:"receipts"`
	Drafts    DraftsConfig    `mapstructure:"drafts"`
	Lark      LarkConfig      `mapstructure:"lark"`
	Logger    LoggerConfig    `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// EndpointsConfig holds the submission endpoint of every form
type EndpointsConfig struct {
	Notification   string        `mapstructure:"notification"`
	ExpenseReport  string        `mapstructure:"expense_report"`
	Approval       string        `mapstructure:"approval"`
	InvoiceRequest string        `mapstructure:"invoice_request"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// FormsConfig holds form behaviour settings
type FormsConfig struct {
	InvoicePrefix string `mapstructure:"invoice_prefix"`
}

// ReceiptsConfig holds the receipt upload policy
type ReceiptsConfig struct {
	MaxSize      int64    `mapstructure:"max_size"`
	AllowedTypes []string `mapstructure:"allowed_types"`
}

// DraftsConfig holds expense draft retention settings
type DraftsConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LarkConfig holds Lark API configuration for PMO notifications
type LarkConfig struct {
	Enabled       bool              `mapstructure:"enabled"`
	AppID         string            `mapstructure:"app_id"`
	AppSecret     string            `mapstructure:"app_secret"`
	ReceiveIDType string            `mapstructure:"receive_id_type"`
	Receivers     map[string]string `mapstructure:"receivers"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load reads configuration from the optional .env file, the optional YAML
// file at configPath and FORMS_ prefixed environment variables
func Load(configPath string) (*Config, error) {
	return LoadWithEnv(configPath, ".env")
}

// LoadWithEnv is Load with an explicit .env location. Missing files are
// skipped.
func LoadWithEnv(configPath, envFile string) (*Config, error) {
	if envFile != "" {
		if err := gotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if err := bindEnvVars(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_upload_bytes", 12<<20)

	// Endpoint defaults
	v.SetDefault("endpoints.timeout", 30*time.Second)

	// Form defaults
	v.SetDefault("forms.invoice_prefix", "iSSi-EXP")

	// Receipt defaults
	v.SetDefault("receipts.max_size", 10<<20)
	v.SetDefault("receipts.allowed_types", []string{
		"image/jpeg", "image/png", "image/gif", "image/webp", "image/heic", "application/pdf",
	})

	// Draft defaults
	v.SetDefault("drafts.ttl", 2*time.Hour)
	v.SetDefault("drafts.sweep_interval", 5*time.Minute)

	// Lark defaults
	v.SetDefault("lark.enabled", false)
	v.SetDefault("lark.receive_id_type", "open_id")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds the unprefixed variables commonly used for secrets and
// endpoint URLs
func bindEnvVars(v *viper.Viper) error {
	binds := map[string][]string{
		"lark.app_id":               {"FORMS_LARK_APP_ID", "LARK_APP_ID"},
		"lark.app_secret":           {"FORMS_LARK_APP_SECRET", "LARK_APP_SECRET"},
		"endpoints.notification":    {"FORMS_ENDPOINTS_NOTIFICATION", "NOTIFICATION_URL"},
		"endpoints.expense_report":  {"FORMS_ENDPOINTS_EXPENSE_REPORT", "EXPENSE_REPORT_URL"},
		"endpoints.approval":        {"FORMS_ENDPOINTS_APPROVAL", "APPROVAL_URL"},
		"endpoints.invoice_request": {"FORMS_ENDPOINTS_INVOICE_REQUEST", "INVOICE_REQUEST_URL"},
	}
	for key, envs := range binds {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return err
		}
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error

	endpoints := map[string]string{
		"endpoints.notification":    c.Endpoints.Notification,
		"endpoints.expense_report":  c.Endpoints.ExpenseReport,
		"endpoints.approval":        c.Endpoints.Approval,
		"endpoints.invoice_request": c.Endpoints.InvoiceRequest,
	}
	for _, key := range []string{"endpoints.notification", "endpoints.expense_report", "endpoints.approval", "endpoints.invoice_request"} {
		url := strings.TrimSpace(endpoints[key])
		switch {
		case url == "":
			errs = append(errs, fmt.Errorf("%s is required", key))
		case !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://"):
			errs = append(errs, fmt.Errorf("%s must be an http(s) URL", key))
		}
	}

	if c.Endpoints.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("endpoints.timeout must be positive"))
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be between 1 and 65535"))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server timeouts must be positive"))
	}
	if c.Receipts.MaxSize <= 0 {
		errs = append(errs, fmt.Errorf("receipts.max_size must be positive"))
	}
	if c.Drafts.TTL <= 0 || c.Drafts.SweepInterval <= 0 {
		errs = append(errs, fmt.Errorf("drafts.ttl and drafts.sweep_interval must be positive"))
	}

	if c.Lark.Enabled {
		if c.Lark.AppID == "" {
			errs = append(errs, fmt.Errorf("lark.app_id is required when lark is enabled"))
		}
		if c.Lark.AppSecret == "" {
			errs = append(errs, fmt.Errorf("lark.app_secret is required when lark is enabled"))
		}
	}

	return errors.Join(errs...)
}
