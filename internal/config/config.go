package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Email     EmailConfig     `yaml:"email"`
	JWT       JWTConfig       `yaml:"jwt"`
	Fees      FeesConfig      `yaml:"fees"`
	Places    PlacesConfig    `yaml:"places"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// EmailConfig contains SendGrid settings
type EmailConfig struct {
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// FeesConfig centralizes every fee constant. The transfer fee in particular
// is configured in exactly one place and consumed everywhere.
type FeesConfig struct {
	ServiceFeeShortBps   int32 `yaml:"service_fee_short_bps"`
	ServiceFeeLongBps    int32 `yaml:"service_fee_long_bps"`
	ServiceFeeBoundaryMo int32 `yaml:"service_fee_boundary_months"`
	TransferFeeCents     int32 `yaml:"transfer_fee_cents"`
	CardRateBps          int32 `yaml:"card_rate_bps"`
	CardFixedCents       int32 `yaml:"card_fixed_cents"`
}

// PlacesConfig points at the external geocoding/autocomplete provider.
type PlacesConfig struct {
	GeocodeURL      string `yaml:"geocode_url"`
	AutocompleteURL string `yaml:"autocomplete_url"`
	APIKey          string `yaml:"api_key"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ActivateDueBookings      string `yaml:"activate_due_bookings"`
	CompleteElapsedBookings  string `yaml:"complete_elapsed_bookings"`
	MarkOverdueRentPayments  string `yaml:"mark_overdue_rent_payments"`
	SendRentDueReminders     string `yaml:"send_rent_due_reminders"`
	RentReminderLeadDays     int    `yaml:"rent_reminder_lead_days"`
}

// Load reads configuration from a YAML file. A local .env file, when present,
// is loaded first so its values participate in the env overrides.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.APIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.From = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Places
	if val := os.Getenv("PLACES_API_KEY"); val != "" {
		c.Places.APIKey = val
	}

	// Fees
	if val := os.Getenv("TRANSFER_FEE_CENTS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Fees.TransferFeeCents)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}

	// Fee defaults
	if c.Fees.ServiceFeeShortBps == 0 {
		c.Fees.ServiceFeeShortBps = 300 // 3%
	}
	if c.Fees.ServiceFeeLongBps == 0 {
		c.Fees.ServiceFeeLongBps = 150 // 1.5%
	}
	if c.Fees.ServiceFeeBoundaryMo == 0 {
		c.Fees.ServiceFeeBoundaryMo = 6
	}
	if c.Fees.TransferFeeCents == 0 {
		c.Fees.TransferFeeCents = 500 // $5.00
	}
	if c.Fees.CardRateBps == 0 {
		c.Fees.CardRateBps = 290 // 2.9%
	}
	if c.Fees.CardFixedCents == 0 {
		c.Fees.CardFixedCents = 30
	}

	// Scheduler defaults
	if c.Scheduler.ActivateDueBookings == "" {
		c.Scheduler.ActivateDueBookings = "0 0 1 * * *" // 1 AM UTC
	}
	if c.Scheduler.CompleteElapsedBookings == "" {
		c.Scheduler.CompleteElapsedBookings = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.MarkOverdueRentPayments == "" {
		c.Scheduler.MarkOverdueRentPayments = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.SendRentDueReminders == "" {
		c.Scheduler.SendRentDueReminders = "0 0 9 * * *" // 9 AM UTC
	}
	if c.Scheduler.RentReminderLeadDays == 0 {
		c.Scheduler.RentReminderLeadDays = 3
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
