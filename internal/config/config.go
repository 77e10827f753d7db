package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from config.toml
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Mailer        MailerConfig        `toml:"mailer"`
	Booking       BookingConfig       `toml:"booking"`
	BusinessHours BusinessHoursConfig `toml:"business_hours"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig holds postgres connection settings
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the postgres connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig holds logging settings
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig holds prometheus settings
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// MailerConfig holds settings for the external mail service, which renders
// and delivers the actual emails.
type MailerConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig holds scheduling settings
type BookingConfig struct {
	// SlotGranularityMinutes is the increment between generated candidate
	// slot start times.
	SlotGranularityMinutes int `toml:"slot_granularity_minutes"`
	// ReminderHour is the local hour (0-23) at which the daily reminder
	// sweep runs.
	ReminderHour int `toml:"reminder_hour"`
	// ReminderCheckInterval is how often (seconds) the loop checks whether
	// the sweep is due.
	ReminderCheckInterval int `toml:"reminder_check_interval"`
	// Timezone of the business, used for "tomorrow" in the reminder sweep.
	Timezone string `toml:"timezone"`
}

// DayHoursConfig is one weekday's default opening hours. Empty start/end
// means closed.
type DayHoursConfig struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// BusinessHoursConfig is the business-wide default weekly schedule, used
// when a staff member has no override for a weekday. It is injected into
// the availability calendar rather than read as global state, so tests can
// substitute their own table.
type BusinessHoursConfig struct {
	Monday    DayHoursConfig `toml:"monday"`
	Tuesday   DayHoursConfig `toml:"tuesday"`
	Wednesday DayHoursConfig `toml:"wednesday"`
	Thursday  DayHoursConfig `toml:"thursday"`
	Friday    DayHoursConfig `toml:"friday"`
	Saturday  DayHoursConfig `toml:"saturday"`
	Sunday    DayHoursConfig `toml:"sunday"`
}

// Load reads and validates the configuration file
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("config: database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, fmt.Errorf("config: database.dbname is required")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 300
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "booking-service"
	}
	if cfg.Mailer.Timeout == 0 {
		cfg.Mailer.Timeout = 10
	}
	if cfg.Booking.SlotGranularityMinutes == 0 {
		cfg.Booking.SlotGranularityMinutes = 30
	}
	if cfg.Booking.ReminderHour == 0 {
		cfg.Booking.ReminderHour = 18
	}
	if cfg.Booking.ReminderCheckInterval == 0 {
		cfg.Booking.ReminderCheckInterval = 60
	}
	if cfg.Booking.Timezone == "" {
		cfg.Booking.Timezone = "Europe/Copenhagen"
	}
}
