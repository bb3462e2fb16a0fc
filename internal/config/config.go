package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port             string   `mapstructure:"PORT"`
	Env              string   `mapstructure:"ENV"`
	DatabaseURL      string   `mapstructure:"DATABASE_URL"`
	DBMaxConns       int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns       int32    `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins      []string `mapstructure:"CORS_ORIGINS"`
	UpcomingDays     int      `mapstructure:"UPCOMING_DAYS"`
	MissedDays       int      `mapstructure:"MISSED_DAYS"`
	IITLookbackDays  int      `mapstructure:"IIT_LOOKBACK_DAYS"`
	StatsUpcoming    int      `mapstructure:"STATS_UPCOMING_DAYS"`
	StatsMissed      int      `mapstructure:"STATS_MISSED_DAYS"`
	StatsIITLookback int      `mapstructure:"STATS_IIT_LOOKBACK_DAYS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults. The list windows mirror the host platform's dashboard
	// fragments; the stats windows are fixed by the aggregate contract.
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("UPCOMING_DAYS", 30)
	v.SetDefault("MISSED_DAYS", 27)
	v.SetDefault("IIT_LOOKBACK_DAYS", 27)
	v.SetDefault("STATS_UPCOMING_DAYS", 30)
	v.SetDefault("STATS_MISSED_DAYS", 30)
	v.SetDefault("STATS_IIT_LOOKBACK_DAYS", 90)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("UPCOMING_DAYS")
	v.BindEnv("MISSED_DAYS")
	v.BindEnv("IIT_LOOKBACK_DAYS")
	v.BindEnv("STATS_UPCOMING_DAYS")
	v.BindEnv("STATS_MISSED_DAYS")
	v.BindEnv("STATS_IIT_LOOKBACK_DAYS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configured day windows are usable. Negative
// windows would silently invert the date ranges the cohort queries scan,
// so they are rejected at startup rather than at query time.
func (c *Config) Validate() error {
	for _, w := range []struct {
		name string
		days int
	}{
		{"UPCOMING_DAYS", c.UpcomingDays},
		{"MISSED_DAYS", c.MissedDays},
		{"IIT_LOOKBACK_DAYS", c.IITLookbackDays},
		{"STATS_UPCOMING_DAYS", c.StatsUpcoming},
		{"STATS_MISSED_DAYS", c.StatsMissed},
		{"STATS_IIT_LOOKBACK_DAYS", c.StatsIITLookback},
	} {
		if w.days < 0 {
			return fmt.Errorf("%s must be >= 0, got %d", w.name, w.days)
		}
	}
	return nil
}
