package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"relay/internal/core/application/usecases/commands"
	"relay/internal/core/domain/model/packet"
	"relay/internal/core/domain/services"
	"relay/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the redis job lock. Empty means an in-process lock.
	RedisAddr string

	MaintenanceSchedule     string
	MaintenanceConcurrency  int
	MaintenanceRetryBackoff time.Duration

	Policy             services.Policy
	NoRouteGracePeriod time.Duration
	Cooldowns          commands.Cooldowns
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Infof("No .env file loaded, using environment variables: %v", err)
	}

	policy := services.DefaultPolicy()
	cooldowns := commands.DefaultCooldowns()
	cfg := Config{
		HTTPPort:            envOr("HTTP_PORT", "8080"),
		DBHost:              envOr("DB_HOST", "localhost"),
		DBPort:              envOr("DB_PORT", "5432"),
		DBUser:              os.Getenv("DB_USER"),
		DBPassword:          os.Getenv("DB_PASSWORD"),
		DBName:              envOr("DB_NAME", "relay"),
		DBSslMode:           envOr("DB_SSLMODE", "disable"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		MaintenanceSchedule: envOr("MAINTENANCE_SCHEDULE", jobs.DefaultMaintenanceSchedule),
	}

	var err error
	if cfg.MaintenanceConcurrency, err = envInt("MAINTENANCE_CONCURRENCY", 4); err != nil {
		return Config{}, err
	}
	if policy.RadiusKm, err = envFloat("ROUTING_RADIUS_KM", policy.RadiusKm); err != nil {
		return Config{}, err
	}
	if policy.HorizonDays, err = envInt("ROUTING_HORIZON_DAYS", policy.HorizonDays); err != nil {
		return Config{}, err
	}
	if policy.WeeklyWaitDays, err = envInt("ROUTING_WEEKLY_WAIT_DAYS", policy.WeeklyWaitDays); err != nil {
		return Config{}, err
	}
	backoffMinutes, err := envInt("MAINTENANCE_RETRY_BACKOFF_MINUTES", int(commands.DefaultRetryBackoff/time.Minute))
	if err != nil {
		return Config{}, err
	}
	graceDays, err := envInt("NO_ROUTE_GRACE_DAYS", int(packet.DefaultNoRouteGracePeriod/(24*time.Hour)))
	if err != nil {
		return Config{}, err
	}
	if cooldowns.Reject, err = envInt("REJECT_COOLDOWN_DAYS", cooldowns.Reject); err != nil {
		return Config{}, err
	}
	if cooldowns.AskLater, err = envInt("ASK_LATER_COOLDOWN_DAYS", cooldowns.AskLater); err != nil {
		return Config{}, err
	}

	cfg.Policy = policy
	cfg.Cooldowns = cooldowns
	cfg.NoRouteGracePeriod = time.Duration(graceDays) * 24 * time.Hour
	cfg.MaintenanceRetryBackoff = time.Duration(backoffMinutes) * time.Minute
	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return f, nil
}
