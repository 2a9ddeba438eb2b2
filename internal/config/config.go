package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DatabasePath string
	BackupDir    string
	LogLevel     logrus.Level
	SeedDemoData bool
}

// Load reads configuration from the environment, loading a .env file first
// when one exists. A missing .env is fine; every value has a default.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debugf("no .env file loaded: %s", err)
	}

	cfg := &Config{
		DatabasePath: getEnv("DATABASE_PATH", "shifts.db"),
		BackupDir:    getEnv("BACKUP_DIR", "backups"),
		SeedDemoData: getEnvAsBool("SEED_DEMO_DATA", true),
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		logrus.Warnf("invalid LOG_LEVEL, falling back to info: %s", err)
		level = logrus.InfoLevel
	}
	cfg.LogLevel = level

	return cfg
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}
