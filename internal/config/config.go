package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	BonusDatasetPath    string
	FreespinDatasetPath string

	// DatasetDSN switches both sources to MySQL tables when set.
	DatasetDSN       string
	BonusTable       string
	FreespinTable    string
	DBConnectTimeout time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                envOr("PORT", "8080"),
		BonusDatasetPath:    envOr("BONUS_DATASET_PATH", "all_data.csv"),
		FreespinDatasetPath: envOr("FREESPIN_DATASET_PATH", "freespin_per_game_data.csv"),
		DatasetDSN:          os.Getenv("DATASET_DSN"),
		BonusTable:          envOr("BONUS_TABLE", "all_data"),
		FreespinTable:       envOr("FREESPIN_TABLE", "freespin_per_game_data"),
		DBConnectTimeout:    durationOr("DB_CONNECT_TIMEOUT", 20*time.Second),
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durationOr(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
