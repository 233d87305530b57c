package badgeengine

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	HTTP   HTTPConfig   `toml:"http"`
	DB     DBConfig     `toml:"db"`
	Badges BadgesConfig `toml:"badges"`
	Spaces struct {
		Key      string `toml:"key"`
		Secret   string `toml:"secret"`
		Region   string `toml:"region"`
		Bucket   string `toml:"bucket"`
		IconRoot string `toml:"iconroot"`
	} `toml:"spaces"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type HTTPConfig struct {
	Addr     string `toml:"addr"`
	AdminKey string `toml:"admin_key"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type BadgesConfig struct {
	CacheTTLMinutes int    `toml:"cache_ttl_minutes"`
	CatalogPath     string `toml:"catalog_path"`
}
