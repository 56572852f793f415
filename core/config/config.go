package config

import (
	"strings"
	"sync"

	"timelink/core/constants"
	"timelink/core/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Server   ServerConfig
		Database DatabaseConfig
		Redis    RedisConfig
		Engine   EngineConfig
	}

	ServerConfig struct {
		Host     string
		Port     int
		BaseURL  string
		LogLevel string
	}

	DatabaseConfig struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	RedisConfig struct {
		Addr     string
		Password string
		DB       int
	}

	// EngineConfig holds free-slot query defaults applied when a request
	// omits the corresponding field.
	EngineConfig struct {
		Timezone          string
		WorkingHoursStart string
		WorkingHoursEnd   string
		WarmCron          string
	}
)

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads configuration from the environment (and a .env file when
// present) and stores the singleton returned by Get.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("Config:Load:NoDotEnv")
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("server.base_url", "")
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "timelink")
	v.SetDefault("database.sslmode", constants.DatabaseSSLMode)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("engine.timezone", constants.DefaultTimezone)
	v.SetDefault("engine.working_hours_start", constants.DefaultWorkingHoursStart)
	v.SetDefault("engine.working_hours_end", constants.DefaultWorkingHoursEnd)
	v.SetDefault("engine.warm_cron", constants.DefaultWarmCron)

	cfg := &Config{
		Server: ServerConfig{
			Host:     v.GetString("server.host"),
			Port:     v.GetInt("server.port"),
			BaseURL:  v.GetString("server.base_url"),
			LogLevel: v.GetString("server.log_level"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Engine: EngineConfig{
			Timezone:          v.GetString("engine.timezone"),
			WorkingHoursStart: v.GetString("engine.working_hours_start"),
			WorkingHoursEnd:   v.GetString("engine.working_hours_end"),
			WarmCron:          v.GetString("engine.warm_cron"),
		},
	}

	mu.Lock()
	instance = cfg
	mu.Unlock()

	return cfg, nil
}

// Get returns the loaded configuration. Panics if Load has not run.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Get called before Load")
	}
	return instance
}

// GetSafe returns the loaded configuration and whether Load has run.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
