package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	HTTP        HTTPConfig
	Mongo       MongoConfig
}

// Load arma la configuración desde variables de entorno
// (MONGO_URI, MONGO_DB, PORT, LOG_LEVEL), con defaults de desarrollo.
func Load() (*AppConfig, error) {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg AppConfig
	cfg.Environment = v.GetString("environment")
	cfg.LogLevel = v.GetString("log.level")

	cfg.HTTP.Port = v.GetInt("port")
	cfg.HTTP.ReadTimeout = v.GetDuration("http.readtimeout")
	cfg.HTTP.WriteTimeout = v.GetDuration("http.writetimeout")
	cfg.HTTP.IdleTimeout = v.GetDuration("http.idletimeout")

	cfg.Mongo.URI = v.GetString("mongo.uri")
	cfg.Mongo.Database = v.GetString("mongo.db")

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("config: puerto inválido %d", cfg.HTTP.Port)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("log.level", "info")

	v.SetDefault("port", 3000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	// MONGO_URI vacío => repos in-memory (modo dev/test)
	v.SetDefault("mongo.uri", "")
	v.SetDefault("mongo.db", "petlink")
}
