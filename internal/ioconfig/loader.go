// Package ioconfig loads configuration from config.yaml and
// FERTADVISOR_* environment variables with viper.
package ioconfig

import (
	"strings"

	"github.com/agrosense/fertadvisor/internal/iofs"
	"github.com/agrosense/fertadvisor/pkg/config"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables.
const EnvPrefix = "FERTADVISOR"

// Load reads a config file and applies environment overrides. The
// returned Config holds raw values only; callers convert it with
// ToOptions so invalid values are reported and ignored.
func Load(cfgPath string) (*config.Config, error) {
	var err error
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Variables are bound one by one to keep the list of supported
	// names explicit. They match fields of config.ToOptions().
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Tables and model
	v.BindEnv("tables.source", EnvPrefix+"_TABLES_SOURCE")
	v.BindEnv("tables.dir", EnvPrefix+"_TABLES_DIR")
	v.BindEnv("tables.deficiency_file", EnvPrefix+"_TABLES_DEFICIENCY_FILE")
	v.BindEnv("tables.dosage_file", EnvPrefix+"_TABLES_DOSAGE_FILE")
	v.BindEnv("tables.sqlite_path", EnvPrefix+"_TABLES_SQLITE_PATH")
	v.BindEnv("model.path", EnvPrefix+"_MODEL_PATH")

	// Database configuration
	v.BindEnv("database.host", EnvPrefix+"_DATABASE_HOST")
	v.BindEnv("database.port", EnvPrefix+"_DATABASE_PORT")
	v.BindEnv("database.user", EnvPrefix+"_DATABASE_USER")
	v.BindEnv("database.password", EnvPrefix+"_DATABASE_PASSWORD")
	v.BindEnv("database.database", EnvPrefix+"_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", EnvPrefix+"_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", EnvPrefix+"_DATABASE_BATCH_SIZE")

	// Engine
	v.BindEnv("engine.sample_threshold_fallback",
		EnvPrefix+"_ENGINE_SAMPLE_THRESHOLD_FALLBACK")

	// Log configuration
	v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL")
	v.BindEnv("log.format", EnvPrefix+"_LOG_FORMAT")
	v.BindEnv("log.destination", EnvPrefix+"_LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", EnvPrefix+"_JOBS_NUMBER")

	v.AutomaticEnv()
}
