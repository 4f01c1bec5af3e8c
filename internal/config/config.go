// Package config defines the service configuration, loaded by viper from
// (highest to lowest priority) CLI flags, VISATRANS_* environment
// variables, an optional YAML config file, and the defaults below.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/okabeworks/visatrans/internal/server"
	"github.com/okabeworks/visatrans/internal/translate"
)

// Config is the full service configuration tree.
type Config struct {
	Server server.Config `mapstructure:"server"`

	Engine struct {
		// Provider selects the translation engine: openai, ollama, google.
		Provider         string `mapstructure:"provider"`
		translate.Config `mapstructure:",squash"`
	} `mapstructure:"engine"`

	Vocabulary struct {
		// Path is the YAML vocabulary file; DBPath selects the SQLite
		// store instead when set.
		Path   string `mapstructure:"path"`
		DBPath string `mapstructure:"db_path"`
	} `mapstructure:"vocabulary"`

	Pipeline struct {
		MaxParallel int           `mapstructure:"max_parallel"`
		RateLimit   float64       `mapstructure:"rate_limit"`
		CacheTTL    time.Duration `mapstructure:"cache_ttl"`
		SourceLang  string        `mapstructure:"source_lang"`
		TargetLang  string        `mapstructure:"target_lang"`
	} `mapstructure:"pipeline"`
}

// Load reads configuration through viper. configFile may be empty.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("engine.provider", "openai")
	v.SetDefault("engine.timeout", 30*time.Second)
	// Zero-value defaults register the key with viper; AutomaticEnv only
	// feeds Unmarshal for keys viper already knows about.
	v.SetDefault("engine.api_key", "")
	v.SetDefault("engine.model", "")
	v.SetDefault("engine.base_url", "")
	v.SetDefault("engine.credentials", "")
	v.SetDefault("vocabulary.path", "./data/vocabulary.yaml")
	v.SetDefault("vocabulary.db_path", "")
	v.SetDefault("pipeline.max_parallel", 4)
	v.SetDefault("pipeline.rate_limit", 8.0)
	v.SetDefault("pipeline.cache_ttl", 30*time.Minute)
	v.SetDefault("pipeline.source_lang", "ja")
	v.SetDefault("pipeline.target_lang", "en")

	v.SetEnvPrefix("VISATRANS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
