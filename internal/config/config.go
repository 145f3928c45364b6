package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	HH     HHConfig     `yaml:"hh" mapstructure:"hh"`
	Sites  SitesConfig  `yaml:"sites" mapstructure:"sites"`
	Batch  BatchConfig  `yaml:"batch" mapstructure:"batch"`
	Score  ScoreConfig  `yaml:"score" mapstructure:"score"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// HHConfig holds HeadHunter API settings.
type HHConfig struct {
	BaseURL   string  `yaml:"base_url" mapstructure:"base_url"`
	Token     string  `yaml:"token" mapstructure:"token"`
	UserAgent string  `yaml:"user_agent" mapstructure:"user_agent"`
	RPS       float64 `yaml:"rps" mapstructure:"rps"`
}

// SitesConfig configures the site prober.
type SitesConfig struct {
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	RPS         float64 `yaml:"rps" mapstructure:"rps"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// BatchConfig configures concurrent company processing.
type BatchConfig struct {
	Size                   int `yaml:"size" mapstructure:"size"`
	MaxConcurrentCompanies int `yaml:"max_concurrent_companies" mapstructure:"max_concurrent_companies"`
	DelayBetweenBatchesMS  int `yaml:"delay_between_batches_ms" mapstructure:"delay_between_batches_ms"`
}

// ScoreConfig overrides scoring thresholds.
type ScoreConfig struct {
	MinTeamSize   int `yaml:"min_team_size" mapstructure:"min_team_size"`
	MaxDirectSize int `yaml:"max_direct_size" mapstructure:"max_direct_size"`
}

// ExportConfig configures the final CSV export.
type ExportConfig struct {
	OutPath string `yaml:"out_path" mapstructure:"out_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SUPPORTRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("hh.base_url", "https://api.hh.ru")
	v.SetDefault("hh.user_agent", "support-radar/1.0 (research@sells-group.io)")
	v.SetDefault("hh.rps", 4.0)
	v.SetDefault("sites.user_agent", "Mozilla/5.0 (compatible; support-radar/1.0)")
	v.SetDefault("sites.rps", 2.0)
	v.SetDefault("sites.timeout_secs", 20)
	v.SetDefault("batch.size", 20)
	v.SetDefault("batch.max_concurrent_companies", 5)
	v.SetDefault("batch.delay_between_batches_ms", 1000)
	v.SetDefault("score.min_team_size", 10)
	v.SetDefault("score.max_direct_size", 500)
	v.SetDefault("export.out_path", "companies.csv")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
