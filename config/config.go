// Package config loads the segrel configuration from a YAML file and
// SEGREL_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/revelaction/segrel/parser"
	"github.com/revelaction/segrel/rule"
)

const (
	DefaultFile = "segrel.yaml"
	EnvPrefix   = "SEGREL"
)

type Config struct {
	Corpus  CorpusConfig  `mapstructure:"corpus"`
	Parser  ParserConfig  `mapstructure:"parser"`
	Extract ExtractConfig `mapstructure:"extract"`
	Log     LogConfig     `mapstructure:"log"`
}

// CorpusConfig locates the parsed documents: a directory of JSON docs or a
// SQLite file.
type CorpusConfig struct {
	DocPath string `mapstructure:"doc_path"`
	// SQLite file where extract runs are persisted, if set
	PhraseDB string `mapstructure:"phrase_db"`
}

type ParserConfig struct {
	URL       string        `mapstructure:"url"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
	BatchSize int           `mapstructure:"batch_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

type ExtractConfig struct {
	Workers   int      `mapstructure:"workers"`
	MaxWords  int      `mapstructure:"max_words"`
	Keywords  []string `mapstructure:"keywords"`
	Countries []string `mapstructure:"countries"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configPath, or DefaultFile if configPath is empty. A missing
// DefaultFile is not an error: the defaults and the environment apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultFile
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if _, err := os.Stat(configPath); err == nil || explicit {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q, expected text or json", c.Log.Format)
	}

	if c.Extract.MaxWords <= 0 {
		return fmt.Errorf("invalid extract.max_words %d", c.Extract.MaxWords)
	}

	return nil
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("corpus.doc_path", "docs")
	v.SetDefault("corpus.phrase_db", "")

	v.SetDefault("parser.url", "http://localhost:8000")
	v.SetDefault("parser.model", parser.DefaultModel)
	v.SetDefault("parser.timeout", parser.DefaultTimeout)
	v.SetDefault("parser.batch_size", parser.DefaultBatchSize)
	v.SetDefault("parser.cache_ttl", time.Hour)

	// 0 is one worker per CPU
	v.SetDefault("extract.workers", 0)
	v.SetDefault("extract.max_words", 15)
	v.SetDefault("extract.keywords", rule.Keywords)
	v.SetDefault("extract.countries", rule.Countries)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

// RuleOptions returns the options of the lexical rules.
func (c *Config) RuleOptions() rule.Options {
	return rule.Options{Keywords: c.Extract.Keywords, Countries: c.Extract.Countries}
}

// Spacy returns the parser client configuration.
func (c *Config) Spacy() parser.SpacyConfig {
	return parser.SpacyConfig{
		BaseURL:   c.Parser.URL,
		Model:     c.Parser.Model,
		Timeout:   c.Parser.Timeout,
		BatchSize: c.Parser.BatchSize,
	}
}
