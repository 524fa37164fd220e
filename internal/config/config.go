// Package config loads settings for the API lambdas and the barkeeper CLI
// from an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Persistence, read by the lambdas.
	TableName   string `yaml:"table_name"`
	TopicArn    string `yaml:"topic_arn"`
	TokenSecret string `yaml:"token_secret"`
	// AuthPoolURL is the user pool domain the authorizer asks for user info.
	AuthPoolURL string `yaml:"auth_pool_url"`

	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig points the CLI at a workspace of the bar manager API, e.g.
// https://api.example.com/workspaces/my-bar.
type APIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Token   string   `yaml:"token"`
	Timeout Duration `yaml:"timeout"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Duration reads "30s" style values.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := time.ParseDuration(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func Default() *Config {
	return &Config{
		API: APIConfig{
			Timeout: Duration(10 * time.Second),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path when it is not empty, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		"TABLE_NAME":            &c.TableName,
		"TOPIC_ARN":             &c.TopicArn,
		"TOKEN_SECRET":          &c.TokenSecret,
		"AUTH_POOL_URL":         &c.AuthPoolURL,
		"BARMANAGER_API_URL":    &c.API.BaseURL,
		"BARMANAGER_API_TOKEN":  &c.API.Token,
		"BARMANAGER_LOG_LEVEL":  &c.Logging.Level,
		"BARMANAGER_LOG_FORMAT": &c.Logging.Format,
	}
	for name, field := range overrides {
		if value, ok := lookup(name); ok && value != "" {
			*field = value
		}
	}
	if value, ok := lookup("BARMANAGER_API_TIMEOUT"); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			c.API.Timeout = Duration(parsed)
		}
	}
}

var (
	ErrMissingTable   = errors.New("table_name (TABLE_NAME) is required")
	ErrMissingBaseURL = errors.New("api.base_url (BARMANAGER_API_URL) is required")
)

// ValidateServer checks what the lambdas need.
func (c *Config) ValidateServer() error {
	if c.TableName == "" {
		return ErrMissingTable
	}
	return nil
}

// ValidateClient checks what the CLI needs.
func (c *Config) ValidateClient() error {
	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}
	return nil
}
