// Package config loads server configuration from an optional YAML file,
// a .env file, and environment variables, in that order of precedence
// (environment wins).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Server struct {
	Addr           string   `yaml:"addr"`
	WebDir         string   `yaml:"web_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Database struct {
	URL string `yaml:"url"`
}

type Auth struct {
	OIDCIssuer       string `yaml:"oidc_issuer"`
	OIDCClientID     string `yaml:"oidc_client_id"`
	OIDCClientSecret string `yaml:"oidc_client_secret"`
	OIDCRedirectURL  string `yaml:"oidc_redirect_url"`
}

type LLM struct {
	Provider      string `yaml:"provider"`
	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	OpenAIModel   string `yaml:"openai_model"`
	OllamaBaseURL string `yaml:"ollama_base_url"`
	OllamaModel   string `yaml:"ollama_model"`
}

type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	Auth     Auth     `yaml:"auth"`
	LLM      LLM      `yaml:"llm"`
}

// Load reads path (if non-empty and present), then .env, then the
// environment. A missing file of either kind is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: Server{Addr: ":8080", WebDir: "web"},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}

	// Populates the environment only for keys not already set.
	_ = godotenv.Load()

	applyEnv(cfg)

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.WebDir == "" {
		cfg.Server.WebDir = "web"
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "ADDR")
	setString(&cfg.Server.WebDir, "WEB_DIR")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.Server.AllowedOrigins = origins
	}

	setString(&cfg.Database.URL, "DATABASE_URL")

	setString(&cfg.Auth.OIDCIssuer, "OIDC_ISSUER")
	setString(&cfg.Auth.OIDCClientID, "OIDC_CLIENT_ID")
	setString(&cfg.Auth.OIDCClientSecret, "OIDC_CLIENT_SECRET")
	setString(&cfg.Auth.OIDCRedirectURL, "OIDC_REDIRECT_URL")

	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&cfg.LLM.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&cfg.LLM.OpenAIModel, "OPENAI_MODEL")
	setString(&cfg.LLM.OllamaBaseURL, "OLLAMA_BASE_URL")
	setString(&cfg.LLM.OllamaModel, "OLLAMA_MODEL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// SSOEnabled reports whether all OIDC settings required for single
// sign-on are present.
func (a Auth) SSOEnabled() bool {
	return a.OIDCIssuer != "" && a.OIDCClientID != "" && a.OIDCClientSecret != "" && a.OIDCRedirectURL != ""
}
