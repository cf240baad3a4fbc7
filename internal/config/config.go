// Package config loads service configuration from an optional config.yaml,
// a .env file and the process environment, in increasing priority.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	HTTP     HTTPConfig     `koanf:"http"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	LLM      LLMConfig      `koanf:"llm"`
	Log      LogConfig      `koanf:"log"`

	portSet bool
}

type HTTPConfig struct {
	Port            string        `koanf:"port"`
	CORSOrigins     []string      `koanf:"corsorigins"`
	UploadMaxBytes  int64         `koanf:"uploadmaxbytes"`
	UpstreamTimeout time.Duration `koanf:"upstreamtimeout"`
	StaticDir       string        `koanf:"staticdir"`
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver"`
	URL          string `koanf:"url"`
	MaxOpenConns int    `koanf:"maxopenconns"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwtsecret"`
	TokenTTL  time.Duration `koanf:"tokenttl"`
}

type LLMConfig struct {
	Provider    string `koanf:"provider"`
	APIKey      string `koanf:"apikey"`
	BaseURL     string `koanf:"baseurl"`
	VisionModel string `koanf:"visionmodel"`
	TextModel   string `koanf:"textmodel"`
	MaxTokens   int    `koanf:"maxtokens"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Port:            "3000",
			CORSOrigins:     []string{"http://localhost:3000"},
			UploadMaxBytes:  5 << 20,
			UpstreamTimeout: 90 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       DriverPostgres,
			MaxOpenConns: 10,
		},
		Auth: AuthConfig{
			TokenTTL: 7 * 24 * time.Hour,
		},
		LLM: LLMConfig{
			Provider:    ProviderOpenRouter,
			BaseURL:     "https://openrouter.ai/api/v1",
			VisionModel: "nvidia/nemotron-nano-12b-v2-vl:free",
			TextModel:   "google/gemma-3-27b-it:free",
			MaxTokens:   4000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// legacyEnv maps the flat variable names used by the deployment scripts onto
// config keys.
var legacyEnv = map[string]string{
	"PORT":               "http.port",
	"DATABASE_URL":       "database.url",
	"JWT_SECRET":         "auth.jwtsecret",
	"OPENROUTER_API_KEY": "llm.apikey",
	"GEMINI_API_KEY":     "llm.apikey",
}

// sections lists the top-level keys that environment variables may address,
// e.g. HTTP_UPLOADMAXBYTES -> http.uploadmaxbytes.
var sections = map[string]bool{"http": true, "database": true, "auth": true, "llm": true, "log": true}

// Load reads configuration for a service. searchPaths are directories probed
// for config.yaml; the first hit wins and a missing file is not an error.
func Load(searchPaths ...string) (*Config, error) {
	_ = godotenv.Load()

	if len(searchPaths) == 0 {
		searchPaths = []string{".", "config"}
	}

	k := koanf.New(".")
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if err := k.Load(file.Provider(candidate), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "read %s", candidate)
		}
		break
	}

	if err := k.Load(env.Provider(".", env.Opt{TransformFunc: envKey}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables")
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}

	cfg.portSet = k.Exists("http.port")

	// A lone GEMINI_API_KEY selects the Gemini provider.
	if !k.Exists("llm.provider") && os.Getenv("GEMINI_API_KEY") != "" && os.Getenv("OPENROUTER_API_KEY") == "" {
		cfg.LLM.Provider = ProviderGemini
	}
	return cfg, nil
}

// envKey converts an environment variable into a koanf key. Variables that
// belong to no known section are dropped by returning an empty key.
func envKey(k, v string) (string, any) {
	if key, ok := legacyEnv[k]; ok {
		if v == "" {
			return "", nil
		}
		// OPENROUTER_API_KEY wins when both provider keys are present.
		if k == "GEMINI_API_KEY" && os.Getenv("OPENROUTER_API_KEY") != "" {
			return "", nil
		}
		return key, v
	}

	section, rest, ok := strings.Cut(strings.ToLower(k), "_")
	if !ok || !sections[section] || rest == "" {
		return "", nil
	}
	key := section + "." + strings.ReplaceAll(rest, "_", "")
	if key == "http.corsorigins" {
		return key, splitList(v)
	}
	return key, v
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if s := strings.TrimRight(strings.TrimSpace(p), "/"); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the settings every service needs. requireAuth is set by
// services that issue credentials.
func (c *Config) Validate(requireAuth bool) error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return errors.New("llm api key is not set (OPENROUTER_API_KEY or LLM_APIKEY)")
	}
	switch c.LLM.Provider {
	case ProviderOpenRouter, ProviderGemini:
	default:
		return errors.Errorf("unknown llm provider %q", c.LLM.Provider)
	}
	if requireAuth {
		if c.Auth.JWTSecret == "" {
			return errors.New("jwt secret is not set (JWT_SECRET)")
		}
		if c.Auth.TokenTTL <= 0 {
			return errors.New("auth token ttl must be positive")
		}
		switch c.Database.Driver {
		case DriverMemory:
		case DriverPostgres:
			if c.Database.URL == "" {
				return errors.New("database url is not set (DATABASE_URL)")
			}
		default:
			return errors.Errorf("unknown database driver %q", c.Database.Driver)
		}
	}
	if c.HTTP.UploadMaxBytes <= 0 {
		return errors.New("http upload limit must be positive")
	}
	return nil
}

// DefaultPort sets the listen port unless config.yaml or the environment
// already chose one.
func (c *Config) DefaultPort(port string) {
	if !c.portSet {
		c.HTTP.Port = port
	}
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.HTTP.Port
}
