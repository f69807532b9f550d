package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// GatePolicy decides what happens to probed routes when upstream is down.
type GatePolicy string

const (
	// GateSoft records reachability and lets each route decide.
	GateSoft GatePolicy = "soft"
	// GateHard renders the error view for every probed route.
	GateHard GatePolicy = "hard"
)

// APIStyle selects the upstream wire protocol.
type APIStyle string

const (
	APIStyleOllama APIStyle = "ollama"
	APIStyleOpenAI APIStyle = "openai"
)

type Config struct {
	AppName          string
	Port             int
	UpstreamURL      string
	UpstreamStyle    APIStyle
	OpenAIKey        string
	SessionSecret    string
	GatePolicy       GatePolicy
	SessionTTL       time.Duration
	CORSAllowOrigins []string
	Debug            bool
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LoadDotEnv loads variables from path, or from ./.env when path is empty.
// A missing ./.env is not an error. Variables already set in the process
// environment win over the file.
func LoadDotEnv(path string) error {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("could not load %s: %w", path, err)
		}
		return nil
	}

	if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check if .env file exists: %w", err)
	}

	if err := godotenv.Load(); err != nil {
		return fmt.Errorf("could not load .env: %w", err)
	}
	return nil
}

// Load reads the configuration from environment variables. Call Validate
// before using it.
func Load() Config {
	return Config{
		AppName:          envOrDefault("APP_NAME", "Ollama Dashboard"),
		Port:             envIntOrDefault("PORT", 3000),
		UpstreamURL:      strings.TrimRight(envOrDefault("OLLAMA_API", "http://localhost:11434/api"), "/"),
		UpstreamStyle:    APIStyle(strings.ToLower(envOrDefault("UPSTREAM_API_STYLE", string(APIStyleOllama)))),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		SessionSecret:    os.Getenv("SESSION_SECRET"),
		GatePolicy:       GatePolicy(strings.ToLower(envOrDefault("GATE_POLICY", string(GateSoft)))),
		SessionTTL:       time.Duration(envIntOrDefault("SESSION_TTL_MINUTES", 24*60)) * time.Minute,
		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS"),
		Debug:            envBoolOrDefault("OLLAMADASH_DEBUG", false),
	}
}

// Validate reports the first invalid setting needed to run the server.
func (c Config) Validate() error {
	if err := c.ValidateUpstream(); err != nil {
		return err
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required in environment")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.GatePolicy {
	case GateSoft, GateHard:
	default:
		return fmt.Errorf("GATE_POLICY must be %q or %q, got %q", GateSoft, GateHard, c.GatePolicy)
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL_MINUTES must be positive")
	}
	return nil
}

// ValidateUpstream checks only the settings needed to reach the upstream
// service.
func (c Config) ValidateUpstream() error {
	u, err := url.Parse(c.UpstreamURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("OLLAMA_API must be an absolute URL, got %q", c.UpstreamURL)
	}
	switch c.UpstreamStyle {
	case APIStyleOllama, APIStyleOpenAI:
	default:
		return fmt.Errorf("UPSTREAM_API_STYLE must be %q or %q, got %q", APIStyleOllama, APIStyleOpenAI, c.UpstreamStyle)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBoolOrDefault(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "1" || strings.EqualFold(v, "true")
}

func envList(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
