package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	App    AppConfig    `toml:"app"`
	LLM    LLMConfig    `toml:"llm"`
	Store  StoreConfig  `toml:"store"`
	Upload UploadConfig `toml:"upload"`
}

type AppConfig struct {
	Name        string   `toml:"name"`
	Version     string   `toml:"version"`
	Env         string   `toml:"env"`
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	GinMode     string   `toml:"gin_mode"`
	CORSOrigins []string `toml:"cors_origins"`
}

type LLMConfig struct {
	Groq            ProviderConfig `toml:"groq"`
	Gemini          ProviderConfig `toml:"gemini"`
	MaxOutputTokens int            `toml:"max_output_tokens"`
	Temperature     float64        `toml:"temperature"`
}

type ProviderConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type StoreConfig struct {
	MaxSessions int `toml:"max_sessions"`
}

type UploadConfig struct {
	MaxFileSizeMB int `toml:"max_file_size_mb"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// Configured reports whether at least one generation provider has a credential.
func (c *Config) Configured() bool {
	return c.LLM.Groq.APIKey != "" || c.LLM.Gemini.APIKey != ""
}

func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.Upload.MaxFileSizeMB) << 20
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "echoai",
			Version:     "1.0.0",
			Env:         "dev",
			Host:        "0.0.0.0",
			Port:        8000,
			GinMode:     "release",
			CORSOrigins: []string{"http://localhost:3000"},
		},
		LLM: LLMConfig{
			Groq: ProviderConfig{
				BaseURL: "https://api.groq.com/openai/v1",
				APIKey:  "",
				Model:   "llama-3.1-8b-instant",
			},
			Gemini: ProviderConfig{
				BaseURL: "https://generativelanguage.googleapis.com/v1beta",
				APIKey:  "",
				Model:   "gemini-1.5-flash",
			},
			MaxOutputTokens: 2000,
			Temperature:     0.1,
		},
		Store: StoreConfig{
			MaxSessions: 200,
		},
		Upload: UploadConfig{
			MaxFileSizeMB: 10,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)
	if raw, ok := os.LookupEnv("CORS_ORIGINS"); ok && raw != "" {
		cfg.App.CORSOrigins = strings.Split(raw, ",")
	}

	cfg.LLM.Groq.BaseURL = getEnv("GROQ_BASE_URL", cfg.LLM.Groq.BaseURL)
	cfg.LLM.Groq.APIKey = getEnv("GROQ_API_KEY", cfg.LLM.Groq.APIKey)
	cfg.LLM.Groq.Model = getEnv("GROQ_MODEL", cfg.LLM.Groq.Model)
	cfg.LLM.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", cfg.LLM.Gemini.BaseURL)
	cfg.LLM.Gemini.APIKey = getEnv("GEMINI_API_KEY", cfg.LLM.Gemini.APIKey)
	cfg.LLM.Gemini.Model = getEnv("GEMINI_MODEL", cfg.LLM.Gemini.Model)
	cfg.LLM.MaxOutputTokens = getEnvAsInt("LLM_MAX_OUTPUT_TOKENS", cfg.LLM.MaxOutputTokens)

	cfg.Store.MaxSessions = getEnvAsInt("MAX_SESSIONS", cfg.Store.MaxSessions)
	cfg.Upload.MaxFileSizeMB = getEnvAsInt("MAX_FILE_SIZE_MB", cfg.Upload.MaxFileSizeMB)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
