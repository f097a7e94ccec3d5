package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LLM struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
	} `yaml:"llm"`

	Fetcher struct {
		URL            string  `yaml:"url"`
		UserAgent      string  `yaml:"user_agent"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RateLimit      float64 `yaml:"rate_limit"`
	} `yaml:"fetcher"`

	QA struct {
		TopK    int `yaml:"top_k"`
		Workers int `yaml:"workers"`
	} `yaml:"qa"`

	Files struct {
		Questions string `yaml:"questions"`
		Responses string `yaml:"responses"`
		Cache     string `yaml:"cache"`
	} `yaml:"files"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/askpage/config.yaml"),
			"/etc/askpage/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	applyDefaults(config)
	mergeWithEnv(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.LLM.Model == "" {
		config.LLM.Model = "nomic-embed-text:latest"
	}
	if config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "http://localhost:11434"
	}

	if config.Fetcher.UserAgent == "" {
		config.Fetcher.UserAgent = "Mozilla/5.0"
	}
	if config.Fetcher.TimeoutSeconds == 0 {
		config.Fetcher.TimeoutSeconds = 30
	}
	if config.Fetcher.RateLimit == 0 {
		config.Fetcher.RateLimit = 2.0
	}

	if config.QA.TopK == 0 {
		config.QA.TopK = 5
	}
	if config.QA.Workers == 0 {
		config.QA.Workers = 4
	}

	if config.Files.Questions == "" {
		config.Files.Questions = "questions.txt"
	}
	if config.Files.Responses == "" {
		config.Files.Responses = "responses.txt"
	}
	if config.Files.Cache == "" {
		config.Files.Cache = "cached_content.txt"
	}
}

func mergeWithEnv(config *Config) {
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
	}
	if url := os.Getenv("ASKPAGE_URL"); url != "" {
		config.Fetcher.URL = url
	}
}
