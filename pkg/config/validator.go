package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate LLM config
	if c.LLM.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "Ollama base URL is required",
		})
	} else if _, err := url.Parse(c.LLM.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "llm.base_url",
			Message: "invalid Ollama base URL",
		})
	}

	// Validate Fetcher config
	if c.Fetcher.URL != "" {
		if parsed, err := url.Parse(c.Fetcher.URL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "fetcher.url",
				Message: "invalid page URL",
			})
		}
	}

	if c.Fetcher.TimeoutSeconds < 1 {
		errors = append(errors, ValidationError{
			Field:   "fetcher.timeout_seconds",
			Message: "timeout_seconds must be positive",
		})
	}

	if c.Fetcher.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "fetcher.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	// Validate QA config
	if c.QA.TopK < 1 {
		errors = append(errors, ValidationError{
			Field:   "qa.top_k",
			Message: "top_k must be positive",
		})
	}

	if c.QA.Workers < 1 {
		errors = append(errors, ValidationError{
			Field:   "qa.workers",
			Message: "workers must be positive",
		})
	}

	// Validate file paths
	if c.Files.Questions == "" {
		errors = append(errors, ValidationError{
			Field:   "files.questions",
			Message: "questions file path is required",
		})
	}

	if c.Files.Responses == "" {
		errors = append(errors, ValidationError{
			Field:   "files.responses",
			Message: "responses file path is required",
		})
	}

	return errors
}
