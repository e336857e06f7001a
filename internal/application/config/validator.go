package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/doeshing/explain-go/internal/domain"
)

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateOpenAI(cfg.OpenAI); err != nil {
		return err
	}
	if err := validateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := validateExecution(cfg.Execution); err != nil {
		return err
	}
	return nil
}

func validateOpenAI(settings domain.OpenAISettings) error {
	if strings.TrimSpace(settings.ModelName) == "" {
		return fmt.Errorf("openai.model_name must be set")
	}
	if strings.TrimSpace(settings.SmartModelName) == "" {
		return fmt.Errorf("openai.smart_model_name must be set")
	}
	if settings.Temperature < 0 || settings.Temperature > 2 {
		return fmt.Errorf("openai.temperature must be between 0 and 2, got %g", settings.Temperature)
	}
	if settings.BaseURL != "" {
		parsed, err := url.Parse(settings.BaseURL)
		if err != nil {
			return fmt.Errorf("openai.base_url invalid: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("openai.base_url must be http or https, got %q", settings.BaseURL)
		}
	}
	return nil
}

func validateStorage(storage domain.StorageSettings) error {
	if strings.TrimSpace(storage.DatabasePath) == "" {
		return fmt.Errorf("storage.database_path must be set")
	}
	return nil
}

func validateExecution(execution domain.ExecutionSettings) error {
	if execution.CommandTimeoutSeconds < 0 {
		return fmt.Errorf("execution.command_timeout_seconds must be >= 0")
	}
	return nil
}
