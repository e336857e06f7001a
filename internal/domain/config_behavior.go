package domain

import "time"

// ModelFor returns the model name for the requested mode, falling back to defaults.
func (c *Config) ModelFor(thinkDeep bool) string {
	if thinkDeep {
		if c.OpenAI.SmartModelName != "" {
			return c.OpenAI.SmartModelName
		}
		return DefaultSmartModelName
	}
	if c.OpenAI.ModelName != "" {
		return c.OpenAI.ModelName
	}
	return DefaultModelName
}

// HasAPIKey checks if a backend key is configured
func (c *Config) HasAPIKey() bool {
	return c.OpenAI.APIKey != ""
}

// MaskedAPIKey returns a display-safe form of the API key.
func (c *Config) MaskedAPIKey() string {
	if c.HasAPIKey() {
		return "***CONFIGURED***"
	}
	return "NOT SET"
}

// OrganizationOrDefault returns the organization or a placeholder for display.
func (c *Config) OrganizationOrDefault() string {
	if c.OpenAI.Organization == "" {
		return "Not set"
	}
	return c.OpenAI.Organization
}

// CommandTimeout returns the spawned-command deadline; zero means none.
func (c *Config) CommandTimeout() time.Duration {
	if c.Execution.CommandTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Execution.CommandTimeoutSeconds) * time.Second
}
