package domain

// Config mirrors ~/.config/explain/config.yaml.
type Config struct {
	OpenAI    OpenAISettings    `yaml:"openai"`
	Storage   StorageSettings   `yaml:"storage"`
	Execution ExecutionSettings `yaml:"execution"`
}

// OpenAISettings configures the chat completion backend.
type OpenAISettings struct {
	APIKey         string  `yaml:"api_key"`
	ModelName      string  `yaml:"model_name"`
	SmartModelName string  `yaml:"smart_model_name"`
	Organization   string  `yaml:"organization"`
	BaseURL        string  `yaml:"base_url"`
	Temperature    float64 `yaml:"temperature"`
	Seed           int64   `yaml:"seed"`
}

// StorageSettings locates the history database.
type StorageSettings struct {
	DatabasePath string `yaml:"database_path"`
}

// ExecutionSettings controls commands spawned to gather input.
type ExecutionSettings struct {
	// CommandTimeoutSeconds bounds a spawned command; 0 waits indefinitely.
	CommandTimeoutSeconds int `yaml:"command_timeout_seconds"`
}
