package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for resumelens.
type Config struct {
	AI     AIConfig
	Output OutputConfig
}

// AIConfig selects and authenticates the hosted model endpoint.
type AIConfig struct {
	Provider  string        `validate:"oneof=openai gemini"`
	BaseURL   string        `validate:"omitempty,url"`
	Model     string        `validate:"required"`
	APIKey    string        `validate:"required"` // expanded from env var by Load
	Timeout   time.Duration `validate:"gt=0"`     // per-request timeout
	MaxTokens int           `validate:"gte=0"`
}

// OutputConfig controls where the analysis report is written.
type OutputConfig struct {
	ReportPath string `validate:"required"`
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultOpenAIModel   = "gpt-4o"
	defaultGeminiModel   = "gemini-2.5-flash"
	defaultReportPath    = "resume_analysis.txt"
	defaultMaxTokens     = 2048
)

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	AI     rawAIConfig     `yaml:"ai"`
	Output rawOutputConfig `yaml:"output"`
}

type rawAIConfig struct {
	Provider  string `yaml:"provider"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	Timeout   string `yaml:"timeout"`
	MaxTokens *int   `yaml:"max_tokens"`
}

type rawOutputConfig struct {
	ReportPath string `yaml:"report_path"`
}

// LoadDotEnv loads a .env file into the process environment if one exists.
// Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Load reads and parses the YAML config file at path, validates it, and
// returns Config. An empty path means "no file": defaults plus environment.
func Load(path string) (*Config, error) {
	var raw rawConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		// Expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg, err := fromRaw(raw)
	if err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromRaw(raw rawConfig) (*Config, error) {
	provider := strings.ToLower(strings.TrimSpace(raw.AI.Provider))
	if provider == "" {
		provider = ProviderOpenAI
	}

	timeout := 120 * time.Second // default
	if raw.AI.Timeout != "" {
		d, err := time.ParseDuration(raw.AI.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse ai.timeout %q: %w", raw.AI.Timeout, err)
		}
		timeout = d
	}

	maxTokens := defaultMaxTokens
	if raw.AI.MaxTokens != nil {
		maxTokens = *raw.AI.MaxTokens
	}

	model := raw.AI.Model
	baseURL := raw.AI.BaseURL
	apiKey := raw.AI.APIKey
	switch provider {
	case ProviderGemini:
		if model == "" {
			model = defaultGeminiModel
		}
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
	default:
		if model == "" {
			model = defaultOpenAIModel
		}
		if baseURL == "" {
			baseURL = defaultOpenAIBaseURL
		}
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	reportPath := raw.Output.ReportPath
	if reportPath == "" {
		reportPath = defaultReportPath
	}

	return &Config{
		AI: AIConfig{
			Provider:  provider,
			BaseURL:   strings.TrimRight(baseURL, "/"),
			Model:     model,
			APIKey:    apiKey,
			Timeout:   timeout,
			MaxTokens: maxTokens,
		},
		Output: OutputConfig{
			ReportPath: reportPath,
		},
	}, nil
}

var validate = func() func(cfg *Config) error {
	v := validator.New()
	return func(cfg *Config) error {
		err := v.Struct(cfg)
		if err == nil {
			return nil
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fieldMessage(cfg, fe))
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}
}()

// fieldMessage turns a validator error into the config key a user would edit.
func fieldMessage(cfg *Config, fe validator.FieldError) string {
	switch fe.StructNamespace() {
	case "Config.AI.APIKey":
		env := "OPENAI_API_KEY"
		if cfg.AI.Provider == ProviderGemini {
			env = "GEMINI_API_KEY"
		}
		return fmt.Sprintf("ai.api_key is required (set %s or ai.api_key)", env)
	case "Config.AI.Provider":
		return fmt.Sprintf("ai.provider must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, cfg.AI.Provider)
	case "Config.AI.BaseURL":
		return fmt.Sprintf("ai.base_url must be a URL, got %q", cfg.AI.BaseURL)
	case "Config.AI.Timeout":
		return fmt.Sprintf("ai.timeout must be positive, got %v", cfg.AI.Timeout)
	case "Config.AI.MaxTokens":
		return fmt.Sprintf("ai.max_tokens must not be negative, got %d", cfg.AI.MaxTokens)
	default:
		return fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
	}
}
