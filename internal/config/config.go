package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/avandyk/marketbrief/internal/models"
)

// Config carries everything the pipeline needs. It is resolved once at
// startup and read-shared afterwards; nothing mutates it mid-run.
type Config struct {
	TavilyAPIKey    string
	OpenAIAPIKey    string
	GeminiAPIKey    string
	AnthropicAPIKey string

	TelegramToken     string
	TelegramChannelID string

	Topics    []string
	Languages []models.Language
	Backends  []string

	BackendMaxAttempts    int
	BackendInitialBackoff time.Duration
	BackendMaxBackoff     time.Duration
	MinGenerationLength   int

	MaxArticlesPerPrompt int
	MaxImagesPerDocument int
	InsightCount         int

	RequestTimeout time.Duration
	OutputDir      string
	PDFFontPath    string
	LogLevel       string
}

var defaultTopics = []string{
	"US stock market today S&P 500 NASDAQ",
	"Federal Reserve interest rates today",
	"major corporate earnings today",
	"US economic indicators today",
}

var languageNames = map[string]string{
	"en": "English",
	"ar": "Arabic",
	"hi": "Hindi",
	"he": "Hebrew",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"fa": "Persian",
	"ur": "Urdu",
	"zh": "Chinese",
	"ja": "Japanese",
	"ru": "Russian",
}

// Load builds a Config from environment variables and validates it.
func Load() (*Config, error) {
	c := &Config{
		TavilyAPIKey:    getEnv("TAVILY_API_KEY", ""),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),

		TelegramToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChannelID: getEnv("TELEGRAM_CHANNEL_ID", ""),

		Topics:   splitAndTrim(getEnv("TOPICS", strings.Join(defaultTopics, ","))),
		Backends: splitAndTrim(getEnv("BACKENDS", "openai,gemini,claude")),

		BackendMaxAttempts:    getEnvAsInt("BACKEND_MAX_ATTEMPTS", 3),
		BackendInitialBackoff: getEnvAsDuration("BACKEND_INITIAL_BACKOFF", 2*time.Second),
		BackendMaxBackoff:     getEnvAsDuration("BACKEND_MAX_BACKOFF", 30*time.Second),
		MinGenerationLength:   getEnvAsInt("MIN_GENERATION_LENGTH", 40),

		MaxArticlesPerPrompt: getEnvAsInt("MAX_ARTICLES_PER_PROMPT", 10),
		MaxImagesPerDocument: getEnvAsInt("MAX_IMAGES_PER_DOCUMENT", 2),
		InsightCount:         getEnvAsInt("INSIGHT_COUNT", 5),

		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		OutputDir:      getEnv("OUTPUT_DIR", "outputs"),
		PDFFontPath:    getEnv("PDF_FONT_PATH", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	langs, err := ParseLanguages(getEnv("LANGUAGES", "en,ar:rtl,hi,he:rtl"))
	if err != nil {
		return nil, err
	}
	c.Languages = langs

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.TavilyAPIKey == "" {
		return fmt.Errorf("TAVILY_API_KEY is required")
	}
	if len(c.Topics) == 0 {
		return fmt.Errorf("TOPICS must contain at least one query")
	}
	if len(c.Backends) == 0 {
		return fmt.Errorf("BACKENDS must contain at least one backend")
	}
	if c.BackendMaxAttempts <= 0 {
		return fmt.Errorf("BACKEND_MAX_ATTEMPTS must be positive")
	}
	if c.MaxArticlesPerPrompt <= 0 {
		return fmt.Errorf("MAX_ARTICLES_PER_PROMPT must be positive")
	}
	if c.MaxImagesPerDocument < 0 {
		return fmt.Errorf("MAX_IMAGES_PER_DOCUMENT cannot be negative")
	}
	if c.InsightCount <= 0 {
		return fmt.Errorf("INSIGHT_COUNT must be positive")
	}
	if len(c.Languages) == 0 || c.Languages[0].Code != "en" {
		return fmt.Errorf("LANGUAGES must start with en; it is the translation source")
	}
	return nil
}

// ParseLanguages parses a comma-separated list of "code" or "code:rtl"
// entries into Language values. Direction defaults to left-to-right.
func ParseLanguages(raw string) ([]models.Language, error) {
	entries := splitAndTrim(raw)
	langs := make([]models.Language, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		code := entry
		dir := models.LeftToRight

		if i := strings.IndexByte(entry, ':'); i >= 0 {
			code = entry[:i]
			switch strings.ToLower(entry[i+1:]) {
			case "rtl":
				dir = models.RightToLeft
			case "ltr":
				dir = models.LeftToRight
			default:
				return nil, fmt.Errorf("language %q: direction must be ltr or rtl", entry)
			}
		}

		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			return nil, fmt.Errorf("empty language code in %q", raw)
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("duplicate language code %q", code)
		}
		seen[code] = struct{}{}

		name := languageNames[code]
		if name == "" {
			name = strings.ToUpper(code)
		}
		langs = append(langs, models.Language{Code: code, Name: name, Direction: dir})
	}

	return langs, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
