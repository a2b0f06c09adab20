package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	OCR      OCRConfig
	LLM      LLMConfig
	Registry RegistryConfig
	Layout   LayoutConfig
}

// OCRConfig configures the external poppler/tesseract binaries.
type OCRConfig struct {
	Pdftoppm    string
	Tesseract   string
	Language    string
	DPI         int
	TessdataDir string
}

// LLMConfig configures the semantic-extractor fallback.
type LLMConfig struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float32
	Timeout     time.Duration
}

// RegistryConfig configures the company-registry lookup.
type RegistryConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// LayoutConfig holds the rendered-page defaults used when a collaborator
// does not report dimensions.
type LayoutConfig struct {
	DefaultPageWidth  float64
	DefaultPageHeight float64
}

// LoadConfig loads configuration from environment variables. Secrets are
// never hardcoded; the OpenAI and KVK keys must come from the environment.
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Pdftoppm:    getEnv("PDFTOPPM_BIN", "pdftoppm"),
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Language:    getEnv("OCR_LANG", "eng"),
			DPI:         getEnvAsInt("OCR_DPI", 300),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Registry: RegistryConfig{
			BaseURL: getEnv("KVK_API_URL", "https://api.overheid.io/openkvk"),
			APIKey:  getEnv("KVK_API_KEY", ""),
			Timeout: getEnvAsDuration("KVK_TIMEOUT", 10*time.Second),
		},
		Layout: LayoutConfig{
			DefaultPageWidth:  getEnvAsFloat64("PAGE_WIDTH_PT", 595),
			DefaultPageHeight: getEnvAsFloat64("PAGE_HEIGHT_PT", 842),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required", ErrInvalidInput)
	}
	if c.OCR.DPI <= 0 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be positive", ErrInvalidInput)
	}
	return nil
}
