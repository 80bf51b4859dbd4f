// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

// Config represents the application configuration
type Config struct {
	// Source spreadsheet
	FormsSheetID         string
	Form0Tab             string
	Form1Tab             string
	Form2Tab             string
	GoogleServiceAccount string // service-account credentials JSON
	SheetCacheTTL        time.Duration

	// Workshop selection
	SelectedWorkshopDate string
	SelectedWorkshopCode string
	CodigoTaller         string // legacy single-workshop identifier

	// Analysis backend
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from the environment, reading a local .env
// file first when one exists.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		FormsSheetID:         getEnv("FORMS_SHEET_ID", ""),
		Form0Tab:             getEnv("FORM0_TAB", ""),
		Form1Tab:             getEnv("FORM1_TAB", ""),
		Form2Tab:             getEnv("FORM2_TAB", ""),
		GoogleServiceAccount: getEnv("GOOGLE_SERVICE_ACCOUNT", ""),
		SheetCacheTTL:        time.Duration(getEnvAsInt("SHEET_CACHE_TTL_SECONDS", 60)) * time.Second,

		SelectedWorkshopDate: getEnv("SELECTED_WORKSHOP_DATE", ""),
		SelectedWorkshopCode: getEnv("SELECTED_WORKSHOP_CODE", ""),
		CodigoTaller:         getEnv("CODIGO_TALLER", ""),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.FormsSheetID == "" {
		return model.NewDataError(model.KindConfiguration,
			"FORMS_SHEET_ID is required")
	}

	if c.Form1Tab == "" && c.Form2Tab == "" {
		return errors.New("at least one of FORM1_TAB or FORM2_TAB must be set")
	}

	if c.SheetCacheTTL < 0 {
		return errors.New("sheet cache TTL cannot be negative")
	}

	return nil
}

// Scope resolves the configured workshop selection into an explicit scope
// value for the pipeline.
func (c *Config) Scope() model.WorkshopScope {
	return model.WorkshopScope{
		Date:       c.SelectedWorkshopDate,
		Code:       c.SelectedWorkshopCode,
		LegacyCode: c.CodigoTaller,
	}
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
