// pkg/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("FORMS_SHEET_ID", "sheet-123")
	t.Setenv("FORM1_TAB", "Respuestas F1")
	t.Setenv("FORM2_TAB", "Respuestas F2")
	t.Setenv("SELECTED_WORKSHOP_DATE", "2025-12-01")
	t.Setenv("SELECTED_WORKSHOP_CODE", "112251")
	t.Setenv("SHEET_CACHE_TTL_SECONDS", "30")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sheet-123", cfg.FormsSheetID)
	assert.Equal(t, "Respuestas F1", cfg.Form1Tab)
	assert.Equal(t, 30*time.Second, cfg.SheetCacheTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
}

func TestLoadConfigRequiresSheetID(t *testing.T) {
	t.Setenv("FORMS_SHEET_ID", "")
	t.Setenv("FORM1_TAB", "F1")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, model.IsKind(err, model.KindConfiguration))
}

func TestValidateRequiresAFormTab(t *testing.T) {
	cfg := &Config{FormsSheetID: "sheet-123"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORM1_TAB")
}

func TestScopeResolution(t *testing.T) {
	cfg := &Config{
		SelectedWorkshopDate: "2025-12-01",
		SelectedWorkshopCode: "112251",
		CodigoTaller:         "legacy",
	}

	scope := cfg.Scope()
	assert.Equal(t, "2025-12-01", scope.Date)
	assert.Equal(t, "112251", scope.Identifier())

	scope.Code = ""
	assert.Equal(t, "legacy", scope.Identifier())
}

func TestGetEnvAsIntFallback(t *testing.T) {
	t.Setenv("SOME_INT", "not a number")
	assert.Equal(t, 42, getEnvAsInt("SOME_INT", 42))
	t.Setenv("SOME_INT", "7")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 42))
}
