package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `{
		"openai_api_key": "sk-test",
		"gemini_model": "gemini-2.0-pro",
		"database_url": "postgres://localhost/analyzer",
		"port": 9090
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIKey)
	assert.Equal(t, "gemini-2.0-pro", cfg.GeminiModel)
	assert.Equal(t, "postgres://localhost/analyzer", cfg.DatabaseURL)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("GEMINI_API_KEY", "gm-env")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("PORT", "7070")

	cfg := FromEnv()

	assert.Equal(t, "sk-env", cfg.OpenAIKey)
	assert.Equal(t, "gm-env", cfg.GeminiKey)
	assert.Equal(t, "postgres://env", cfg.DatabaseURL)
	assert.Equal(t, 7070, cfg.Port)
}

func TestFromEnv_InvalidPortIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, 0, cfg.Port)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: 8080}
	assert.NoError(t, cfg.Validate())

	cfg.Port = -1
	assert.Error(t, cfg.Validate())

	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{OpenAIKey: "sk-file", Port: 9000}
	defaults := Config{
		OpenAIKey:   "sk-env",
		GeminiKey:   "gm-env",
		DatabaseURL: "postgres://env",
		Port:        8080,
	}

	merged := cfg.MergeWithDefaults(defaults)

	// Explicit values win; gaps fill from defaults.
	assert.Equal(t, "sk-file", merged.OpenAIKey)
	assert.Equal(t, "gm-env", merged.GeminiKey)
	assert.Equal(t, "postgres://env", merged.DatabaseURL)
	assert.Equal(t, 9000, merged.Port)
}

func TestCredentials(t *testing.T) {
	cfg := &Config{OpenAIKey: "a", GeminiKey: "b"}

	creds := cfg.Credentials()

	assert.Equal(t, "a", creds.OpenAIKey)
	assert.Equal(t, "b", creds.GeminiKey)
	assert.True(t, creds.Configured())
}

func TestLLMConfig_ModelOverrides(t *testing.T) {
	cfg := &Config{OpenAIModel: "gpt-4.1", GeminiModel: ""}

	llmCfg := cfg.LLMConfig()

	assert.Equal(t, "gpt-4.1", llmCfg.OpenAIModel)
	// Unset models keep the defaults.
	assert.Equal(t, "gemini-2.5-flash", llmCfg.GeminiModel)
	assert.Equal(t, "https://api.openai.com/v1", llmCfg.OpenAIBaseURL)
}
