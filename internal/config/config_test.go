package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giaphaapp/giapha-server/internal/domain"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Environment: "development",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
		Data: DataConfig{
			BasePath: "/some/path",
		},
		Policy: PolicyConfig{
			Version:     1,
			DefaultTier: int(domain.TierMembers),
		},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"debug", true},
		{"info", true},
		{"warn", true},
		{"error", true},
		{"INFO", true}, // case insensitive
		{"trace", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.Logger.Level = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_EmptyDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Data.BasePath = ""

	err := cfg.Validate()
	assert.Error(t, err)
}

func TestValidate_PolicyBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Policy.Version = 0
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Policy.DefaultTier = 3
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Policy.DefaultTier = -1
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expanded, err := expandPath("~/giapha", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "giapha"), expanded)

	expanded, err = expandPath("", "/fallback")
	require.NoError(t, err)
	assert.Equal(t, "/fallback", expanded)

	expanded, err = expandPath("/already/absolute", "")
	require.NoError(t, err)
	assert.Equal(t, "/already/absolute", expanded)
}

func TestExpandDataPath_Default(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	cfg := validConfig()
	cfg.Data.BasePath = ""
	require.NoError(t, cfg.expandDataPath())
	assert.Equal(t, filepath.Join(home, "GiaPha", "data"), cfg.Data.BasePath)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\nGIAPHA_TEST_KEY=hello\nGIAPHA_TEST_QUOTED=\"world\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))

	t.Setenv("GIAPHA_TEST_KEY", "")
	os.Unsetenv("GIAPHA_TEST_KEY")
	t.Setenv("GIAPHA_TEST_QUOTED", "")
	os.Unsetenv("GIAPHA_TEST_QUOTED")

	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "hello", os.Getenv("GIAPHA_TEST_KEY"))
	assert.Equal(t, "world", os.Getenv("GIAPHA_TEST_QUOTED"))
}

func TestLoadEnvFile_EnvWins(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("GIAPHA_TEST_PRECEDENCE=file\n"), 0o600))

	t.Setenv("GIAPHA_TEST_PRECEDENCE", "env")
	require.NoError(t, loadEnvFile(envPath))
	assert.Equal(t, "env", os.Getenv("GIAPHA_TEST_PRECEDENCE"))
}

func TestLoadEnvFile_BadFormat(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("not a key value pair\n"), 0o600))

	assert.Error(t, loadEnvFile(envPath))
}
