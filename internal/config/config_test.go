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
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[whisper]
api_key = "sk-test"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, 512, cfg.Server.MaxUploadMB)
	assert.True(t, cfg.Features.AudioFile)
	assert.True(t, cfg.Features.Cortex)
	assert.False(t, cfg.Features.Live)
	assert.Equal(t, "whisper-1", cfg.Whisper.Model)
	assert.Equal(t, "sk-test", cfg.Whisper.APIKey)
	assert.Equal(t, "general", cfg.Diarization.Profile)
	assert.Equal(t, "ffmpeg", cfg.Audio.FFmpegPath)
	assert.Equal(t, "yt-dlp", cfg.Audio.YTDLPPath)
	assert.True(t, cfg.Storage.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 9000
cors_allowed_origins = ["https://app.example.com"]
api_key = "secret"

[features]
youtube = false
live = true

[whisper]
api_key = "sk-test"
model = "whisper-large"
timeout_seconds = 60

[diarization]
enabled = true
profile = "telephonic"
command = ["python3", "diarize.py"]
anchor = "mid"

[watch]
enabled = true
dir = "/inbox"

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "secret", cfg.Server.APIKey)
	assert.False(t, cfg.Features.YouTube)
	assert.True(t, cfg.Features.Live)
	assert.True(t, cfg.Features.AudioFile)
	assert.Equal(t, "whisper-large", cfg.Whisper.Model)
	assert.Equal(t, 60, cfg.Whisper.TimeoutSeconds)
	assert.True(t, cfg.Diarization.Enabled)
	assert.Equal(t, "telephonic", cfg.Diarization.Profile)
	assert.Equal(t, []string{"python3", "diarize.py"}, cfg.Diarization.Command)
	assert.Equal(t, "mid", cfg.Diarization.Anchor)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, "/inbox", cfg.Watch.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.ErrorContains(t, err, "failed to load config file")
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "invalid server port",
		},
		{
			name:    "missing whisper credentials",
			mutate:  func(c *Config) { c.Whisper.APIKey = "" },
			wantErr: "whisper api_key is required",
		},
		{
			name:    "unknown profile",
			mutate:  func(c *Config) { c.Diarization.Profile = "courtroom" },
			wantErr: "unknown diarization profile",
		},
		{
			name:    "bad anchor",
			mutate:  func(c *Config) { c.Diarization.Anchor = "middle" },
			wantErr: "invalid diarization anchor",
		},
		{
			name:    "diarization without command",
			mutate:  func(c *Config) { c.Diarization.Enabled = true },
			wantErr: "no command is configured",
		},
		{
			name:    "watch without dir",
			mutate:  func(c *Config) { c.Watch.Enabled = true },
			wantErr: "no directory is configured",
		},
		{
			name:    "negative retention",
			mutate:  func(c *Config) { c.Storage.RetentionDays = -1 },
			wantErr: "invalid storage retention_days",
		},
		{
			name:    "bad logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "bad logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Whisper.APIKey = "sk-test"
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestWhisperBaseURLAllowsMissingKey(t *testing.T) {
	cfg := Default()
	cfg.Whisper.BaseURL = "http://localhost:8080/v1"
	assert.NoError(t, cfg.Validate())
}
