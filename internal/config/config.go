// Package config loads the TOML configuration file and validates it
// before any component starts.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/Shubh587/wordcab-transcribe/internal/diarize"
)

// Config is the root configuration, one section per component.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Features    FeaturesConfig    `toml:"features"`
	Whisper     WhisperConfig     `toml:"whisper"`
	Diarization DiarizationConfig `toml:"diarization"`
	Audio       AudioConfig       `toml:"audio"`
	Storage     StorageConfig     `toml:"storage"`
	Watch       WatchConfig       `toml:"watch"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host                  string   `toml:"host"`
	Port                  int      `toml:"port"`
	CORSAllowedOrigins    []string `toml:"cors_allowed_origins"`
	APIKey                string   `toml:"api_key"`
	MaxUploadMB           int      `toml:"max_upload_mb"`
	RequestTimeoutSeconds int      `toml:"request_timeout_seconds"`
}

// FeaturesConfig enables or disables the request endpoints.
type FeaturesConfig struct {
	AudioFile bool `toml:"audio_file"`
	AudioURL  bool `toml:"audio_url"`
	YouTube   bool `toml:"youtube"`
	Cortex    bool `toml:"cortex"`
	Live      bool `toml:"live"`
}

// WhisperConfig holds the speech recognition backend settings.
type WhisperConfig struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DiarizationConfig holds the speaker attribution settings. When
// disabled, every utterance is attributed to speaker 0.
type DiarizationConfig struct {
	Enabled    bool     `toml:"enabled"`
	Profile    string   `toml:"profile"`
	ProfileDir string   `toml:"profile_dir"`
	StorageDir string   `toml:"storage_dir"`
	OutputDir  string   `toml:"output_dir"`
	Command    []string `toml:"command"`
	Anchor     string   `toml:"anchor"`
}

// AudioConfig holds acquisition and transcoding settings.
type AudioConfig struct {
	WorkDir                string `toml:"work_dir"`
	ProxyURL               string `toml:"proxy_url"`
	DownloadTimeoutSeconds int    `toml:"download_timeout_seconds"`
	FFmpegPath             string `toml:"ffmpeg_path"`
	YTDLPPath              string `toml:"ytdlp_path"`
}

// StorageConfig holds the transcription record store settings. A
// retention of zero days keeps records forever.
type StorageConfig struct {
	Enabled       bool   `toml:"enabled"`
	Path          string `toml:"path"`
	RetentionDays int    `toml:"retention_days"`
}

// WatchConfig holds the hot folder ingestion settings.
type WatchConfig struct {
	Enabled       bool     `toml:"enabled"`
	Dir           string   `toml:"dir"`
	OutputDir     string   `toml:"output_dir"`
	SettleSeconds int      `toml:"settle_seconds"`
	Extensions    []string `toml:"extensions"`
}

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when the file leaves a value
// unset.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:                  "0.0.0.0",
			Port:                  5001,
			MaxUploadMB:           512,
			RequestTimeoutSeconds: 600,
		},
		Features: FeaturesConfig{
			AudioFile: true,
			AudioURL:  true,
			YouTube:   true,
			Cortex:    true,
			Live:      false,
		},
		Whisper: WhisperConfig{
			Model:          "whisper-1",
			TimeoutSeconds: 300,
		},
		Diarization: DiarizationConfig{
			Enabled:    false,
			Profile:    "general",
			StorageDir: "data/diarization/storage",
			OutputDir:  "data/diarization/output",
			Anchor:     "start",
		},
		Audio: AudioConfig{
			WorkDir:                "data/work",
			DownloadTimeoutSeconds: 600,
			FFmpegPath:             "ffmpeg",
			YTDLPPath:              "yt-dlp",
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "data/transcriptions.db",
		},
		Watch: WatchConfig{
			Enabled:       false,
			SettleSeconds: 2,
			Extensions:    []string{".wav", ".mp3", ".mp4", ".m4a", ".flac", ".ogg", ".webm", ".aac"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads the configuration file at path on top of the defaults and
// validates the result.
func Load(path string) (*Config, error) {
	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration for values no component could run
// with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("invalid max upload size: %d MB", c.Server.MaxUploadMB)
	}

	if c.Whisper.APIKey == "" && c.Whisper.BaseURL == "" {
		return fmt.Errorf("whisper api_key is required (or base_url for a keyless backend)")
	}

	if _, err := diarize.ParseProfile(c.Diarization.Profile); err != nil {
		return err
	}
	switch c.Diarization.Anchor {
	case "", "start", "mid", "end":
	default:
		return fmt.Errorf("invalid diarization anchor: %q (valid anchors are: start, mid, end)", c.Diarization.Anchor)
	}
	if c.Diarization.Enabled && len(c.Diarization.Command) == 0 {
		return fmt.Errorf("diarization is enabled but no command is configured")
	}

	if c.Audio.WorkDir == "" {
		return fmt.Errorf("audio work_dir is required")
	}

	if c.Storage.Enabled && c.Storage.Path == "" {
		return fmt.Errorf("storage is enabled but no path is configured")
	}
	if c.Storage.RetentionDays < 0 {
		return fmt.Errorf("invalid storage retention_days: %d", c.Storage.RetentionDays)
	}

	if c.Watch.Enabled && c.Watch.Dir == "" {
		return fmt.Errorf("watch is enabled but no directory is configured")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}

	return nil
}
