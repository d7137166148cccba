package diarize

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Shubh587/wordcab-transcribe/internal/transcript"
	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
	"github.com/Shubh587/wordcab-transcribe/pkg/subprocess"
)

// jobConfigFilename is the materialized job config handed to the backend.
const jobConfigFilename = "diar_infer.yaml"

// Engine runs an external diarization backend. The backend command is
// invoked with the materialized job config path as its last argument
// and is expected to write standard RTTM output under the job's output
// directory, in pred_rttms/<audio-stem>.rttm.
type Engine struct {
	command []string
	logger  *logger.Logger
}

// NewEngine creates an engine that shells out to the given command.
func NewEngine(command []string, log *logger.Logger) *Engine {
	return &Engine{
		command: command,
		logger:  log.Named("diarize-engine"),
	}
}

// Diarize runs the backend for one prepared job and parses the speaker
// turns it produced.
func (e *Engine) Diarize(ctx context.Context, audioPath string, job *JobConfig) ([]transcript.SpeakerTurn, error) {
	if len(e.command) == 0 {
		return nil, fmt.Errorf("no diarization command configured")
	}

	configPath := filepath.Join(filepath.Dir(job.ManifestPath), jobConfigFilename)
	data, err := yaml.Marshal(job.Parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write job config: %w", err)
	}

	argv := append(append([]string{}, e.command...), configPath)
	e.logger.Debug("Running diarization backend",
		logger.String("command", argv[0]),
		logger.String("config", configPath))

	result, err := subprocess.Run(ctx, argv)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("diarization backend exited with code %d: %s",
			result.ExitCode, strings.TrimSpace(string(result.Stderr)))
	}

	stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	rttmPath := filepath.Join(job.OutputDir, "pred_rttms", stem+".rttm")
	file, err := os.Open(rttmPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open RTTM output %s: %w", rttmPath, err)
	}
	defer file.Close()

	turns, err := ParseRTTM(file)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("Diarization complete", logger.Int("turns", len(turns)))
	return turns, nil
}
