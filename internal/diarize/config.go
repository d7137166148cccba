// Package diarize prepares per-request job configuration for an
// external speaker-diarization engine: a domain-tuned parameter tree,
// a one-line manifest locating the input audio, and the directories
// the engine reads from and writes to.
package diarize

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// Profile is a named diarization preset tuned for an acoustic scenario.
type Profile string

const (
	ProfileGeneral    Profile = "general"
	ProfileMeeting    Profile = "meeting"
	ProfileTelephonic Profile = "telephonic"
)

// UnknownProfileError reports a profile name outside the supported set.
type UnknownProfileError struct {
	Profile string
}

func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown diarization profile: %q (valid profiles are: general, meeting, telephonic)", e.Profile)
}

// ParseProfile validates a profile name supplied by a caller.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileGeneral, ProfileMeeting, ProfileTelephonic:
		return Profile(s), nil
	default:
		return "", &UnknownProfileError{Profile: s}
	}
}

//go:embed profiles/*.yaml
var profileFS embed.FS

// manifestEntry is the single-record job descriptor the engine reads
// to locate its input audio. Field order matches what the engine
// expects to see on the wire.
type manifestEntry struct {
	AudioFilepath string   `json:"audio_filepath"`
	Offset        float64  `json:"offset"`
	Duration      *float64 `json:"duration"`
	Label         string   `json:"label"`
	Text          string   `json:"text"`
	RTTMFilepath  *string  `json:"rttm_filepath"`
	UEMFilepath   *string  `json:"uem_filepath"`
}

// JobConfig is the fully materialized configuration for one
// diarization run.
type JobConfig struct {
	Profile      Profile
	ManifestPath string
	OutputDir    string
	// NumWorkers is always zero: each request runs the engine
	// single-process for deterministic resource usage.
	NumWorkers int
	// Parameters is the engine parameter tree loaded from the profile,
	// with the manifest path, output dir and worker count already
	// injected.
	Parameters map[string]any
}

// Builder materializes diarization job configurations. A non-empty
// profileDir overrides the embedded profile set, so deployments can
// tune engine parameters without rebuilding.
type Builder struct {
	profileDir string
	logger     *logger.Logger
}

// NewBuilder creates a builder reading profiles from profileDir, or
// from the embedded set when profileDir is empty.
func NewBuilder(profileDir string, log *logger.Logger) *Builder {
	return &Builder{
		profileDir: profileDir,
		logger:     log.Named("diarize"),
	}
}

// BuildJobConfig prepares one diarization run: it validates the
// profile up front, loads its parameter tree, ensures storageDir and
// outputDir exist (creating parents as needed), and writes a one-line
// manifest pointing the engine at audioPath. Calling it again with the
// same directories overwrites the manifest and succeeds.
func (b *Builder) BuildJobConfig(profile Profile, audioPath, storageDir, outputDir string) (*JobConfig, error) {
	if _, err := ParseProfile(string(profile)); err != nil {
		return nil, err
	}

	params, err := b.loadProfile(profile)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", storageDir, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", outputDir, err)
	}

	manifestPath := filepath.Join(storageDir, "infer_manifest.json")
	if err := writeManifest(manifestPath, audioPath); err != nil {
		return nil, err
	}

	params["num_workers"] = 0
	diarizer, ok := params["diarizer"].(map[string]any)
	if !ok {
		diarizer = map[string]any{}
		params["diarizer"] = diarizer
	}
	diarizer["manifest_filepath"] = manifestPath
	diarizer["out_dir"] = outputDir

	b.logger.Debug("Built diarization job config",
		logger.String("profile", string(profile)),
		logger.String("manifest", manifestPath),
		logger.String("output_dir", outputDir),
	)

	return &JobConfig{
		Profile:      profile,
		ManifestPath: manifestPath,
		OutputDir:    outputDir,
		NumWorkers:   0,
		Parameters:   params,
	}, nil
}

func (b *Builder) loadProfile(profile Profile) (map[string]any, error) {
	name := fmt.Sprintf("diar_infer_%s.yaml", profile)

	var raw []byte
	var err error
	if b.profileDir != "" {
		raw, err = os.ReadFile(filepath.Join(b.profileDir, name))
	} else {
		raw, err = profileFS.ReadFile("profiles/" + name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", name, err)
	}

	var params map[string]any
	if err := yaml.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", name, err)
	}
	return params, nil
}

// writeManifest writes the one-record manifest as a single JSON line,
// replacing any prior content at path.
func writeManifest(path, audioPath string) error {
	entry := manifestEntry{
		AudioFilepath: audioPath,
		Offset:        0,
		Label:         "infer",
		Text:          "-",
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	return nil
}
