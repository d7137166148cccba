package audio

import "fmt"

// FileNotFoundError reports a local input path that does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("audio file not found: %s", e.Path)
}

// DownloadFailedError reports a remote fetch that came back with a
// non-200 status.
type DownloadFailedError struct {
	URL        string
	StatusCode int
}

func (e *DownloadFailedError) Error() string {
	return fmt.Sprintf("download of %s failed with status %d", e.URL, e.StatusCode)
}

// ConversionFailedError reports a transcoder run that exited non-zero.
// Stderr carries the tool's error output for diagnosis.
type ConversionFailedError struct {
	Path   string
	Stderr string
}

func (e *ConversionFailedError) Error() string {
	return fmt.Sprintf("conversion of %s failed: %s", e.Path, e.Stderr)
}
