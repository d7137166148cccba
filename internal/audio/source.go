package audio

// SourceKind discriminates the supported ways of referring to input
// audio.
type SourceKind string

const (
	// SourceLocal is a file already present on local disk.
	SourceLocal SourceKind = "local"
	// SourceURL is a direct HTTP(S) link to a media file.
	SourceURL SourceKind = "url"
	// SourceVideo is a video-sharing-site URL whose audio track is
	// pulled out by an external extraction tool.
	SourceVideo SourceKind = "video"
)

// Source is an immutable reference to input audio. Use the constructor
// matching the source kind; the zero value is not a valid source.
type Source struct {
	Kind    SourceKind
	Path    string            // SourceLocal
	URL     string            // SourceURL and SourceVideo
	Headers map[string]string // SourceURL, forwarded on the fetch
}

// LocalSource refers to a file on local disk.
func LocalSource(path string) Source {
	return Source{Kind: SourceLocal, Path: path}
}

// URLSource refers to a remote media file fetched over HTTP(S) with
// the given headers attached to the request.
func URLSource(url string, headers map[string]string) Source {
	return Source{Kind: SourceURL, URL: url, Headers: headers}
}

// VideoSource refers to a video-sharing-site URL.
func VideoSource(url string) Source {
	return Source{Kind: SourceVideo, URL: url}
}
