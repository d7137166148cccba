package api

// TranscriptionRequest is the JSON body of the audio-url and youtube
// endpoints.
type TranscriptionRequest struct {
	URL        string            `json:"url"`
	URLHeaders map[string]string `json:"url_headers,omitempty"`
	Alignment  bool              `json:"alignment"`
	SourceLang string            `json:"source_lang"`
	Timestamps string            `json:"timestamps"`
}

// CortexPayload is the batch-integration request body. URLType selects
// the acquisition path and defaults to "audio_url".
type CortexPayload struct {
	URLType    string `json:"url_type"`
	URL        string `json:"url"`
	APIKey     string `json:"api_key,omitempty"`
	Alignment  bool   `json:"alignment"`
	SourceLang string `json:"source_lang"`
	Timestamps string `json:"timestamps"`
	JobName    string `json:"job_name,omitempty"`
	Ping       bool   `json:"ping"`
}

// PongResponse answers a cortex ping.
type PongResponse struct {
	Message string `json:"message"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
