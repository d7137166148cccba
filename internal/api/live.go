package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Shubh587/wordcab-transcribe/internal/asr"
	"github.com/Shubh587/wordcab-transcribe/internal/audio"
	"github.com/Shubh587/wordcab-transcribe/pkg/logger"
)

// liveUpgrader upgrades live transcription connections. Origins are
// policed by the CORS middleware, not the handshake.
var liveUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleLiveWebSocket accepts a PCM16 mono 16 kHz stream as binary
// websocket frames. A text frame reading "done" finalizes the stream:
// the audio runs through the regular pipeline and the transcription
// response is sent back on the socket.
func (h *Handler) HandleLiveWebSocket(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	opts, ok := h.requestOptions(w, query.Get("alignment"), query.Get("source_lang"), query.Get("timestamps"))
	if !ok {
		return
	}

	conn, err := liveUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade live connection", logger.Error(err))
		return
	}
	defer conn.Close()

	log := h.logger.Named("live").With(logger.String("remote_addr", r.RemoteAddr))
	log.Info("Live connection opened")

	maxBytes := h.maxUploadBytes()
	conn.SetReadLimit(maxBytes)

	var pcm bytes.Buffer
	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			log.Debug("Live connection closed", logger.Error(err))
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			if int64(pcm.Len()+len(data)) > maxBytes {
				closeLive(conn, "audio stream exceeds the upload limit")
				return
			}
			pcm.Write(data)

		case websocket.TextMessage:
			if strings.TrimSpace(string(data)) != "done" {
				conn.WriteJSON(ErrorResponse{Error: fmt.Sprintf("unexpected control message %q", string(data))})
				continue
			}
			h.finishLive(r.Context(), conn, log, pcm.Bytes(), opts)
			return
		}
	}
}

// finishLive assembles the streamed audio into a WAV file, runs the
// pipeline and answers on the socket.
func (h *Handler) finishLive(ctx context.Context, conn *websocket.Conn, log *logger.Logger, pcm []byte, opts asr.Options) {
	if len(pcm) == 0 {
		closeLive(conn, "no audio received")
		return
	}
	if len(pcm)%2 != 0 {
		closeLive(conn, "audio stream is not aligned to 16-bit frames")
		return
	}

	wavPath, err := h.writeLiveWAV(pcm)
	if err != nil {
		log.Error("Failed to assemble live audio", logger.Error(err))
		closeLive(conn, "failed to assemble audio")
		return
	}
	defer os.Remove(wavPath)

	resp, err := h.service.Process(ctx, asr.Request{
		Source:  audio.LocalSource(wavPath),
		Options: opts,
	})
	if err != nil {
		log.Error("Live request failed", logger.Error(err))
		closeLive(conn, err.Error())
		return
	}

	if err := conn.WriteJSON(resp); err != nil {
		log.Error("Failed to send live response", logger.Error(err))
		return
	}
	log.Info("Live request complete", logger.Int("bytes", len(pcm)))
}

// writeLiveWAV writes the streamed PCM into a canonical WAV file in the
// work directory.
func (h *Handler) writeLiveWAV(pcm []byte) (string, error) {
	if err := os.MkdirAll(h.config.Audio.WorkDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create work directory: %w", err)
	}

	path := filepath.Join(h.config.Audio.WorkDir, "live-"+uuid.New().String()+".wav")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := audio.WritePCM16(file, pcm, audio.CanonicalSampleRate, audio.CanonicalChannels); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

func closeLive(conn *websocket.Conn, message string) {
	conn.WriteJSON(ErrorResponse{Error: message})
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
