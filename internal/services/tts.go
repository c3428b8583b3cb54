package services

import "context"

// ---------------------------------------------------------------------------
// TTSService — common interface for text-to-speech providers
// Both ElevenLabs and Cartesia implement this interface so the voice handler
// can use whichever is configured without knowing the underlying provider.
// ---------------------------------------------------------------------------

// TTSResponse is the common response type from any TTS provider.
type TTSResponse struct {
	AudioData   []byte
	ContentType string // e.g. "audio/mpeg"
}

// TTSService is the interface that any TTS provider must implement.
type TTSService interface {
	// GenerateSpeech converts text to audio in a single attempt — no retry,
	// no fallback voice.
	GenerateSpeech(ctx context.Context, text string) (*TTSResponse, error)
}
