package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// ---------------------------------------------------------------------------
// ElevenLabs Text-to-Speech Service
// Uses the ElevenLabs REST API to convert text into speech audio.
// Model: eleven_monolingual_v1
// ---------------------------------------------------------------------------

const (
	elevenLabsBaseURL     = "https://api.elevenlabs.io"
	elevenLabsModel       = "eleven_monolingual_v1"
	elevenLabsContentType = "audio/mpeg"
	elevenLabsCallTimeout = 30 * time.Second
)

// ElevenLabsService handles text-to-speech via the ElevenLabs API.
type ElevenLabsService struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

// Ensure ElevenLabsService implements TTSService at compile time.
var _ TTSService = (*ElevenLabsService)(nil)

// NewElevenLabsService creates an ElevenLabs TTS service for the given voice.
func NewElevenLabsService(apiKey, voiceID string) *ElevenLabsService {
	return &ElevenLabsService{
		apiKey:  apiKey,
		voiceID: voiceID,
		baseURL: elevenLabsBaseURL,
		client:  &http.Client{Timeout: elevenLabsCallTimeout},
	}
}

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// GenerateSpeech converts text to speech using ElevenLabs.
// Implements the TTSService interface. One attempt only.
func (s *ElevenLabsService) GenerateSpeech(ctx context.Context, text string) (*TTSResponse, error) {
	reqBody := elevenLabsRequest{
		Text:    text,
		ModelID: elevenLabsModel,
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.5,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ElevenLabs request: %w", err)
	}

	// POST /v1/text-to-speech/{voice_id}
	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, s.voiceID)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create ElevenLabs request: %w", err)
	}

	req.Header.Set("Accept", elevenLabsContentType)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	log.Printf("[ElevenLabs] Generating speech (voiceID=%s, model=%s, textLen=%d)",
		s.voiceID, elevenLabsModel, len(text))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Step: StepSynthesis, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{Step: StepSynthesis, StatusCode: resp.StatusCode, Detail: string(body)}
	}

	// Read audio data — the response body IS the audio file
	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Step: StepSynthesis, Detail: fmt.Sprintf("failed to read audio response: %v", err)}
	}

	if len(audioData) == 0 {
		return nil, &UpstreamError{Step: StepSynthesis, StatusCode: resp.StatusCode, Detail: "upstream returned empty audio"}
	}

	log.Printf("[ElevenLabs] Speech generated (%d bytes)", len(audioData))

	return &TTSResponse{
		AudioData:   audioData,
		ContentType: elevenLabsContentType,
	}, nil
}
