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

const (
	// Cartesia API version header value
	cartesiaAPIVersion = "2024-06-10"

	// Default voice used when CARTESIA_VOICE_ID is not configured
	cartesiaDefaultVoiceID = "a0e99841-438c-4a64-b679-ae501e7d6091"

	cartesiaCallTimeout = 30 * time.Second
)

// CartesiaService handles text-to-speech via the Cartesia API. It is the
// alternate provider, used when only a Cartesia key is configured.
type CartesiaService struct {
	apiKey     string
	apiURL     string
	apiVersion string
	voiceID    string
	client     *http.Client
}

// Ensure CartesiaService implements TTSService at compile time.
var _ TTSService = (*CartesiaService)(nil)

// NewCartesiaService creates a Cartesia TTS service. An empty voiceID falls
// back to the package default.
func NewCartesiaService(apiKey, apiURL, voiceID string) *CartesiaService {
	if voiceID == "" {
		voiceID = cartesiaDefaultVoiceID
	}
	return &CartesiaService{
		apiKey:     apiKey,
		apiURL:     apiURL,
		apiVersion: cartesiaAPIVersion,
		voiceID:    voiceID,
		client:     &http.Client{Timeout: cartesiaCallTimeout},
	}
}

// cartesiaRequest matches the Cartesia /tts/bytes API specification.
type cartesiaRequest struct {
	ModelID      string               `json:"model_id"`
	Transcript   string               `json:"transcript"`
	Voice        cartesiaVoiceSpec    `json:"voice"`
	OutputFormat cartesiaOutputFormat `json:"output_format"`
}

type cartesiaVoiceSpec struct {
	Mode string `json:"mode"`
	ID   string `json:"id"`
}

type cartesiaOutputFormat struct {
	Container  string `json:"container"`
	SampleRate int    `json:"sample_rate"`
	BitRate    int    `json:"bit_rate,omitempty"`
}

// GenerateSpeech generates MP3 audio from text using Cartesia.
// Implements the TTSService interface. One attempt only.
func (s *CartesiaService) GenerateSpeech(ctx context.Context, text string) (*TTSResponse, error) {
	reqBody := cartesiaRequest{
		ModelID:    "sonic-english",
		Transcript: text,
		Voice: cartesiaVoiceSpec{
			Mode: "id",
			ID:   s.voiceID,
		},
		OutputFormat: cartesiaOutputFormat{
			Container:  "mp3",
			SampleRate: 44100,
			BitRate:    192000,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Cartesia request: %w", err)
	}

	url := fmt.Sprintf("%s/tts/bytes", s.apiURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create Cartesia request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cartesia-Version", s.apiVersion)

	log.Printf("[Cartesia] Generating speech (voiceID=%s, textLen=%d)", s.voiceID, len(text))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Step: StepSynthesis, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{Step: StepSynthesis, StatusCode: resp.StatusCode, Detail: string(body)}
	}

	audioData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Step: StepSynthesis, Detail: fmt.Sprintf("failed to read audio response: %v", err)}
	}

	if len(audioData) == 0 {
		return nil, &UpstreamError{Step: StepSynthesis, StatusCode: resp.StatusCode, Detail: "upstream returned empty audio"}
	}

	log.Printf("[Cartesia] Speech generated (%d bytes)", len(audioData))

	return &TTSResponse{
		AudioData:   audioData,
		ContentType: "audio/mpeg",
	}, nil
}
