package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/clintbelew/Vappi-voice-bot/internal/models"
	"github.com/clintbelew/Vappi-voice-bot/internal/services"
)

type Handler struct {
	tts      services.TTSService
	crm      services.BookingService
	timezone *time.Location
}

// NewHandler wires the upstream adapters into the HTTP layer. timezone is
// applied to booking datetimes that carry no UTC offset.
func NewHandler(tts services.TTSService, crm services.BookingService, timezone *time.Location) *Handler {
	return &Handler{
		tts:      tts,
		crm:      crm,
		timezone: timezone,
	}
}

// Health handles GET /health. It never touches an upstream.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "voice-bot-backend",
	})
}

// GenerateVoice handles POST /voice: validate, one synthesis call, stream
// the MP3 bytes back.
func (h *Handler) GenerateVoice(w http.ResponseWriter, r *http.Request) {
	var req models.SpeechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		log.Printf("[voice] request %s rejected: %v", GetRequestID(r.Context()), err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.tts.GenerateSpeech(r.Context(), req.Text)
	if err != nil {
		log.Printf("[voice] request %s failed: %v", GetRequestID(r.Context()), err)
		respondError(w, upstreamStatus(err), "Failed to generate voice: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", resp.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename=voice.mp3`)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.AudioData)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp.AudioData)
}

// BookAppointment handles POST /book: validate, contact upsert, appointment
// booking. The CRM's appointment object is forwarded verbatim.
func (h *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req models.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		log.Printf("[book] request %s rejected: %v", GetRequestID(r.Context()), err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	startAt, err := req.StartTime(h.timezone)
	if err != nil {
		log.Printf("[book] request %s rejected: %v", GetRequestID(r.Context()), err)
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	log.Printf("[book] request %s: booking for %s at %s",
		GetRequestID(r.Context()), req.Name, startAt.Format(time.RFC3339))

	appointment, err := h.crm.BookAppointment(r.Context(), services.Booking{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		StartAt: startAt,
	})
	if err != nil {
		log.Printf("[book] request %s failed: %v", GetRequestID(r.Context()), err)
		respondJSON(w, upstreamStatus(err), models.BookingResult{
			Success: false,
			Message: "Failed to book appointment: " + err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, models.BookingResult{
		Success:       true,
		Message:       "Appointment booked successfully",
		ScheduledTime: startAt.Format(time.RFC3339),
		Appointment:   appointment,
	})
}

// upstreamStatus maps adapter failures to 502; anything else that escapes an
// adapter uninterpreted is a plain 500.
func upstreamStatus(err error) int {
	var ue *services.UpstreamError
	if errors.As(err, &ue) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
