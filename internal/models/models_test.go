package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestSpeechRequestValidate(t *testing.T) {
	req := SpeechRequest{Text: "Hello"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	for _, text := range []string{"", "   "} {
		req := SpeechRequest{Text: text}
		err := req.Validate()
		if err == nil {
			t.Fatalf("expected error for text %q", text)
		}
		if !strings.Contains(err.Error(), "text") {
			t.Errorf("error should name the text field, got %q", err.Error())
		}
	}
}

func TestBookingRequestValidate(t *testing.T) {
	valid := BookingRequest{
		Name:     "Jane Doe",
		Phone:    "5551234567",
		Email:    "jane@x.com",
		Datetime: "2023-04-25T14:00:00Z",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	req := BookingRequest{Name: "Jane"}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected error for missing fields")
	}
	for _, field := range []string{"phone", "email", "datetime"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error should name %q, got %q", field, err.Error())
		}
	}
	if strings.Contains(err.Error(), "name") {
		t.Errorf("error should not name the present field, got %q", err.Error())
	}
}

func TestBookingRequestStartTime(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// Explicit offset is kept as-is
	req := BookingRequest{Datetime: "2023-04-25T14:00:00Z"}
	got, err := req.StartTime(chicago)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	if !got.Equal(time.Date(2023, 4, 25, 14, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected time %v", got)
	}

	// Offset-less values are localized to the configured zone
	req = BookingRequest{Datetime: "2023-04-25T14:00:00"}
	got, err = req.StartTime(chicago)
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	want := time.Date(2023, 4, 25, 14, 0, 0, 0, chicago)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	req = BookingRequest{Datetime: "not-a-timestamp"}
	_, err = req.StartTime(chicago)
	if err == nil {
		t.Fatal("expected error for invalid datetime")
	}
	if !strings.Contains(err.Error(), "datetime") {
		t.Errorf("error should name the datetime field, got %q", err.Error())
	}
}

func TestBookingResultPassesAppointmentThrough(t *testing.T) {
	raw := json.RawMessage(`{"id":"appt-1","nested":{"weird":["shape"]}}`)
	result := BookingResult{
		Success:     true,
		Message:     "Appointment booked successfully",
		Appointment: raw,
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("failed to marshal result: %v", err)
	}

	var decoded struct {
		Appointment json.RawMessage `json:"appointment"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if string(decoded.Appointment) != string(raw) {
		t.Errorf("appointment was reshaped: %s", decoded.Appointment)
	}
}
