package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// SpeechRequest is the body of POST /voice.
type SpeechRequest struct {
	Text string `json:"text"`
}

// Validate rejects empty or whitespace-only text.
func (r *SpeechRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("missing 'text' field")
	}
	return nil
}

// BookingRequest is the body of POST /book. All four fields are required.
type BookingRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Datetime string `json:"datetime"`
}

// Validate reports every missing field in one message.
func (r *BookingRequest) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(r.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(r.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(r.Datetime) == "" {
		missing = append(missing, "datetime")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing field(s): %s", strings.Join(missing, ", "))
	}
	return nil
}

// datetimeLayouts are the accepted shapes for BookingRequest.Datetime.
// RFC 3339 carries its own offset; the bare layout is interpreted in loc.
var datetimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// StartTime parses Datetime as an ISO-8601 timestamp. A value with an
// explicit UTC offset is used as-is; an offset-less value is localized to loc.
func (r *BookingRequest) StartTime(loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, r.Datetime); err == nil {
		return t, nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, r.Datetime, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid 'datetime' value %q: expected an ISO-8601 timestamp", r.Datetime)
}

// BookingResult is the body of a POST /book response. Appointment is the CRM
// provider's appointment object forwarded verbatim — this service never
// interprets its contents.
type BookingResult struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	ScheduledTime string          `json:"scheduled_time,omitempty"`
	Appointment   json.RawMessage `json:"appointment,omitempty"`
}
