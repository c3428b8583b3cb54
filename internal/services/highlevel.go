package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// GoHighLevel CRM Service
// Two-step booking flow against the HighLevel REST API:
//   1. POST /contacts/     — create or upsert the contact
//   2. POST /appointments/ — book the slot for that contact
// The contact call must succeed before the appointment call is attempted.
// ---------------------------------------------------------------------------

const (
	highLevelBaseURL     = "https://rest.gohighlevel.com/v1"
	highLevelCallTimeout = 30 * time.Second
)

// Booking is the normalized input to a booking flow.
type Booking struct {
	Name    string
	Phone   string
	Email   string
	StartAt time.Time
}

// BookingService is the interface the booking handler depends on.
type BookingService interface {
	// BookAppointment runs the two-step flow and returns the provider's
	// appointment object verbatim.
	BookAppointment(ctx context.Context, b Booking) (json.RawMessage, error)
}

// HighLevelService implements BookingService against GoHighLevel.
type HighLevelService struct {
	apiKey     string
	locationID string
	calendarID string
	baseURL    string
	client     *http.Client
}

var _ BookingService = (*HighLevelService)(nil)

func NewHighLevelService(apiKey, locationID, calendarID string) *HighLevelService {
	return &HighLevelService{
		apiKey:     apiKey,
		locationID: locationID,
		calendarID: calendarID,
		baseURL:    highLevelBaseURL,
		client:     &http.Client{Timeout: highLevelCallTimeout},
	}
}

type highLevelContactRequest struct {
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	LocationID string `json:"locationId"`
}

// highLevelContactResponse covers both response shapes HighLevel uses:
// a top-level id and a nested contact object.
type highLevelContactResponse struct {
	ID      string `json:"id"`
	Contact struct {
		ID string `json:"id"`
	} `json:"contact"`
}

type highLevelAppointmentRequest struct {
	CalendarID  string `json:"calendarId"`
	ContactID   string `json:"contactId"`
	StartTime   string `json:"startTime"`
	Title       string `json:"title"`
	Description string `json:"description"`
	LocationID  string `json:"locationId"`
}

// BookAppointment upserts the contact, then books the appointment.
// A contact failure short-circuits; the appointment call is never issued.
func (s *HighLevelService) BookAppointment(ctx context.Context, b Booking) (json.RawMessage, error) {
	contactID, err := s.createContact(ctx, b)
	if err != nil {
		return nil, err
	}

	log.Printf("[HighLevel] Contact ready (contactID=%s), booking appointment at %s",
		contactID, b.StartAt.Format(time.RFC3339))

	return s.createAppointment(ctx, b, contactID)
}

func (s *HighLevelService) createContact(ctx context.Context, b Booking) (string, error) {
	firstName, lastName := splitName(b.Name)
	reqBody := highLevelContactRequest{
		Email:      b.Email,
		Phone:      b.Phone,
		FirstName:  firstName,
		LastName:   lastName,
		LocationID: s.locationID,
	}

	body, err := s.post(ctx, StepContact, "/contacts/", reqBody)
	if err != nil {
		return "", err
	}

	var contact highLevelContactResponse
	if err := json.Unmarshal(body, &contact); err != nil {
		return "", &UpstreamError{Step: StepContact, Detail: fmt.Sprintf("unparseable contact response: %v", err)}
	}

	contactID := contact.ID
	if contactID == "" {
		contactID = contact.Contact.ID
	}
	if contactID == "" {
		return "", &UpstreamError{Step: StepContact, Detail: "contact id missing from response"}
	}

	return contactID, nil
}

func (s *HighLevelService) createAppointment(ctx context.Context, b Booking, contactID string) (json.RawMessage, error) {
	reqBody := highLevelAppointmentRequest{
		CalendarID:  s.calendarID,
		ContactID:   contactID,
		StartTime:   b.StartAt.Format(time.RFC3339),
		Title:       fmt.Sprintf("Appointment with %s", b.Name),
		Description: "Appointment booked via voice bot",
		LocationID:  s.locationID,
	}

	return s.post(ctx, StepAppointment, "/appointments/", reqBody)
}

// post issues one authenticated call and returns the raw response body.
// Failures are tagged with the flow step they belong to.
func (s *HighLevelService) post(ctx context.Context, step, path string, payload interface{}) (json.RawMessage, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal HighLevel %s request: %w", step, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create HighLevel %s request: %w", step, err)
	}

	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Step: step, Detail: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Step: step, StatusCode: resp.StatusCode, Detail: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &UpstreamError{Step: step, StatusCode: resp.StatusCode, Detail: string(body)}
	}

	return body, nil
}

// splitName splits a full name on the first space: "Jane Q Doe" becomes
// ("Jane", "Q Doe"); a single-word name gets an empty last name.
func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
