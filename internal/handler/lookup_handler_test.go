package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/octobees/contact-finder/internal/entity"
	"github.com/octobees/contact-finder/internal/service"
)

type stubEnricher struct {
	contact    *entity.Contact
	lookups    []entity.Lookup
	resolveErr error
	historyErr error
	lastEmail  string
	lastLimit  int
}

func (s *stubEnricher) Resolve(ctx context.Context, email string) (*entity.Contact, error) {
	s.lastEmail = email
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	return s.contact, nil
}

func (s *stubEnricher) RecentLookups(ctx context.Context, limit int) ([]entity.Lookup, error) {
	s.lastLimit = limit
	if s.historyErr != nil {
		return nil, s.historyErr
	}
	return s.lookups, nil
}

func postLookup(t *testing.T, h *LookupHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/lookup", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Lookup(c); err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	return rec
}

func TestLookupHandler_Success(t *testing.T) {
	enricher := &stubEnricher{contact: &entity.Contact{
		Email:           "ada@example.com",
		FullName:        "Ada Lovelace",
		ConfidenceScore: 85,
		Social:          entity.SocialLinks{GitHub: "https://github.com/ada"},
	}}
	h := NewLookupHandler(enricher)

	rec := postLookup(t, h, `{"email":"ada@example.com"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if enricher.lastEmail != "ada@example.com" {
		t.Fatalf("unexpected email passed: %q", enricher.lastEmail)
	}

	var payload struct {
		Success bool           `json:"success"`
		Data    entity.Contact `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Success {
		t.Fatalf("expected success envelope, got %s", rec.Body.String())
	}
	if payload.Data.FullName != "Ada Lovelace" || payload.Data.Social.GitHub != "https://github.com/ada" {
		t.Fatalf("unexpected payload: %+v", payload.Data)
	}
}

func TestLookupHandler_MalformedBody(t *testing.T) {
	h := NewLookupHandler(&stubEnricher{})
	rec := postLookup(t, h, `{"email": `)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLookupHandler_InvalidEmail(t *testing.T) {
	h := NewLookupHandler(&stubEnricher{resolveErr: service.ErrInvalidEmail})
	rec := postLookup(t, h, `{"email":"not-an-email"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Error == "" {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestLookupHandler_StoreFailure(t *testing.T) {
	h := NewLookupHandler(&stubEnricher{resolveErr: errors.New("connection refused")})
	rec := postLookup(t, h, `{"email":"ada@example.com"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func getHistory(t *testing.T, h *LookupHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.History(c); err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	return rec
}

func TestLookupHandler_History(t *testing.T) {
	enricher := &stubEnricher{lookups: []entity.Lookup{{EmailQueried: "ada@example.com"}}}
	h := NewLookupHandler(enricher)

	rec := getHistory(t, h, "/history?limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if enricher.lastLimit != 5 {
		t.Fatalf("expected limit 5, got %d", enricher.lastLimit)
	}
}

func TestLookupHandler_HistoryDefaultsAndValidation(t *testing.T) {
	enricher := &stubEnricher{}
	h := NewLookupHandler(enricher)

	rec := getHistory(t, h, "/history")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if enricher.lastLimit != 20 {
		t.Fatalf("expected default limit 20, got %d", enricher.lastLimit)
	}
	// empty result serializes as an array, not null
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty array payload, got %s", rec.Body.String())
	}

	rec = getHistory(t, h, "/history?limit=abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}

	rec = getHistory(t, h, "/history?limit=-1")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative limit, got %d", rec.Code)
	}
}

func TestLookupHandler_HistoryFailure(t *testing.T) {
	h := NewLookupHandler(&stubEnricher{historyErr: errors.New("connection refused")})
	rec := getHistory(t, h, "/history")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
