package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/octobees/contact-finder/internal/dto"
	"github.com/octobees/contact-finder/internal/entity"
	"github.com/octobees/contact-finder/internal/service"
)

// EnrichmentService is the orchestration surface the HTTP layer depends on.
type EnrichmentService interface {
	Resolve(ctx context.Context, email string) (*entity.Contact, error)
	RecentLookups(ctx context.Context, limit int) ([]entity.Lookup, error)
}

// LookupHandler exposes contact enrichment over HTTP.
type LookupHandler struct {
	enricher EnrichmentService
}

// NewLookupHandler wires the lookup handler.
func NewLookupHandler(enricher EnrichmentService) *LookupHandler {
	return &LookupHandler{enricher: enricher}
}

// Lookup handles POST /lookup. Invalid input is a 400, a store fault is a
// 500; resolver misses never surface as errors.
func (h *LookupHandler) Lookup(c echo.Context) error {
	var req dto.LookupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failure("invalid request body"))
	}

	contact, err := h.enricher.Resolve(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			return c.JSON(http.StatusBadRequest, failure("invalid email address"))
		}
		log.Printf("lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("contact lookup failed"))
	}

	return c.JSON(http.StatusOK, success(contact))
}

// History handles GET /history. limit defaults to 20 and caps at 100.
func (h *LookupHandler) History(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, failure("limit must be a positive integer"))
		}
		limit = parsed
	}

	lookups, err := h.enricher.RecentLookups(c.Request().Context(), limit)
	if err != nil {
		log.Printf("history listing failed: %v", err)
		return c.JSON(http.StatusInternalServerError, failure("history listing failed"))
	}
	if lookups == nil {
		lookups = []entity.Lookup{}
	}

	return c.JSON(http.StatusOK, success(lookups))
}
