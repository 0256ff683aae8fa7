// Garderobe - Wardrobe Outfit Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/garderobe

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/garderobe/internal/engine"
	"github.com/tomtom215/garderobe/internal/feedback"
	"github.com/tomtom215/garderobe/internal/logging"
	"github.com/tomtom215/garderobe/internal/metrics"
	"github.com/tomtom215/garderobe/internal/models"
	"github.com/tomtom215/garderobe/internal/validation"
	"github.com/tomtom215/garderobe/internal/wardrobe"
)

// maxBodyBytes caps request bodies at 1 MB.
const maxBodyBytes = 1 << 20

// WeatherSource supplies current conditions for generation requests.
type WeatherSource interface {
	Snapshot(ctx context.Context) models.WeatherSnapshot
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	engine   *engine.Engine
	wardrobe *wardrobe.Store
	feedback *feedback.Store
	weather  WeatherSource
	maxItems int
	log      zerolog.Logger
}

// NewHandler creates the handler set.
func NewHandler(eng *engine.Engine, ws *wardrobe.Store, fs *feedback.Store, wp WeatherSource, maxItems int, log zerolog.Logger) *Handler {
	if maxItems <= 0 {
		maxItems = 5000
	}
	return &Handler{
		engine:   eng,
		wardrobe: ws,
		feedback: fs,
		weather:  wp,
		maxItems: maxItems,
		log:      log.With().Str("component", "api").Logger(),
	}
}

// recommendRequest is the body of POST /api/v1/outfits/recommend.
type recommendRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	Occasion      string `json:"occasion" validate:"required,occasion"`
	Style         string `json:"style,omitempty"`
	Mood          string `json:"mood,omitempty"`
	FitPreference string `json:"fit_preference,omitempty"`
	Season        string `json:"season,omitempty" validate:"omitempty,season"`
	AnchorItemID  string `json:"anchor_item_id,omitempty"`
	Seed          int64  `json:"seed,omitempty"`
}

// Recommend composes an outfit for the requesting user.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	ctx := r.Context()
	start := time.Now()

	var req recommendRequest
	if !h.decodeBody(rw, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	items, err := h.wardrobe.List(ctx, req.UserID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	if len(items) > h.maxItems {
		rw.Error(http.StatusBadRequest, ErrCodeTooManyItems, "wardrobe exceeds the maximum item count")
		return
	}

	// Feedback is advisory; a read failure degrades to no signal.
	signal, err := h.feedback.Signal(ctx, req.UserID)
	if err != nil {
		logger := logging.Ctx(ctx)
		logger.Warn().Err(err).Msg("feedback signal unavailable, proceeding without")
		signal = nil
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	gc := models.GenerationContext{
		UserID:        req.UserID,
		Occasion:      models.Occasion(req.Occasion),
		Style:         req.Style,
		Mood:          req.Mood,
		FitPreference: req.FitPreference,
		Season:        req.Season,
		Weather:       h.weather.Snapshot(ctx),
		Wardrobe:      items,
		Feedback:      signal,
		AnchorItemID:  req.AnchorItemID,
		RequestedAt:   start.UTC(),
		Seed:          seed,
		RequestID:     logging.RequestIDFromContext(ctx),
	}

	result, err := h.engine.Generate(ctx, gc)
	if err != nil {
		var unsat *engine.UnsatisfiableRequestError
		if errors.As(err, &unsat) {
			metrics.RecordGeneration(req.Occasion, "unsatisfiable", time.Since(start))
			rw.ErrorWithDetails(http.StatusUnprocessableEntity, ErrCodeUnsatisfiable,
				"no valid outfit could be composed",
				map[string]interface{}{"violations": unsat.Violations})
			return
		}
		metrics.RecordGeneration(req.Occasion, "error", time.Since(start))
		rw.InternalError(err)
		return
	}

	outcome := "ok"
	if result.Fallback {
		outcome = "fallback"
	}
	metrics.RecordGeneration(req.Occasion, outcome, time.Since(start))
	metrics.RecordStrategy(result.Outfit.Strategy, "won")
	for name := range result.Metadata.StrategyFailures {
		metrics.RecordStrategy(name, "failed")
	}

	rw.Success(result)
}

// feedbackRequest is the body of POST /api/v1/feedback.
type feedbackRequest struct {
	UserID    string    `json:"user_id" validate:"required"`
	ItemIDs   []string  `json:"item_ids" validate:"required,min=1"`
	Type      string    `json:"type" validate:"required,oneof=disliked dismissed liked worn"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// RecordFeedback stores one outfit interaction.
func (h *Handler) RecordFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req feedbackRequest
	if !h.decodeBody(rw, r, &req) {
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		rw.ErrorWithDetails(http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return
	}

	interaction := models.Interaction{
		UserID:    req.UserID,
		ItemIDs:   req.ItemIDs,
		Type:      models.ParseInteractionType(req.Type),
		Timestamp: req.Timestamp,
	}
	if err := h.feedback.Record(r.Context(), &interaction); err != nil {
		rw.InternalError(err)
		return
	}

	rw.Created(interaction)
}

// ListFeedback returns a user's recorded interactions.
func (h *Handler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		rw.BadRequest("user_id query parameter is required")
		return
	}

	interactions, err := h.feedback.Interactions(r.Context(), userID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	if interactions == nil {
		interactions = []models.Interaction{}
	}

	rw.Success(map[string]interface{}{
		"interactions": interactions,
		"count":        len(interactions),
	})
}

// ListItems returns a user's full wardrobe.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		rw.BadRequest("user_id query parameter is required")
		return
	}

	items, err := h.wardrobe.List(r.Context(), userID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	if items == nil {
		items = []models.GarmentItem{}
	}

	rw.Success(map[string]interface{}{
		"items": items,
		"count": len(items),
	})
}

// CreateItem adds a garment to the user's wardrobe.
func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		rw.BadRequest("user_id query parameter is required")
		return
	}

	var item models.GarmentItem
	if !h.decodeBody(rw, r, &item) {
		return
	}
	if !item.Category.Valid() {
		rw.Error(http.StatusBadRequest, ErrCodeValidation, "category must be a valid garment category")
		return
	}
	if item.Name == "" {
		rw.Error(http.StatusBadRequest, ErrCodeValidation, "name is required")
		return
	}

	count, err := h.wardrobe.Count(r.Context(), userID)
	if err != nil {
		rw.InternalError(err)
		return
	}
	if count >= h.maxItems {
		rw.Error(http.StatusBadRequest, ErrCodeTooManyItems, "wardrobe exceeds the maximum item count")
		return
	}

	// New garments always get a server-assigned ID.
	item.ID = ""
	if err := h.wardrobe.Put(r.Context(), userID, &item); err != nil {
		rw.InternalError(err)
		return
	}

	rw.Created(item)
}

// GetItem fetches one garment by ID.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		rw.BadRequest("user_id query parameter is required")
		return
	}

	item, err := h.wardrobe.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if errors.Is(err, wardrobe.ErrItemNotFound) {
		rw.NotFound("garment item not found")
		return
	}
	if err != nil {
		rw.InternalError(err)
		return
	}

	rw.Success(item)
}

// UpdateItem replaces one garment by ID.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		rw.BadRequest("user_id query parameter is required")
		return
	}
	itemID := chi.URLParam(r, "id")

	if _, err := h.wardrobe.Get(r.Context(), userID, itemID); err != nil {
		if errors.Is(err, wardrobe.ErrItemNotFound) {
			rw.NotFound("garment item not found")
			return
		}
		rw.InternalError(err)
		return
	}

	var item models.GarmentItem
	if !h.decodeBody(rw, r, &item) {
		return
	}
	if !item.Category.Valid() {
		rw.Error(http.StatusBadRequest, ErrCodeValidation, "category must be a valid garment category")
		return
	}

	item.ID = itemID
	if err := h.wardrobe.Put(r.Context(), userID, &item); err != nil {
		rw.InternalError(err)
		return
	}

	rw.Success(item)
}

// DeleteItem removes one garment by ID. Deleting an absent garment succeeds.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		rw.BadRequest("user_id query parameter is required")
		return
	}

	if err := h.wardrobe.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		rw.InternalError(err)
		return
	}

	rw.NoContent()
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// decodeBody decodes a JSON request body, writing a 400 response and
// returning false on failure.
func (h *Handler) decodeBody(rw *ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
