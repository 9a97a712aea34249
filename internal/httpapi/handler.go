package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/sessionml/vmisknn/internal/logging"
	"github.com/sessionml/vmisknn/internal/metrics"
	"github.com/sessionml/vmisknn/internal/sessionstore"
	"github.com/sessionml/vmisknn/internal/vmisknn"
)

// Predictor is the subset of *vmisknn.Engine the handler depends on.
type Predictor interface {
	Predict(ctx context.Context, evolving []vmisknn.ItemID) ([]vmisknn.Recommendation, error)
}

// Handler serves the /v1/recommend endpoint.
type Handler struct {
	engine            Predictor
	sessions          sessionstore.Store
	sessionTTL        time.Duration
	maxItemsInSession int
}

// NewHandler builds a Handler. maxItemsInSession and sessionTTL bound the
// evolving session the same way the offline index bounds training
// sessions (spec.md §4.E / internal/vmisknn.Config.MaxItemsInSession).
func NewHandler(engine Predictor, sessions sessionstore.Store, sessionTTL time.Duration, maxItemsInSession int) *Handler {
	return &Handler{
		engine:            engine,
		sessions:          sessions,
		sessionTTL:        sessionTTL,
		maxItemsInSession: maxItemsInSession,
	}
}

// recommendQuery mirrors the original's V1QueryParams: item_id, session_id,
// user_consent.
type recommendQuery struct {
	itemID      vmisknn.ItemID
	sessionID   string
	userConsent bool
}

func parseRecommendQuery(r *http.Request) (recommendQuery, error) {
	q := r.URL.Query()

	itemIDStr := q.Get("item_id")
	if itemIDStr == "" {
		return recommendQuery{}, errors.New("missing required query parameter: item_id")
	}
	itemID, err := strconv.ParseInt(itemIDStr, 10, 64)
	if err != nil {
		return recommendQuery{}, errors.New("item_id must be an integer")
	}

	sessionID := q.Get("session_id")
	if sessionID == "" {
		return recommendQuery{}, errors.New("missing required query parameter: session_id")
	}

	userConsent := false
	if v := q.Get("user_consent"); v != "" {
		userConsent, err = strconv.ParseBool(v)
		if err != nil {
			return recommendQuery{}, errors.New("user_consent must be a boolean")
		}
	}

	return recommendQuery{itemID: itemID, sessionID: sessionID, userConsent: userConsent}, nil
}

// ServeHTTP handles GET /v1/recommend.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query, err := parseRecommendQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionItems, err := h.resolveSessionItems(r.Context(), query)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to resolve evolving session")
		writeError(w, http.StatusInternalServerError, "failed to resolve session")
		return
	}

	recommendations, err := h.engine.Predict(r.Context(), sessionItems)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("predict failed")
		writeError(w, http.StatusInternalServerError, "failed to compute recommendations")
		return
	}

	items := make([]vmisknn.ItemID, len(recommendations))
	for i, rec := range recommendations {
		items[i] = rec.Item
	}

	writeJSON(w, http.StatusOK, items)
}

// resolveSessionItems reproduces the original's consent-gated session
// growth: without consent, only the just-viewed item is used; with
// consent, the item is appended to the evolving session unless it is
// already the most recent entry (avoids double-counting a repeated view
// of the same item, e.g. a page refresh).
func (h *Handler) resolveSessionItems(ctx context.Context, query recommendQuery) ([]vmisknn.ItemID, error) {
	if !query.userConsent {
		return []vmisknn.ItemID{query.itemID}, nil
	}

	existing, err := h.sessions.Get(ctx, query.sessionID)
	metrics.RecordSessionStoreGet(err == nil)

	if err != nil && !errors.Is(err, sessionstore.ErrNotFound) && !errors.Is(err, sessionstore.ErrExpired) {
		return nil, err
	}

	if err == nil && len(existing.Items) > 0 && existing.Items[len(existing.Items)-1] == query.itemID {
		return existing.Items, nil
	}

	updated, err := h.sessions.Append(ctx, query.sessionID, query.itemID, h.sessionTTL, h.maxItemsInSession)
	if err != nil {
		return nil, err
	}
	return updated.Items, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
