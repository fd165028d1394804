package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	icommon "github.com/goran-ethernal/ChainActivity/internal/common"
	"github.com/goran-ethernal/ChainActivity/internal/logger"
	"github.com/goran-ethernal/ChainActivity/internal/metrics"
	"github.com/goran-ethernal/ChainActivity/pkg/store"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// Handler handles HTTP requests for the API.
type Handler struct {
	store store.Store
	log   *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, log *logger.Logger) *Handler {
	return &Handler{store: s, log: log}
}

// ListEvents returns every stored event row, newest first.
// @Summary List events
// @Description Event rows of every user ordered by block time, newest first
// @Tags Events
// @Produce json
// @Param limit query int false "Maximum number of rows" default(100)
// @Param offset query int false "Number of rows to skip" default(0)
// @Success 200 {object} EventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.store.ListAllEvents(r.Context(), peek(page))
	if err != nil {
		h.internalError(w, "list events", err)
		return
	}

	rows, more := trim(rows, page.Limit)
	respondJSON(w, http.StatusOK, EventsResponse{Events: rows, Pagination: pagination(page, more)})
}

// ListUsers returns users, most recently created first.
// @Summary List users
// @Tags Users
// @Produce json
// @Param limit query int false "Maximum number of users" default(100)
// @Param offset query int false "Number of users to skip" default(0)
// @Success 200 {object} UsersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	users, err := h.store.ListUsersPaginated(r.Context(), peek(page))
	if err != nil {
		h.internalError(w, "list users", err)
		return
	}

	users, more := trim(users, page.Limit)
	respondJSON(w, http.StatusOK, UsersResponse{Users: users, Pagination: pagination(page, more)})
}

// GetUser returns the aggregate counters of one address.
// @Summary Get a user
// @Tags Users
// @Produce json
// @Param address path string true "User address"
// @Success 200 {object} store.UserRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{address} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	address, ok := pathAddress(w, r)
	if !ok {
		return
	}

	user, err := h.store.GetUser(r.Context(), address)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, fmt.Sprintf("user %s not found", address.Hex()))
			return
		}
		h.internalError(w, "get user", err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// ListUserEvents returns the events attributed to one address, newest first.
// @Summary List events of a user
// @Tags Users
// @Produce json
// @Param address path string true "User address"
// @Param limit query int false "Maximum number of rows" default(100)
// @Param offset query int false "Number of rows to skip" default(0)
// @Success 200 {object} EventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /users/{address}/events [get]
func (h *Handler) ListUserEvents(w http.ResponseWriter, r *http.Request) {
	address, ok := pathAddress(w, r)
	if !ok {
		return
	}

	page, err := parsePage(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.store.ListEventsByUser(r.Context(), address, peek(page))
	if err != nil {
		h.internalError(w, "list user events", err)
		return
	}

	rows, more := trim(rows, page.Limit)
	respondJSON(w, http.StatusOK, EventsResponse{Events: rows, Pagination: pagination(page, more)})
}

// Summary returns store wide totals.
// @Summary Store summary
// @Tags Stats
// @Produce json
// @Success 200 {object} store.Summary
// @Failure 500 {object} ErrorResponse
// @Router /summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.store.Summary(r.Context())
	if err != nil {
		h.internalError(w, "summary", err)
		return
	}

	respondJSON(w, http.StatusOK, sum)
}

// Health reports whether the store answers queries.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Timestamp: time.Now().UTC(), Store: true}

	sum, err := h.store.Summary(r.Context())
	metrics.ComponentHealthSet(icommon.ComponentStore, err == nil)
	if err != nil {
		h.log.Warnw("health check failed", "error", err)
		resp.Status, resp.Store = "degraded", false
		respondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	resp.LastBlock = sum.LastBlock
	respondJSON(w, http.StatusOK, resp)
}

func (h *Handler) internalError(w http.ResponseWriter, op string, err error) {
	h.log.Errorw("query failed", "op", op, "error", err)
	respondError(w, http.StatusInternalServerError, "failed to "+op)
}

func pathAddress(w http.ResponseWriter, r *http.Request) (common.Address, bool) {
	raw := r.PathValue("address")
	if !common.IsHexAddress(raw) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid address %q", raw))
		return common.Address{}, false
	}
	return common.HexToAddress(raw), true
}

// parsePage reads limit and offset, limit defaults to 100 and is capped at 1000.
func parsePage(r *http.Request) (store.Page, error) {
	page := store.Page{Limit: defaultLimit}
	q := r.URL.Query()

	if s := q.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit < 1 || limit > maxLimit {
			return page, fmt.Errorf("invalid limit: must be between 1 and %d", maxLimit)
		}
		page.Limit = limit
	}

	if s := q.Get("offset"); s != "" {
		offset, err := strconv.Atoi(s)
		if err != nil || offset < 0 {
			return page, errors.New("invalid offset: must be non-negative")
		}
		page.Offset = offset
	}

	return page, nil
}

// peek asks for one extra row to learn whether another page exists.
func peek(p store.Page) store.Page {
	return store.Page{Limit: p.Limit + 1, Offset: p.Offset}
}

func trim[T any](rows []T, limit int) ([]T, bool) {
	if len(rows) > limit {
		return rows[:limit], true
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, false
}

func pagination(p store.Page, more bool) PaginationResult {
	return PaginationResult{Limit: p.Limit, Offset: p.Offset, HasMore: more}
}

// respondJSON encodes data before writing the status so encoding failures still produce a 500.
func respondJSON(w http.ResponseWriter, status int, data any) {
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(encoded)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}
