package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/charliek/logview/internal/constants"
	"github.com/charliek/logview/internal/domain"
	"github.com/charliek/logview/internal/listener"
	"github.com/charliek/logview/internal/store"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	store    *store.Store
	listener *listener.Listener
}

// NewHandlers creates new HTTP handlers
func NewHandlers(st *store.Store, l *listener.Listener) *Handlers {
	return &Handlers{store: st, listener: l}
}

// GetStatus handles GET /api/v1/status
func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	var stats listener.Stats
	if h.listener != nil {
		stats = h.listener.Stats()
	}
	writeJSON(w, http.StatusOK, ToStatusResponse(h.store.RowCount(), stats))
}

// GetLogs handles GET /api/v1/logs?pattern=&limit=
// The pattern is the same case-sensitive substring match on msg the
// viewer applies.
func (h *Handlers) GetLogs(w http.ResponseWriter, r *http.Request) {
	pattern := r.URL.Query().Get("pattern")

	limit := constants.DefaultLogLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeErrorMessage(w, http.StatusBadRequest, "invalid limit value", "INVALID_LIMIT")
			return
		}
		if n > constants.MaxLogLines {
			n = constants.MaxLogLines
		}
		limit = n
	}

	records := h.store.Records()
	total := len(records)

	matched := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if pattern == "" || strings.Contains(rec.Msg, pattern) {
			matched = append(matched, rec)
		}
	}
	filtered := len(matched)

	// Return the most recent matches
	if len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}

	resp := LogsResponse{
		Logs:          make([]RecordResponse, len(matched)),
		FilteredCount: filtered,
		TotalCount:    total,
	}
	for i, rec := range matched {
		resp.Logs[i] = ToRecordResponse(rec)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetField handles GET /api/v1/records/{row}/{field}, exposing the
// store's single-cell accessor.
func (h *Handlers) GetField(w http.ResponseWriter, r *http.Request) {
	row, err := strconv.Atoi(chi.URLParam(r, "row"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid row index", domain.ErrCodeRowRange)
		return
	}
	field := chi.URLParam(r, "field")

	value, err := h.store.Field(row, field)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FieldResponse{Row: row, Field: field, Value: value})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// writeError writes an error response for a domain error
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	switch {
	case errors.Is(err, domain.ErrRowRange):
		status = http.StatusBadRequest
		code = domain.ErrCodeRowRange
		message = err.Error()
	case errors.Is(err, domain.ErrUnknownField):
		status = http.StatusBadRequest
		code = domain.ErrCodeUnknownField
		message = err.Error()
	default:
		// Log the actual error but return a sanitized message to avoid
		// leaking internals
		log.Printf("Internal error: %v", err)
	}

	writeErrorMessage(w, status, message, code)
}

func writeErrorMessage(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}
