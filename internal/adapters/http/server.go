package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"seopilot/internal/dashboard"
	"seopilot/internal/domain"
	"seopilot/internal/ports"
	"seopilot/internal/services/connections"
	"seopilot/internal/services/scanner"
	"seopilot/internal/workers/scanrunner"
)

// Server exposes the dashboard API over chi.
type Server struct {
	connections ports.Connections
	scanner     ports.Scanner
	requests    ports.Requests
	runner      scanrunner.Runner
}

func New(conns ports.Connections, scans ports.Scanner, reqs ports.Requests, runner scanrunner.Runner) *Server {
	return &Server{connections: conns, scanner: scans, requests: reqs, runner: runner}
}

// Routes returns a chi.Router with all handlers mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Route("/connections", func(r chi.Router) {
		r.Get("/", s.handleListConnections)
		r.Get("/{id}/health", s.handleConnectionHealth)
		r.Post("/{id}/scan", s.handleScanNow)
		r.Post("/bulk/scan", s.handleBulkScan)
		r.Post("/bulk/delete", s.handleBulkDelete)
	})
	r.Post("/connection-requests", s.handleConnectionRequest)
	r.Get("/scans/{id}", s.handleScanStatus)
	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// viewStateFromQuery builds a ViewState from the dashboard's query params.
// Unknown sort keys and view modes fall back to the defaults; the derive
// pipeline itself never errors on user input.
func viewStateFromQuery(r *http.Request) dashboard.ViewState {
	q := r.URL.Query()
	snapshot := []domain.Connection(nil)
	state := dashboard.NewViewState()
	if v := q.Get("q"); v != "" {
		state = dashboard.Reduce(state, snapshot, dashboard.SetQuery(v))
	}
	if v := q.Get("platform"); v != "" {
		state = dashboard.Reduce(state, snapshot, dashboard.SetPlatform(v))
	}
	if v := q.Get("health"); v != "" {
		state = dashboard.Reduce(state, snapshot, dashboard.SetHealth(v))
	}
	if v := q.Get("sort"); v != "" {
		state = dashboard.Reduce(state, snapshot, dashboard.SetSort(v))
	}
	if v := q.Get("view"); v != "" {
		state = dashboard.Reduce(state, snapshot, dashboard.SetMode(v))
	}
	return state
}

type connectionJSON struct {
	ID             string     `json:"id"`
	Platform       string     `json:"platform"`
	Domain         string     `json:"domain"`
	DisplayName    *string    `json:"displayName,omitempty"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	LastSync       *time.Time `json:"lastSync,omitempty"`
	HealthScore    int        `json:"healthScore"`
	HealthCategory string     `json:"healthCategory"`
	IssueCount     int        `json:"issueCount"`
	FixCount       int        `json:"fixCount"`
	Selected       bool       `json:"selected"`
}

type dashboardJSON struct {
	Items []connectionJSON `json:"items"`
	Count int              `json:"count"`
	Total int              `json:"total"`
	Mode  string           `json:"mode"`
}

func (s *Server) handleListConnections(w http.ResponseWriter, r *http.Request) {
	view, err := s.connections.Dashboard(r.Context(), viewStateFromQuery(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	out := dashboardJSON{
		Items: make([]connectionJSON, len(view.Items)),
		Count: len(view.Items),
		Total: view.Total,
		Mode:  string(view.Mode),
	}
	for i, item := range view.Items {
		out.Items[i] = connectionJSON{
			ID:             item.ID,
			Platform:       string(item.Platform),
			Domain:         item.Connection.Domain,
			DisplayName:    item.DisplayName,
			Name:           item.Name(),
			Status:         string(item.Status),
			LastSync:       item.LastSync,
			HealthScore:    item.Score,
			HealthCategory: string(item.Category),
			IssueCount:     item.IssueCount,
			FixCount:       item.FixCount,
			Selected:       item.Selected,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleConnectionHealth(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	score, category, err := s.connections.Health(r.Context(), id)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       id,
		"score":    score,
		"category": string(category),
	})
}

type connectionRequestJSON struct {
	Platform  string `json:"platform"`
	StoreURL  string `json:"storeUrl"`
	StoreName string `json:"storeName"`
	Message   string `json:"message"`
}

func (s *Server) handleConnectionRequest(w http.ResponseWriter, r *http.Request) {
	var body connectionRequestJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	id, err := s.requests.Submit(r.Context(), domain.ConnectionRequest{
		Platform:  domain.Platform(body.Platform),
		StoreURL:  body.StoreURL,
		StoreName: body.StoreName,
		Message:   body.Message,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type bulkJSON struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleBulkScan(w http.ResponseWriter, r *http.Request) {
	var body bulkJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if len(body.IDs) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no connections selected"))
		return
	}
	scanIDs, err := s.scanner.EnqueueAll(r.Context(), body.IDs)
	if err != nil {
		// Report how far the batch got alongside the failure.
		writeJSON(w, statusForError(err), map[string]any{
			"error":   err.Error(),
			"scanIds": scanIDs,
		})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"scanIds": scanIDs})
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var body bulkJSON
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	deleted, err := s.connections.BulkDelete(r.Context(), body.IDs)
	if err != nil {
		if errors.Is(err, connections.ErrEmptySelection) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// handleScanNow enqueues a scan for one connection. With ?wait=true the scan
// is processed inline before responding, applying an optional ?timeout in
// seconds.
func (s *Server) handleScanNow(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	scanID, err := s.scanner.Enqueue(r.Context(), id)
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	if r.URL.Query().Get("wait") != "true" {
		writeJSON(w, http.StatusAccepted, map[string]string{"scanId": scanID})
		return
	}

	timeout := 30 * time.Second
	if v := r.URL.Query().Get("timeout"); v != "" {
		if d, err := time.ParseDuration(v + "s"); err == nil && d > 0 {
			timeout = d
		}
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()
	if err := s.runner.ProcessInline(ctx, scanID); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	status, progress, err := s.scanner.Status(ctx, scanID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"scanId":   scanID,
		"status":   status,
		"progress": progress,
	})
}

func (s *Server) handleScanStatus(w http.ResponseWriter, r *http.Request) {
	status, progress, err := s.scanner.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusForError(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       chi.URLParam(r, "id"),
		"status":   status,
		"progress": progress,
	})
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, scanner.ErrUnknownConnection):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// writeError renders the {"error": ...} body clients rely on for non-2xx
// responses. The message is surfaced verbatim, never swallowed.
func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
