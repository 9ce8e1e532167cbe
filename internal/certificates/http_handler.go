package certificates

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Handler exposes certificate queries over HTTP.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with list, export, and revoke endpoints.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/export"):
		h.export(w, r)
	case strings.HasSuffix(r.URL.Path, "/revoke"):
		h.revoke(w, r)
	case strings.HasSuffix(r.URL.Path, "/verify"):
		h.verify(w, r)
	default:
		h.list(w, r)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("organizationId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid organization id: %v", err), http.StatusBadRequest)
		return
	}

	var courseID *uuid.UUID
	if raw := strings.TrimSpace(r.URL.Query().Get("courseId")); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid course id: %v", err), http.StatusBadRequest)
			return
		}
		courseID = &parsed
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	certificates, err := h.service.List(r.Context(), orgID, courseID, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	total, err := h.service.Count(r.Context(), orgID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))

	writeJSON(w, http.StatusOK, certificates)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	verification, err := h.service.Verify(r.Context(), r.URL.Query().Get("number"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, verification)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("organizationId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid organization id: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="certificates.csv"`)

	if err := h.service.ExportCSV(r.Context(), w, orgID); err != nil {
		// Headers may already be out; log-and-abort is all that is left.
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) revoke(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(payload.ID))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid certificate id: %v", err), http.StatusBadRequest)
		return
	}

	cert, err := h.service.Revoke(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, cert)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
