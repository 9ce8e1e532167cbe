package roster

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/opencert/certhub/internal/auth"
	"github.com/opencert/certhub/internal/repository"

	"github.com/google/uuid"
)

// Handler exposes roster upload processing as HTTP endpoints. The acting
// member is resolved from the X-Actor-Email header; authentication itself is
// an upstream concern.
type Handler struct {
	service *Service
	members repository.MemberRepository
}

// NewHTTPHandler wraps the service with preview, submit, and logs endpoints.
func NewHTTPHandler(service *Service, members repository.MemberRepository) http.Handler {
	return &Handler{service: service, members: members}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/preview"):
		h.preview(w, r)
	case strings.HasSuffix(r.URL.Path, "/submit"):
		h.submit(w, r)
	case strings.HasSuffix(r.URL.Path, "/logs"):
		h.logs(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	req, ok := h.uploadRequest(w, r)
	if !ok {
		return
	}
	ctx, ok := h.actorContext(w, r, req.OrganizationID)
	if !ok {
		return
	}

	batch, err := h.service.Preview(ctx, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, batch)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	req, ok := h.uploadRequest(w, r)
	if !ok {
		return
	}
	ctx, ok := h.actorContext(w, r, req.OrganizationID)
	if !ok {
		return
	}

	result, err := h.service.Submit(ctx, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) logs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orgID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("organizationId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid organization id: %v", err), http.StatusBadRequest)
		return
	}
	courseID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("courseId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid course id: %v", err), http.StatusBadRequest)
		return
	}

	ctx, ok := h.actorContext(w, r, orgID)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	logs, err := h.service.Logs(ctx, orgID, courseID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}

// actorContext resolves the acting member within the requested organization
// and returns a context carrying their role and organization scope.
func (h *Handler) actorContext(w http.ResponseWriter, r *http.Request, orgID uuid.UUID) (context.Context, bool) {
	email := strings.TrimSpace(r.Header.Get("X-Actor-Email"))
	if email == "" {
		http.Error(w, "X-Actor-Email header is required", http.StatusUnauthorized)
		return nil, false
	}

	actor, err := h.members.GetByEmail(r.Context(), orgID, email)
	if err != nil {
		http.Error(w, "unknown actor", http.StatusUnauthorized)
		return nil, false
	}

	ctx := auth.ContextWithOrganizationID(r.Context(), actor.OrganizationID)
	ctx = auth.ContextWithRole(ctx, actor.Role)
	return ctx, true
}

func (h *Handler) uploadRequest(w http.ResponseWriter, r *http.Request) (UploadRequest, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return UploadRequest{}, false
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
		return UploadRequest{}, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
		return UploadRequest{}, false
	}
	defer file.Close()

	orgID, err := uuid.Parse(strings.TrimSpace(r.FormValue("organizationId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid organization id: %v", err), http.StatusBadRequest)
		return UploadRequest{}, false
	}

	courseID, err := uuid.Parse(strings.TrimSpace(r.FormValue("courseId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid course id: %v", err), http.StatusBadRequest)
		return UploadRequest{}, false
	}

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusBadRequest)
		return UploadRequest{}, false
	}

	return UploadRequest{
		OrganizationID: orgID,
		CourseID:       courseID,
		IssueDate:      strings.TrimSpace(r.FormValue("issueDate")),
		FileName:       header.Filename,
		Data:           bytes.NewReader(data),
	}, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrForbidden) {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
