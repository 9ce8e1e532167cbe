package teams

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/opencert/certhub/internal/domain"
	"github.com/opencert/certhub/internal/repository"

	"github.com/google/uuid"
)

// Handler exposes team administration over HTTP. The acting member is
// resolved from the X-Actor-Email header; authentication itself is an
// upstream concern.
type Handler struct {
	service *Service
	members repository.MemberRepository
}

// NewHTTPHandler wraps the service with member list, add, role-change, and
// promote endpoints.
func NewHTTPHandler(service *Service, members repository.MemberRepository) http.Handler {
	return &Handler{service: service, members: members}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/members/role"):
		h.changeRole(w, r)
	case strings.HasSuffix(r.URL.Path, "/members/promote"):
		h.promote(w, r)
	case strings.HasSuffix(r.URL.Path, "/members/remove"):
		h.remove(w, r)
	case strings.HasSuffix(r.URL.Path, "/members"):
		h.membersEndpoint(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) membersEndpoint(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.add(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	members, err := h.service.List(r.Context(), actor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, members)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	var payload struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	member, err := h.service.AddMember(r.Context(), actor, payload.Name, payload.Email, domain.Role(payload.Role))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		MemberID string `json:"memberId"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	memberID, err := uuid.Parse(strings.TrimSpace(payload.MemberID))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid member id: %v", err), http.StatusBadRequest)
		return
	}

	member, err := h.service.ChangeRole(r.Context(), actor, memberID, domain.Role(payload.Role))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) promote(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		MemberID string `json:"memberId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	memberID, err := uuid.Parse(strings.TrimSpace(payload.MemberID))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid member id: %v", err), http.StatusBadRequest)
		return
	}

	member, err := h.service.Promote(r.Context(), actor, memberID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		MemberID string `json:"memberId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	memberID, err := uuid.Parse(strings.TrimSpace(payload.MemberID))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid member id: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.service.RemoveMember(r.Context(), actor, memberID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (domain.TeamMember, bool) {
	email := strings.TrimSpace(r.Header.Get("X-Actor-Email"))
	if email == "" {
		http.Error(w, "X-Actor-Email header is required", http.StatusUnauthorized)
		return domain.TeamMember{}, false
	}

	orgID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("organizationId")))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid organization id: %v", err), http.StatusBadRequest)
		return domain.TeamMember{}, false
	}

	actor, err := h.members.GetByEmail(r.Context(), orgID, email)
	if err != nil {
		http.Error(w, "unknown actor", http.StatusUnauthorized)
		return domain.TeamMember{}, false
	}

	return actor, true
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
