package catalog

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Handler exposes organization and course administration over HTTP.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with organization and course endpoints.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasSuffix(r.URL.Path, "/organizations/update"):
		h.updateOrganization(w, r)
	case strings.HasSuffix(r.URL.Path, "/organizations/delete"):
		h.deleteOrganization(w, r)
	case strings.HasSuffix(r.URL.Path, "/organizations"):
		h.organizations(w, r)
	case strings.HasSuffix(r.URL.Path, "/courses/instructor"):
		h.reassignInstructor(w, r)
	case strings.HasSuffix(r.URL.Path, "/courses/delete"):
		h.deleteCourse(w, r)
	case strings.HasSuffix(r.URL.Path, "/courses"):
		h.courses(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) organizations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		orgs, err := h.service.ListOrganizations(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, orgs)
	case http.MethodPost:
		var payload struct {
			Name         string `json:"name"`
			ContactEmail string `json:"contactEmail"`
			Description  string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		org, err := h.service.CreateOrganization(r.Context(), payload.Name, payload.ContactEmail, payload.Description)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, org)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) updateOrganization(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		ContactEmail string `json:"contactEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(payload.ID))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid organization id: %v", err), http.StatusBadRequest)
		return
	}

	org, err := h.service.UpdateOrganization(r.Context(), id, payload.Name, payload.ContactEmail)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, org)
}

func (h *Handler) deleteOrganization(w http.ResponseWriter, r *http.Request) {
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
		http.Error(w, fmt.Sprintf("invalid organization id: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteOrganization(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) courses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		orgID, err := uuid.Parse(strings.TrimSpace(r.URL.Query().Get("organizationId")))
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid organization id: %v", err), http.StatusBadRequest)
			return
		}

		courses, err := h.service.ListCourses(r.Context(), orgID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, courses)
	case http.MethodPost:
		var payload struct {
			OrganizationID string `json:"organizationId"`
			Name           string `json:"name"`
			Location       string `json:"location"`
			Instructor     string `json:"instructor"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
			return
		}

		orgID, err := uuid.Parse(strings.TrimSpace(payload.OrganizationID))
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid organization id: %v", err), http.StatusBadRequest)
			return
		}

		course, err := h.service.CreateCourse(r.Context(), orgID, payload.Name, payload.Location, payload.Instructor)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, course)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) reassignInstructor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		CourseID   string `json:"courseId"`
		Instructor string `json:"instructor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	courseID, err := uuid.Parse(strings.TrimSpace(payload.CourseID))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid course id: %v", err), http.StatusBadRequest)
		return
	}

	course, err := h.service.ReassignInstructor(r.Context(), courseID, payload.Instructor)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, course)
}

func (h *Handler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		CourseID string `json:"courseId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	courseID, err := uuid.Parse(strings.TrimSpace(payload.CourseID))
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid course id: %v", err), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteCourse(r.Context(), courseID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
