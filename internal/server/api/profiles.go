// Package api provides HTTP API handlers for the mudra input daemon.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/joystick"
	"github.com/ayusman/mudra/internal/store"
)

// ProfileHandler handles HTTP requests for profile resources.
type ProfileHandler struct {
	store *store.Store
}

// NewProfileHandler creates a new ProfileHandler with the given store.
func NewProfileHandler(s *store.Store) *ProfileHandler {
	return &ProfileHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/profiles or /api/profiles/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/profiles")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type stickPayload struct {
	OriginX  float64 `json:"originX"`
	OriginY  float64 `json:"originY"`
	Radius   float64 `json:"radius"`
	Deadzone float64 `json:"deadzone"`
}

func (p stickPayload) toConfig() joystick.Config {
	return joystick.Config{
		OriginX:  p.OriginX,
		OriginY:  p.OriginY,
		Radius:   p.Radius,
		Deadzone: p.Deadzone,
	}
}

func fromConfig(c joystick.Config) stickPayload {
	return stickPayload{
		OriginX:  c.OriginX,
		OriginY:  c.OriginY,
		Radius:   c.Radius,
		Deadzone: c.Deadzone,
	}
}

type profileRequest struct {
	Name      string       `json:"name"`
	Threshold float64      `json:"threshold"`
	Left      stickPayload `json:"left"`
	Right     stickPayload `json:"right"`
}

type profileResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Threshold float64      `json:"threshold"`
	Left      stickPayload `json:"left"`
	Right     stickPayload `json:"right"`
	CreatedAt string       `json:"created_at"`
	UpdatedAt string       `json:"updated_at"`
}

type listProfilesResponse struct {
	Profiles []profileResponse `json:"profiles"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Profile to a profileResponse.
func toResponse(p *store.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		Name:      p.Name,
		Threshold: p.Threshold,
		Left:      fromConfig(p.Left),
		Right:     fromConfig(p.Right),
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// validate checks a profile request's value ranges.
func (req *profileRequest) validate() string {
	if req.Name == "" {
		return "name is required"
	}
	if req.Threshold <= 0 || req.Threshold >= 1 {
		return "threshold must be in (0, 1)"
	}
	for _, s := range []stickPayload{req.Left, req.Right} {
		if s.Radius <= 0 {
			return "radius must be positive"
		}
		if s.Deadzone < 0 || s.Deadzone >= 1 {
			return "deadzone must be in [0, 1)"
		}
	}
	return ""
}

// list handles GET /api/profiles.
func (h *ProfileHandler) list(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.Profiles().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list profiles")
		return
	}

	resp := listProfilesResponse{Profiles: make([]profileResponse, 0, len(profiles))}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, toResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

// create handles POST /api/profiles.
func (h *ProfileHandler) create(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p := &store.Profile{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Threshold: req.Threshold,
		Left:      req.Left.toConfig(),
		Right:     req.Right.toConfig(),
	}

	if err := h.store.Profiles().Create(p); err != nil {
		writeError(w, http.StatusConflict, "failed to create profile")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(p))
}

// get handles GET /api/profiles/{id}.
func (h *ProfileHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.store.Profiles().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(p))
}

// update handles PUT /api/profiles/{id}.
func (h *ProfileHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p := &store.Profile{
		ID:        id,
		Name:      req.Name,
		Threshold: req.Threshold,
		Left:      req.Left.toConfig(),
		Right:     req.Right.toConfig(),
	}

	if err := h.store.Profiles().Update(p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(p))
}

// delete handles DELETE /api/profiles/{id}.
func (h *ProfileHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Profiles().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
