package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/rosterhq/roster/internal/api"
)

// emailPattern is a pragmatic format check: one @, non-empty local part,
// and a dotted domain. Full RFC 5322 parsing is out of scope for a demo.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// handleHealthz reports process liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListUsers returns the whole collection ordered by id.
//
// Response: 200 with a JSON array.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		respondDetail(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if users == nil {
		users = []api.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

// handleGetUser returns a single user.
//
// Response: 200, or 404 if the id is unknown.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		s.respondStoreError(w, err, id)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// handleCreateUser creates a new user from a draft. The server assigns the
// id.
//
// Response: 201 with the created record, 422 on an invalid draft.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	user, err := s.store.CreateUser(r.Context(), draft)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create user")
		respondDetail(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	s.logger.Info().Int64("id", user.ID).Msg("user created")
	respondJSON(w, http.StatusCreated, user)
}

// handleUpdateUser replaces the editable fields of an existing user.
//
// Response: 200 with the updated record, 404 if the id is unknown, 422 on
// an invalid draft.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	user, err := s.store.UpdateUser(r.Context(), id, draft)
	if err != nil {
		s.respondStoreError(w, err, id)
		return
	}
	s.logger.Info().Int64("id", id).Msg("user updated")
	respondJSON(w, http.StatusOK, user)
}

// handleDeleteUser removes a user.
//
// Response: 204 with an empty body, or 404 if the id is unknown.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		s.respondStoreError(w, err, id)
		return
	}
	s.logger.Info().Int64("id", id).Msg("user deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) respondStoreError(w http.ResponseWriter, err error, id int64) {
	if errors.Is(err, ErrNotFound) {
		respondDetail(w, http.StatusNotFound, "User not found")
		return
	}
	s.logger.Error().Err(err).Int64("id", id).Msg("store error")
	respondDetail(w, http.StatusInternalServerError, "an unexpected error occurred")
}

// decodeDraft parses and validates the request body. On failure it writes
// a 422 and reports false.
func decodeDraft(w http.ResponseWriter, r *http.Request) (api.Draft, bool) {
	var draft api.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondDetail(w, http.StatusUnprocessableEntity, "invalid request body")
		return api.Draft{}, false
	}
	if msg := validateDraft(draft); msg != "" {
		respondDetail(w, http.StatusUnprocessableEntity, msg)
		return api.Draft{}, false
	}
	return draft, true
}

func validateDraft(draft api.Draft) string {
	if strings.TrimSpace(draft.Name) == "" {
		return "name must not be empty"
	}
	email := strings.TrimSpace(draft.Email)
	if email == "" {
		return "email must not be empty"
	}
	if !emailPattern.MatchString(email) {
		return "email is not a valid email address"
	}
	return ""
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		respondDetail(w, http.StatusUnprocessableEntity, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondDetail writes a FastAPI-style {"detail": "..."} failure body.
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}
