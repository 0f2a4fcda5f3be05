package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/DevRanbir/sparkcu-sub000/internal/access"
	"github.com/DevRanbir/sparkcu-sub000/internal/model"
)

const visibilitySettingKey = "page_visibility"

// loadVisibility fetches the policy map. Any failure, including a missing
// row, degrades to the empty map: pages fall back to their defaults rather
// than locking visitors out.
func (s *Server) loadVisibility(ctx context.Context) access.Visibility {
	raw, err := s.store.GetSetting(ctx, visibilitySettingKey)
	if err != nil {
		return access.Visibility{}
	}
	var stored map[access.PageKey]bool
	if err := json.Unmarshal(raw, &stored); err != nil {
		return access.Visibility{}
	}
	return access.Visibility(stored)
}

func (s *Server) handleGetVisibility(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.loadVisibility(r.Context()))
}

func (s *Server) handlePutVisibility(w http.ResponseWriter, r *http.Request) {
	var req map[access.PageKey]bool
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	for key := range req {
		if !access.KnownPage(key) {
			writeError(w, http.StatusBadRequest, "invalid_page_key")
			return
		}
	}

	raw, err := json.Marshal(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if err := s.store.UpsertSetting(r.Context(), visibilitySettingKey, raw, time.Now().UTC()); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, access.Visibility(req))
}

type guardResponse struct {
	Action string `json:"action"`
	Page   string `json:"page,omitempty"`
}

// handleGuard is the route guard endpoint: the client asks where a path
// resolves given whatever credentials accompany the request. The decision is
// total, so this never fails for a well-formed request.
func (s *Server) handleGuard(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "missing_path")
		return
	}

	id := identityFromContext(r.Context())
	pair := access.Identity{}
	if id.Participant != nil {
		pair.ParticipantID = id.Participant.ParticipantID
	}
	if id.Admin != nil {
		pair.AdminID = id.Admin.AdminID
	}

	decision := access.Decide(path, pair, s.loadVisibility(r.Context()))
	writeJSON(w, http.StatusOK, guardResponse{
		Action: string(decision.Action),
		Page:   string(decision.Page),
	})
}

type scheduleEntryPayload struct {
	Title    string     `json:"title"`
	Detail   string     `json:"detail,omitempty"`
	StartsAt time.Time  `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt,omitempty"`
}

func (s *Server) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListSchedule(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]scheduleEntryPayload, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, scheduleEntryPayload{
			Title:    entry.Title,
			Detail:   entry.Detail,
			StartsAt: entry.StartsAt,
			EndsAt:   entry.EndsAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePutSchedule(w http.ResponseWriter, r *http.Request) {
	var req []scheduleEntryPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	for _, entry := range req {
		if entry.Title == "" || entry.StartsAt.IsZero() {
			writeError(w, http.StatusBadRequest, "missing_fields")
			return
		}
	}

	entries := make([]model.ScheduleEntry, 0, len(req))
	for position, entry := range req {
		entries = append(entries, model.ScheduleEntry{
			ID:       uuid.NewString(),
			Position: position,
			Title:    entry.Title,
			Detail:   entry.Detail,
			StartsAt: entry.StartsAt,
			EndsAt:   entry.EndsAt,
		})
	}

	if err := s.store.ReplaceSchedule(r.Context(), entries); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": len(entries)})
}
