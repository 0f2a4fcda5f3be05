package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/DevRanbir/sparkcu-sub000/internal/model"
	"github.com/DevRanbir/sparkcu-sub000/internal/repository"
)

type teamSummary struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	LeaderName      string   `json:"leaderName"`
	LeaderEmail     string   `json:"leaderEmail"`
	AcademicYear    string   `json:"academicYear"`
	TopicName       string   `json:"topicName"`
	Members         []string `json:"members"`
	SubmissionLinks []string `json:"submissionLinks"`
	Score           *int     `json:"score,omitempty"`
	Notification    *string  `json:"notification,omitempty"`
	CreatedAt       int64    `json:"createdAt"`
}

func mapTeam(team model.Team) teamSummary {
	return teamSummary{
		ID:              team.ID,
		Name:            team.Name,
		LeaderName:      team.LeaderName,
		LeaderEmail:     team.LeaderEmail,
		AcademicYear:    team.AcademicYear,
		TopicName:       team.TopicName,
		Members:         team.Members,
		SubmissionLinks: team.SubmissionLinks,
		Score:           team.Score,
		Notification:    team.Notification,
		CreatedAt:       team.CreatedAt.Unix(),
	}
}

// handleCheckTeamName is the pre-registration uniqueness probe used by the
// registration wizard before it attempts any write.
func (s *Server) handleCheckTeamName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	_, err := s.store.GetTeamByName(r.Context(), name)
	if err == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"available": false})
		return
	}
	if !isNoRows(err) {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": true})
}

func (s *Server) handleGetMyTeam(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r.Context()).Participant

	team, err := s.store.GetTeamByLeader(r.Context(), claims.ParticipantID)
	if err != nil {
		if isNoRows(err) {
			writeError(w, http.StatusNotFound, "team_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapTeam(team))
}

type patchMyTeamRequest struct {
	TopicName       *string   `json:"topicName,omitempty"`
	SubmissionLinks *[]string `json:"submissionLinks,omitempty"`
}

func (s *Server) handlePatchMyTeam(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r.Context()).Participant

	var req patchMyTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.TopicName == nil && req.SubmissionLinks == nil {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	if req.TopicName != nil {
		topic := strings.TrimSpace(*req.TopicName)
		req.TopicName = &topic
	}

	team, err := s.store.UpdateTeamSubmission(r.Context(), claims.ParticipantID, repository.TeamSubmissionUpdate{
		TopicName:       req.TopicName,
		SubmissionLinks: req.SubmissionLinks,
	}, time.Now().UTC())
	if err != nil {
		if isNoRows(err) {
			writeError(w, http.StatusNotFound, "team_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapTeam(team))
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	teams, err := s.store.ListTeams(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]teamSummary, 0, len(teams))
	for _, team := range teams {
		resp = append(resp, mapTeam(team))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	team, err := s.store.GetTeamByID(r.Context(), teamID)
	if err != nil {
		if isNoRows(err) {
			writeError(w, http.StatusNotFound, "team_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapTeam(team))
}

type reviewTeamRequest struct {
	Score        *int    `json:"score,omitempty"`
	Notification *string `json:"notification,omitempty"`
}

func (s *Server) handleReviewTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	var req reviewTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Score == nil && req.Notification == nil {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	team, err := s.store.UpdateTeamReview(r.Context(), teamID, repository.TeamReviewUpdate{
		Score:        req.Score,
		Notification: req.Notification,
	}, time.Now().UTC())
	if err != nil {
		if isNoRows(err) {
			writeError(w, http.StatusNotFound, "team_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapTeam(team))
}
