package http

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/DevRanbir/sparkcu-sub000/internal/auth"
	"github.com/DevRanbir/sparkcu-sub000/internal/crypto"
	"github.com/DevRanbir/sparkcu-sub000/internal/model"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type registerRequest struct {
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	TeamName     string   `json:"teamName"`
	LeaderName   string   `json:"leaderName"`
	AcademicYear string   `json:"academicYear"`
	Members      []string `json:"members,omitempty"`
}

type participantSummary struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
	TeamName      string `json:"teamName,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.TeamName = strings.TrimSpace(req.TeamName)
	req.LeaderName = strings.TrimSpace(req.LeaderName)
	req.AcademicYear = strings.TrimSpace(req.AcademicYear)
	if req.Email == "" || req.Password == "" || req.TeamName == "" || req.LeaderName == "" || req.AcademicYear == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		writeError(w, http.StatusBadRequest, "invalid_email")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "weak_password")
		return
	}

	// Uniqueness checks run before any write so a duplicate never leaves a
	// partial registration behind.
	if _, err := s.store.GetTeamByName(r.Context(), req.TeamName); err == nil {
		writeError(w, http.StatusConflict, "team_name_taken")
		return
	} else if !isNoRows(err) {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if _, err := s.store.GetParticipantByEmail(r.Context(), req.Email); err == nil {
		writeError(w, http.StatusConflict, "email_taken")
		return
	} else if !isNoRows(err) {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	now := time.Now().UTC()
	participant := model.Participant{
		ID:           uuid.NewString(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	members := req.Members
	if members == nil {
		members = []string{}
	}
	team := model.Team{
		ID:              uuid.NewString(),
		Name:            req.TeamName,
		LeaderID:        participant.ID,
		LeaderName:      req.LeaderName,
		LeaderEmail:     req.Email,
		AcademicYear:    req.AcademicYear,
		Members:         members,
		SubmissionLinks: []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.store.CreateParticipantWithTeam(r.Context(), participant, team); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	s.issueVerificationCode(r.Context(), participant.Email)
	s.notifier.TeamRegistered(team.Name, team.LeaderName, team.AcademicYear)

	writeJSON(w, http.StatusCreated, participantSummary{
		ID:       participant.ID,
		Email:    participant.Email,
		TeamName: team.Name,
	})
}

// issueVerificationCode stores a short-lived code in redis; the mailer that
// delivers it lives outside this service. Without redis the code is only
// logged, which keeps local development working end to end.
func (s *Server) issueVerificationCode(ctx context.Context, email string) {
	code, err := crypto.NewVerificationCode()
	if err != nil {
		log.Printf("verification code error: %v", err)
		return
	}
	if s.redis == nil {
		log.Printf("verification code for %s: %s (redis not configured)", email, code)
		return
	}
	if err := s.redis.Set(ctx, verificationKey(email), code, s.cfg.VerificationTTL).Err(); err != nil {
		log.Printf("verification code store error: %v", err)
	}
}

func verificationKey(email string) string {
	return "verify:" + email
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Code = strings.TrimSpace(req.Code)
	if req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}
	if s.redis == nil {
		writeError(w, http.StatusServiceUnavailable, "verification_unavailable")
		return
	}

	stored, err := s.redis.GetDel(r.Context(), verificationKey(req.Email)).Result()
	if err == redis.Nil {
		writeError(w, http.StatusBadRequest, "invalid_code")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if stored != req.Code {
		writeError(w, http.StatusBadRequest, "invalid_code")
		return
	}

	participant, err := s.store.GetParticipantByEmail(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_code")
		return
	}
	if err := s.store.MarkEmailVerified(r.Context(), participant.ID, time.Now().UTC()); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Persist  string `json:"persist,omitempty"`
}

type loginResponse struct {
	Token       string             `json:"token"`
	Participant participantSummary `json:"participant"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials")
		return
	}

	participant, err := s.store.GetParticipantByEmail(r.Context(), req.Email)
	if err != nil {
		if isNoRows(err) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if err := crypto.CheckPassword(participant.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}

	// Unverified accounts never get a token; the client treats this as an
	// immediate sign-out.
	if !participant.EmailVerified {
		writeError(w, http.StatusForbidden, "not_verified")
		return
	}

	ttl := s.cfg.SessionTokenTTL
	if req.Persist == "local" {
		ttl = s.cfg.PersistTokenTTL
	}
	token, err := auth.NewParticipantToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, ttl, auth.ParticipantClaims{
		ParticipantID: participant.ID,
		Email:         participant.Email,
		EmailVerified: participant.EmailVerified,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	summary := participantSummary{
		ID:            participant.ID,
		Email:         participant.Email,
		EmailVerified: participant.EmailVerified,
	}
	if team, err := s.store.GetTeamByLeader(r.Context(), participant.ID); err == nil {
		summary.TeamName = team.Name
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, Participant: summary})
}

// handleParticipantLogout exists for symmetry with the admin flow. The
// participant token is self-expiring and holds no server-side state, so the
// client discards it; any concurrently held admin session is untouched.
func (s *Server) handleParticipantLogout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r.Context()).Participant

	participant, err := s.store.GetParticipantByID(r.Context(), claims.ParticipantID)
	if err != nil {
		writeError(w, http.StatusNotFound, "invalid_token")
		return
	}

	summary := participantSummary{
		ID:            participant.ID,
		Email:         participant.Email,
		EmailVerified: participant.EmailVerified,
	}
	if team, err := s.store.GetTeamByLeader(r.Context(), participant.ID); err == nil {
		summary.TeamName = team.Name
	}
	writeJSON(w, http.StatusOK, summary)
}
