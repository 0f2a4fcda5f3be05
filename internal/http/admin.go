package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DevRanbir/sparkcu-sub000/internal/auth"
	"github.com/DevRanbir/sparkcu-sub000/internal/crypto"
	"github.com/DevRanbir/sparkcu-sub000/internal/model"
)

// Bootstrap credentials for a fresh deployment. The password is expected to
// be changed as soon as the organizers first log in.
const (
	defaultAdminID       = "admin"
	defaultAdminPassword = "cuspark-ideathon"
)

var defaultAdminPermissions = []string{"teams", "faqs", "schedule", "settings"}

type adminLoginRequest struct {
	AdminID  string `json:"adminId"`
	Password string `json:"password"`
}

type adminSessionResponse struct {
	Token       string    `json:"token,omitempty"`
	AdminID     string    `json:"adminId"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	IssuedAt    time.Time `json:"issuedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.AdminID = strings.TrimSpace(req.AdminID)
	if req.AdminID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials")
		return
	}

	admin, err := s.store.GetAdmin(r.Context(), req.AdminID)
	if err != nil {
		if isNoRows(err) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if err := crypto.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}

	now := time.Now().UTC()
	session := model.AdminSession{
		ID:        uuid.NewString(),
		AdminID:   admin.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.AdminSessionTTL),
	}
	token, err := auth.NewAdminToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.AdminSessionTTL, auth.AdminClaims{
		SessionID:   session.ID,
		AdminID:     admin.ID,
		Role:        admin.Role,
		Permissions: admin.Permissions,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	session.TokenHash = crypto.HashToken(token)
	if err := s.store.CreateAdminSession(r.Context(), session); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusOK, adminSessionResponse{
		Token:       token,
		AdminID:     admin.ID,
		Role:        admin.Role,
		Permissions: admin.Permissions,
		IssuedAt:    session.IssuedAt,
		ExpiresAt:   session.ExpiresAt,
	})
}

// handleAdminLogout revokes only the admin session named by the presented
// token. A participant token on the same request stays untouched.
func (s *Server) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r.Context()).Admin
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "missing_token")
		return
	}
	if err := s.store.RevokeAdminSession(r.Context(), claims.SessionID, time.Now().UTC()); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAdminSession is the isValid check: it reports the live session or
// valid=false, never an error, so the client can gate UI on one call.
func (s *Server) handleAdminSession(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r.Context()).Admin
	if claims == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"valid": false})
		return
	}
	session, ok := s.checkAdminSession(r.Context(), claims)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{"valid": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"session": adminSessionResponse{
			AdminID:     claims.AdminID,
			Role:        claims.Role,
			Permissions: claims.Permissions,
			IssuedAt:    session.IssuedAt,
			ExpiresAt:   session.ExpiresAt,
		},
	})
}

type bootstrapResponse struct {
	Status   string `json:"status"`
	AdminID  string `json:"adminId,omitempty"`
	Password string `json:"password,omitempty"`
}

// handleAdminBootstrap creates the default admin account on first call and
// returns its credentials once. Subsequent calls report already_exists and
// leave the stored account untouched.
func (s *Server) handleAdminBootstrap(w http.ResponseWriter, r *http.Request) {
	_, err := s.store.GetAdmin(r.Context(), defaultAdminID)
	if err == nil {
		writeJSON(w, http.StatusOK, bootstrapResponse{Status: "already_exists"})
		return
	}
	if !isNoRows(err) {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	hash, err := crypto.HashPassword(defaultAdminPassword)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	admin := model.AdminAccount{
		ID:           defaultAdminID,
		PasswordHash: hash,
		Role:         "manager",
		Permissions:  defaultAdminPermissions,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateAdmin(r.Context(), admin); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	writeJSON(w, http.StatusCreated, bootstrapResponse{
		Status:   "created",
		AdminID:  defaultAdminID,
		Password: defaultAdminPassword,
	})
}
