package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/DevRanbir/sparkcu-sub000/internal/auth"
	"github.com/DevRanbir/sparkcu-sub000/internal/config"
	"github.com/DevRanbir/sparkcu-sub000/internal/model"
	"github.com/DevRanbir/sparkcu-sub000/internal/notify"
	"github.com/DevRanbir/sparkcu-sub000/internal/repository"
)

type Server struct {
	cfg      config.Config
	store    *repository.Store
	redis    *redis.Client
	notifier *notify.Discord
}

func NewServer(cfg config.Config, store *repository.Store, redisClient *redis.Client, notifier *notify.Discord) *Server {
	return &Server{
		cfg:      cfg,
		store:    store,
		redis:    redisClient,
		notifier: notifier,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.sessionResolver)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/verify", s.handleVerify)
	r.Post("/auth/login", s.handleLogin)
	r.Post("/auth/logout", s.handleParticipantLogout)
	r.With(s.requireParticipant).Get("/auth/me", s.handleGetMe)

	r.Get("/guard", s.handleGuard)

	r.Get("/settings/visibility", s.handleGetVisibility)
	r.With(s.requireAdmin).Put("/settings/visibility", s.handlePutVisibility)

	r.Route("/teams", func(r chi.Router) {
		r.Get("/check", s.handleCheckTeamName)
		r.With(s.requireParticipant).Get("/me", s.handleGetMyTeam)
		r.With(s.requireParticipant).Patch("/me", s.handlePatchMyTeam)
		r.With(s.requireAdmin).Get("/", s.handleListTeams)
		r.With(s.requireAdmin).Get("/{teamID}", s.handleGetTeam)
		r.With(s.requireAdmin).Patch("/{teamID}", s.handleReviewTeam)
	})

	r.Route("/faqs", func(r chi.Router) {
		r.Get("/", s.handleListFAQs)
		r.Post("/", s.handleCreateFAQ)
		r.With(s.requireAdmin).Patch("/{faqID}", s.handleReviewFAQ)
		r.With(s.requireParticipant).Delete("/{faqID}", s.handleDeleteFAQ)
	})

	r.Get("/schedule", s.handleGetSchedule)
	r.With(s.requireAdmin).Put("/schedule", s.handlePutSchedule)

	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", s.handleAdminLogin)
		r.Post("/logout", s.handleAdminLogout)
		r.Get("/session", s.handleAdminSession)
		r.Post("/bootstrap", s.handleAdminBootstrap)
	})

	return r
}

// identity is the session resolver's output: the pair of independent identity
// types. Both sides may be populated at once; callers that need a precedence
// rule treat the admin side as authoritative.
type identity struct {
	Participant *auth.ParticipantClaims
	Admin       *auth.AdminClaims
}

type identityKey struct{}

// sessionResolver resolves both identity types on every request, wholesale.
// The participant side is a self-contained bearer token. The admin side is
// re-validated against its server-side session row so a logout or expiry is
// honored immediately; an expired row is deleted the first time it is seen.
// Tokens that fail to parse, including anything left over from older clients,
// are silently discarded rather than surfaced as errors.
func (s *Server) sessionResolver(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id identity

		if token := bearerToken(r.Header.Get("Authorization")); token != "" {
			if claims, err := auth.ParseParticipantToken(s.cfg.JWTSecret, token); err == nil {
				id.Participant = claims
			}
		}

		if token := strings.TrimSpace(r.Header.Get("X-Admin-Token")); token != "" {
			if claims, err := auth.ParseAdminToken(s.cfg.JWTSecret, token); err == nil {
				if _, ok := s.checkAdminSession(r.Context(), claims); ok {
					id.Admin = claims
				}
			}
		}

		ctx := context.WithValue(r.Context(), identityKey{}, &id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) checkAdminSession(ctx context.Context, claims *auth.AdminClaims) (model.AdminSession, bool) {
	session, err := s.store.GetAdminSession(ctx, claims.SessionID)
	if err != nil {
		return model.AdminSession{}, false
	}
	if session.RevokedAt != nil {
		return model.AdminSession{}, false
	}
	if session.ExpiresAt.Before(time.Now().UTC()) {
		_ = s.store.DeleteAdminSession(ctx, session.ID)
		return model.AdminSession{}, false
	}
	return session, true
}

func identityFromContext(ctx context.Context) *identity {
	value := ctx.Value(identityKey{})
	id, _ := value.(*identity)
	if id == nil {
		return &identity{}
	}
	return id
}

func (s *Server) requireParticipant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identityFromContext(r.Context()).Participant == nil {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identityFromContext(r.Context()).Admin == nil {
			writeError(w, http.StatusForbidden, "admin_only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code, "message": messageFor(code)})
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
