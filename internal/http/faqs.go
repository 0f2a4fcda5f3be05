package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/DevRanbir/sparkcu-sub000/internal/model"
	"github.com/DevRanbir/sparkcu-sub000/internal/repository"
)

type faqSummary struct {
	ID              string  `json:"id"`
	Question        string  `json:"question"`
	Answer          *string `json:"answer,omitempty"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	Mine            bool    `json:"mine,omitempty"`
	CreatedAt       int64   `json:"createdAt"`
}

func mapFAQ(item model.FAQItem, viewerID string) faqSummary {
	summary := faqSummary{
		ID:        item.ID,
		Question:  item.Question,
		Answer:    item.Answer,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt.Unix(),
	}
	if item.Status == model.FAQRejected {
		summary.RejectionReason = item.RejectionReason
	}
	if viewerID != "" && item.AuthorID != nil && *item.AuthorID == viewerID {
		summary.Mine = true
	}
	return summary
}

type createFAQRequest struct {
	Question string `json:"question"`
}

// handleCreateFAQ accepts questions from anyone, logged in or not. An empty
// question is rejected before the store is touched.
func (s *Server) handleCreateFAQ(w http.ResponseWriter, r *http.Request) {
	var req createFAQRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "missing_question")
		return
	}

	now := time.Now().UTC()
	item := model.FAQItem{
		ID:        uuid.NewString(),
		Question:  req.Question,
		Status:    model.FAQPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if claims := identityFromContext(r.Context()).Participant; claims != nil {
		authorID := claims.ParticipantID
		item.AuthorID = &authorID
	}

	if err := s.store.CreateFAQ(r.Context(), item); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	viewerID := ""
	if item.AuthorID != nil {
		viewerID = *item.AuthorID
	}
	writeJSON(w, http.StatusCreated, mapFAQ(item, viewerID))
}

// handleListFAQs serves the public board. Non-admin viewers only ever see
// approved entries; admins may filter by any status or see everything.
func (s *Server) handleListFAQs(w http.ResponseWriter, r *http.Request) {
	id := identityFromContext(r.Context())

	limit := 200
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	filter := repository.FAQFilter{
		Query:  strings.TrimSpace(r.URL.Query().Get("q")),
		Oldest: r.URL.Query().Get("sort") == "oldest",
	}
	if id.Admin != nil {
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" && raw != "all" {
			status, ok := parseFAQStatus(raw)
			if !ok {
				writeError(w, http.StatusBadRequest, "invalid_status")
				return
			}
			filter.Status = &status
		}
	} else {
		approved := model.FAQApproved
		filter.Status = &approved
	}

	items, err := s.store.ListFAQs(r.Context(), filter, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	viewerID := ""
	if id.Participant != nil {
		viewerID = id.Participant.ParticipantID
	}
	resp := make([]faqSummary, 0, len(items))
	for _, item := range items {
		resp = append(resp, mapFAQ(item, viewerID))
	}
	writeJSON(w, http.StatusOK, resp)
}

type reviewFAQRequest struct {
	Answer          *string `json:"answer,omitempty"`
	Status          *string `json:"status,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
}

func (s *Server) handleReviewFAQ(w http.ResponseWriter, r *http.Request) {
	faqID := chi.URLParam(r, "faqID")
	if faqID == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	var req reviewFAQRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Answer == nil && req.Status == nil && req.RejectionReason == nil {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	update := repository.FAQReviewUpdate{
		Answer:          req.Answer,
		RejectionReason: req.RejectionReason,
	}
	if req.Status != nil {
		status, ok := parseFAQStatus(*req.Status)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid_status")
			return
		}
		update.Status = &status
	}

	item, err := s.store.UpdateFAQReview(r.Context(), faqID, update, time.Now().UTC())
	if err != nil {
		if isNoRows(err) {
			writeError(w, http.StatusNotFound, "faq_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapFAQ(item, ""))
}

// handleDeleteFAQ lets a question's author withdraw it, but only while it is
// still pending or was rejected. Approved questions are part of the board.
func (s *Server) handleDeleteFAQ(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r.Context()).Participant
	faqID := chi.URLParam(r, "faqID")
	if faqID == "" {
		writeError(w, http.StatusBadRequest, "missing_fields")
		return
	}

	item, err := s.store.GetFAQ(r.Context(), faqID)
	if err != nil {
		if isNoRows(err) {
			writeError(w, http.StatusNotFound, "faq_not_found")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if item.AuthorID == nil || *item.AuthorID != claims.ParticipantID {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}
	if item.Status != model.FAQPending && item.Status != model.FAQRejected {
		writeError(w, http.StatusConflict, "faq_not_deletable")
		return
	}

	deleted, err := s.store.DeleteFAQ(r.Context(), faqID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "faq_not_found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func parseFAQStatus(raw string) (model.FAQStatus, bool) {
	switch model.FAQStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case model.FAQPending:
		return model.FAQPending, true
	case model.FAQApproved:
		return model.FAQApproved, true
	case model.FAQRejected:
		return model.FAQRejected, true
	default:
		return "", false
	}
}
