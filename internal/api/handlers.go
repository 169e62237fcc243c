package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/export"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/lead"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/progress"
	"github.com/RayyanAliShah/InstaReach-Lead-Generation-Backend/internal/publisher"
)

const defaultSearchLimit = 10

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type saveLeadsRequest struct {
	UserEmail string      `json:"user_email"`
	Category  string      `json:"category"`
	Leads     []lead.Lead `json:"leads"`
}

type categoryRequest struct {
	UserEmail string `json:"user_email"`
	Category  string `json:"category"`
}

type ownerRequest struct {
	UserEmail string `json:"user_email"`
}

type leadIDRequest struct {
	LeadID string `json:"lead_id"`
}

type deleteBulkRequest struct {
	LeadIDs []string `json:"lead_ids"`
}

type updateNoteRequest struct {
	LeadID string `json:"lead_id"`
	Note   string `json:"note"`
}

type updateStatusRequest struct {
	LeadID    string `json:"lead_id"`
	NewStatus string `json:"new_status"`
}

type exportRequest struct {
	UserEmail string `json:"user_email"`
	Category  string `json:"category"`
	Format    string `json:"format"`
}

// search streams run progress as NDJSON. Each line is one event and
// the stream always ends with a complete event.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	owner := r.URL.Query().Get("user_email")
	if query == "" || owner == "" {
		writeError(s.logger, w, http.StatusBadRequest, "query and user_email are required")
		return
	}
	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(s.logger, w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(s.logger, w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	var final *progress.Event
	for evt := range s.runner.Run(r.Context(), query, owner, limit) {
		line, err := evt.NDJSON()
		if err != nil {
			s.logger.Error("encode stream event", zap.Error(err))
			continue
		}
		if _, err := w.Write(line); err != nil {
			s.logger.Debug("stream consumer gone", zap.Error(err))
			return
		}
		flusher.Flush()
		if evt.Status == progress.StatusComplete {
			final = &evt
		}
	}

	if final != nil {
		s.notifyRunCompleted(r.Context(), owner, query, len(final.Data))
	}
}

func (s *Server) notifyRunCompleted(ctx context.Context, owner, query string, leads int) {
	if s.pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	_, err := s.pub.Publish(ctx, s.cfg.PubSub.TopicName, publisher.RunCompleted{
		Owner:       owner,
		Query:       query,
		Leads:       leads,
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("publish run notification failed", zap.Error(err))
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(s.logger, w, http.StatusBadRequest, "invalid JSON")
		return
	}
	password, ok := s.users[req.Email]
	if !ok || password != req.Password {
		writeError(s.logger, w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Welcome back!",
	})
}

func (s *Server) saveLeads(w http.ResponseWriter, r *http.Request) {
	var req saveLeadsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(s.logger, w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.UserEmail == "" || req.Category == "" {
		writeError(s.logger, w, http.StatusBadRequest, "user_email and category are required")
		return
	}
	saved, duplicates, err := s.store.InsertLeads(r.Context(), req.UserEmail, req.Category, req.Leads)
	if err != nil {
		writeError(s.logger, w, http.StatusInternalServerError, "failed to save leads")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, map[string]int{
		"saved":      saved,
		"duplicates": duplicates,
	})
}

func (s *Server) fetchCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(s.logger, w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Category == "" {
		req.Category = lead.CategoryAll
	}
	leads, err := s.store.FindLeads(r.Context(), req.UserEmail, req.Category)
	if err != nil {
		writeError(s.logger, w, http.StatusInternalServerError, "failed to fetch leads")
		return
	}
	if leads == nil {
		leads = []lead.Lead{}
	}
	writeJSON(s.logger, w, http.StatusOK, leads)
}

func (s *Server) dashboardStats(w http.ResponseWriter, r *http.Request) {
	var req ownerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(s.logger, w, http.StatusBadRequest, "invalid JSON")
		return
	}
	stats, err := s.store.Stats(r.Context(), req.UserEmail)
	if err != nil {
		writeError(s.logger, w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, stats)
}

func (s *Server) deleteLead(w http.ResponseWriter, r *http.Request) {
	var req leadIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LeadID == "" {
		writeError(s.logger, w, http.StatusBadRequest, "lead_id is required")
		return
	}
	if err := s.store.DeleteLead(r.Context(), req.LeadID); err != nil {
		if errors.Is(err, lead.ErrNotFound) {
			writeError(s.logger, w, http.StatusNotFound, "lead not found")
			return
		}
		writeError(s.logger, w, http.StatusInternalServerError, "failed to delete lead")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) deleteBulk(w http.ResponseWriter, r *http.Request) {
	var req deleteBulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.LeadIDs) == 0 {
		writeError(s.logger, w, http.StatusBadRequest, "lead_ids is required")
		return
	}
	if err := s.store.DeleteLeads(r.Context(), req.LeadIDs); err != nil {
		writeError(s.logger, w, http.StatusInternalServerError, "failed to delete leads")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Category == "" {
		writeError(s.logger, w, http.StatusBadRequest, "category is required")
		return
	}
	count, err := s.store.DeleteCategory(r.Context(), req.UserEmail, req.Category)
	if err != nil {
		writeError(s.logger, w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, map[string]int{"deleted_count": count})
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LeadID == "" {
		writeError(s.logger, w, http.StatusBadRequest, "lead_id is required")
		return
	}
	if err := s.store.UpdateNote(r.Context(), req.LeadID, req.Note); err != nil {
		if errors.Is(err, lead.ErrNotFound) {
			writeError(s.logger, w, http.StatusNotFound, "lead not found")
			return
		}
		writeError(s.logger, w, http.StatusInternalServerError, "failed to update note")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LeadID == "" || req.NewStatus == "" {
		writeError(s.logger, w, http.StatusBadRequest, "lead_id and new_status are required")
		return
	}
	if err := s.store.UpdateStatus(r.Context(), req.LeadID, req.NewStatus); err != nil {
		if errors.Is(err, lead.ErrNotFound) {
			writeError(s.logger, w, http.StatusNotFound, "lead not found")
			return
		}
		writeError(s.logger, w, http.StatusInternalServerError, "failed to update status")
		return
	}
	writeJSON(s.logger, w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) exportLeads(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(s.logger, w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Category == "" {
		req.Category = lead.CategoryAll
	}
	format := export.Format(req.Format)
	if format == "" {
		format = export.FormatCSV
	}
	if format != export.FormatCSV && format != export.FormatXLSX {
		writeError(s.logger, w, http.StatusBadRequest, "format must be csv or xlsx")
		return
	}

	leads, err := s.store.FindLeads(r.Context(), req.UserEmail, req.Category)
	if err != nil {
		writeError(s.logger, w, http.StatusInternalServerError, "failed to fetch leads")
		return
	}

	switch format {
	case export.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=leads.csv")
		err = export.WriteCSV(w, leads)
	case export.FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename=leads.xlsx")
		err = export.WriteXLSX(w, leads)
	}
	if err != nil {
		s.logger.Error("export failed", zap.Error(err), zap.String("format", string(format)))
	}
}
