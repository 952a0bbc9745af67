package audit

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tapcard/internal/domain"
	"tapcard/internal/platform/core"
)

const pageSize = 20

type Dependencies interface {
	CurrentAccount(r *http.Request) (domain.Account, error)
	ListAuditLogs(ctx context.Context, limit, offset int) ([]domain.AuditLog, error)
	CountAuditLogs(ctx context.Context) (int, error)
}

type Handler struct {
	deps Dependencies
}

// NewHandler constructs a new handler.
func NewHandler(deps Dependencies) Handler {
	return Handler{deps: deps}
}

// List serves a page of audit entries as JSON.
func (h Handler) List(w http.ResponseWriter, r *http.Request) {
	if _, err := h.deps.CurrentAccount(r); err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	page := 1
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	logs, err := h.deps.ListAuditLogs(r.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		core.WriteJSONError(w, http.StatusInternalServerError, "failed to load audit log")
		return
	}
	total, err := h.deps.CountAuditLogs(r.Context())
	if err != nil {
		core.WriteJSONError(w, http.StatusInternalServerError, "failed to load audit log")
		return
	}
	core.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"page":    page,
		"total":   total,
		"entries": logs,
	})
}

// Download exports audit logs as CSV, JSON, or text, scoped by the request query.
func (h Handler) Download(w http.ResponseWriter, r *http.Request) {
	if _, err := h.deps.CurrentAccount(r); err != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	scope := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("scope")))
	if format == "" {
		format = "csv"
	}
	if scope == "" {
		scope = "page"
	}

	var logs []domain.AuditLog
	var err error
	if scope == "all" {
		total, countErr := h.deps.CountAuditLogs(r.Context())
		if countErr != nil {
			http.Error(w, "Failed to load audit log", http.StatusInternalServerError)
			return
		}
		logs, err = h.deps.ListAuditLogs(r.Context(), total, 0)
	} else {
		page := 1
		if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
			page = p
		}
		logs, err = h.deps.ListAuditLogs(r.Context(), pageSize, (page-1)*pageSize)
	}
	if err != nil {
		http.Error(w, "Failed to load audit log", http.StatusInternalServerError)
		return
	}

	filename := "audit-log"
	if scope == "all" {
		filename += "-all"
	} else {
		filename += "-page"
	}
	filename += "." + format

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		_ = json.NewEncoder(w).Encode(logs)
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		for _, entry := range logs {
			target := entry.Target
			if target == "" {
				target = "n/a"
			}
			fmt.Fprintf(
				w,
				"%s | %s | by %s | object %s | log #%d\n",
				entry.CreatedAt.Format("2006-01-02 15:04:05"),
				entry.Action,
				actorName(entry),
				target,
				entry.ID,
			)
		}
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		writer := csv.NewWriter(w)
		_ = writer.Write([]string{"id", "timestamp", "action", "actor", "target", "metadata"})
		for _, entry := range logs {
			_ = writer.Write([]string{
				strconv.Itoa(entry.ID),
				entry.CreatedAt.Format(time.RFC3339),
				entry.Action,
				actorName(entry),
				entry.Target,
				entry.Metadata,
			})
		}
		writer.Flush()
	}
}

func actorName(entry domain.AuditLog) string {
	if entry.ActorID.Valid && entry.ActorID.Int64 > 0 {
		return strconv.FormatInt(entry.ActorID.Int64, 10)
	}
	return "system"
}
