// Package server exposes the form submission boundary over HTTP: rendered
// UIs post flat field collections here, and everything else (history,
// delete, export, import, device name) rides along as a small JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/storeops/auditpad/internal/audit"
	"github.com/storeops/auditpad/internal/exchange"
	"github.com/storeops/auditpad/internal/form"
	"github.com/storeops/auditpad/internal/store"
)

// Header field names reserved for the fixed per-audit fields; everything
// else in a submission belongs to the widget area.
var headerFields = map[string]bool{
	"audit_type":   true,
	"auditor":      true,
	"audit_date":   true,
	"audit_time":   true,
	"header_notes": true,
}

// maxImportBytes caps import payload size.
const maxImportBytes = 16 << 20

// maxFormBytes caps form submission payload size.
const maxFormBytes = 1 << 20

// Server wires the audit store to HTTP handlers.
type Server struct {
	store  *store.Store
	logger *slog.Logger
}

// New creates a server over the given store.
func New(st *store.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: st, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Post("/submit", s.handleSubmit)
	r.Get("/audits", s.handleListAudits)
	r.Delete("/audits/{id}", s.handleDeleteAudit)
	r.Get("/export", s.handleExport)
	r.Post("/import", s.handleImport)
	r.Get("/device", s.handleGetDevice)
	r.Put("/device", s.handleSetDevice)
	return r
}

// Serve starts the HTTP server on addr. Blocks until the listener fails
// or ctx is cancelled, draining in-flight requests on cancellation.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSubmit accepts one flat urlencoded form submission and appends the
// built record. An HTML form post carries no plan of its own, so the widget
// plan is recovered from the field names. The body is decoded by hand
// because url.Values drops field order, and field order is the declaration
// order of the rendered widgets.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	sub, order, err := parseSubmission(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("parse form: %w", err))
		return
	}

	header := audit.Header{
		AuditType:   sub.Get("audit_type"),
		Auditor:     sub.Get("auditor"),
		AuditDate:   sub.Get("audit_date"),
		AuditTime:   sub.Get("audit_time"),
		HeaderNotes: sub.Get("header_notes"),
	}
	for name := range headerFields {
		delete(sub, name)
	}

	device, err := s.store.DeviceName()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	header.DeviceName = device

	rec := audit.Build(header, form.PlanInOrder(sub, order), sub)

	if err := s.store.Append(rec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("audit submitted",
		"id", rec.ID,
		"audit_type", rec.AuditType,
		"items", len(rec.Items),
	)
	writeJSON(w, http.StatusCreated, map[string]string{"id": rec.ID})
}

// groupView is one audit-type partition in the list response.
type groupView struct {
	Type   string       `json:"audit_type"`
	Count  int          `json:"count"`
	Audits []recordView `json:"audits"`
}

type recordView struct {
	audit.Record
	Summary summaryView `json:"summary"`
}

type summaryView struct {
	Yes   int `json:"yes"`
	No    int `json:"no"`
	Blank int `json:"blank"`
}

func (s *Server) handleListAudits(w http.ResponseWriter, r *http.Request) {
	groups, err := s.store.GroupByType()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	out := make([]groupView, 0, len(groups))
	for _, g := range groups {
		gv := groupView{Type: g.Type, Count: len(g.Records), Audits: make([]recordView, 0, len(g.Records))}
		for _, rec := range g.Records {
			sum := audit.Summarize(rec)
			gv.Audits = append(gv.Audits, recordView{
				Record:  rec,
				Summary: summaryView{Yes: sum.Yes, No: sum.No, Blank: sum.Blank},
			})
		}
		out = append(out, gv)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteAudit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Remove(id); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.logger.Info("audit deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.Load()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	device, err := s.store.DeviceName()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	auditType := r.URL.Query().Get("type")
	doc := exchange.Export(recs, auditType, device)
	name := exchange.Filename(auditType, time.Now().UTC())

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}

	res, err := exchange.Import(s.store, data)
	if errors.Is(err, exchange.ErrInvalidFormat) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.logger.Info("import merged", "added", res.Added, "skipped", res.Skipped)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	name, err := s.store.DeviceName()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"device_name": name})
}

func (s *Server) handleSetDevice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DeviceName string `json:"device_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	if err := s.store.SetDeviceName(req.DeviceName); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"device_name": req.DeviceName})
}

// parseSubmission decodes an urlencoded body into a submission plus the
// field names in document order. Duplicate names keep the first value,
// matching url.Values.Get.
func parseSubmission(body []byte) (form.Submission, []string, error) {
	sub := form.Submission{}
	var order []string
	for _, pair := range strings.Split(string(body), "&") {
		if pair == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			return nil, nil, fmt.Errorf("field name %q: %w", rawName, err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, nil, fmt.Errorf("field %q: %w", name, err)
		}
		if _, ok := sub[name]; ok {
			continue
		}
		sub.Set(name, value)
		order = append(order, name)
	}
	return sub, order, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
