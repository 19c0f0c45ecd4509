package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"IDXScreener/internal/config"
	"IDXScreener/internal/logger"
	"IDXScreener/internal/model"
	"IDXScreener/internal/notifier"
	"IDXScreener/internal/report"
	"IDXScreener/internal/screener"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	pipeline screener.Pipeline
	email    notifier.Notifier
	defaults model.RunConfig
	logger   *logger.Logger
	validate *validator.Validate
}

// NewHandler creates a new Handler. email may be nil when SMTP is not configured.
func NewHandler(p screener.Pipeline, email notifier.Notifier, defaults model.RunConfig, log *logger.Logger) *Handler {
	return &Handler{
		pipeline: p,
		email:    email,
		defaults: defaults,
		logger:   logger.OrNop(log),
		validate: validator.New(),
	}
}

// reportResponse is the JSON body of GET /report.
type reportResponse struct {
	*model.Report
	Notice string `json:"notice,omitempty"`
}

// GetReport handles GET /report
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	resp := reportResponse{Report: rep}
	if rep.Empty() {
		resp.Notice = report.NoCandidatesText
		rep.Results = []model.SignalResult{}
	}
	respondJSON(w, http.StatusOK, resp)
}

// GetSpreadsheet handles GET /report.xlsx
func (h *Handler) GetSpreadsheet(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	data, err := report.RenderSpreadsheet(rep)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondFile(w, report.SpreadsheetName, report.SpreadsheetContentType, data)
}

// GetPDF handles GET /report.pdf
func (h *Handler) GetPDF(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	data, err := report.RenderPDF(report.BuildDocument(rep))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondFile(w, report.PDFName, report.PDFContentType, data)
}

// EmailReport handles POST /report/email
func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	if h.email == nil {
		http.Error(w, "email delivery is not configured", http.StatusServiceUnavailable)
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}
	to := strings.TrimSpace(req.Email)
	if to == "" {
		to = h.defaults.RecipientEmail
	}
	if err := h.validate.Var(to, "required"); err != nil {
		http.Error(w, "an email address is required", http.StatusBadRequest)
		return
	}

	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	atts, err := report.Attachments(rep)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	d := notifier.Deliver(r.Context(), h.email, notifier.ReportMessage(to, rep, atts))
	status := http.StatusOK
	if !d.OK {
		status = http.StatusBadGateway
		h.logger.Warn("email delivery failed", zap.String("to", to), zap.String("result", d.Message))
	}
	respondJSON(w, status, d)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// run executes the pipeline with the request's overrides. On failure the
// response has been written and ok is false.
func (h *Handler) run(w http.ResponseWriter, r *http.Request) (*model.Report, bool) {
	cfg, err := h.runConfig(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	rep, err := h.pipeline.Run(r.Context(), cfg)
	if err != nil && !errors.Is(err, screener.ErrNoCandidates) {
		h.logger.Error("pipeline run failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	if rep == nil {
		rep = &model.Report{Mode: cfg.Mode, Capital: cfg.Capital}
	}
	return rep, true
}

func (h *Handler) runConfig(r *http.Request) (model.RunConfig, error) {
	cfg := h.defaults
	q := r.URL.Query()
	if v := q.Get("mode"); v != "" {
		mode, err := model.ParseMode(v)
		if err != nil {
			return cfg, err
		}
		cfg.Mode = mode
	}
	if v := q.Get("capital"); v != "" {
		capital, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(capital) || math.IsInf(capital, 0) {
			return cfg, fmt.Errorf("invalid capital %q", v)
		}
		if capital < config.MinCapital || capital > config.MaxCapital {
			return cfg, fmt.Errorf("capital must be between %d and %d", config.MinCapital, int64(config.MaxCapital))
		}
		cfg.Capital = capital
	}
	return cfg, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "encode response: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func respondFile(w http.ResponseWriter, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
