package httpadapter

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/homahealth/labscan/internal/core/domain"
	"github.com/homahealth/labscan/internal/core/extraction"
	"github.com/homahealth/labscan/internal/core/scoring"
	"github.com/homahealth/labscan/internal/core/usecase"
	"github.com/homahealth/labscan/internal/observability/metrics"
)

const maxUploadBytes = 64 << 20

type reportIngestor interface {
	Upload(ctx context.Context, patientID, patientName, reportType string, files []usecase.UploadFile) (*domain.Report, error)
}

type reportManager interface {
	Get(ctx context.Context, id string) (*domain.Report, error)
	List(ctx context.Context, limit, offset int) ([]domain.Report, error)
	Delete(ctx context.Context, id string) error
}

type reportFinalizer interface {
	Finalize(ctx context.Context, reportID string, labValues domain.LabValues, patientData domain.PatientData) (*domain.Report, error)
}

type Router struct {
	service   string
	ingest    reportIngestor
	manage    reportManager
	finalize  reportFinalizer
	extractor *extraction.Extractor
	metrics   *metrics.HTTPServerMetrics
}

func NewRouter(
	service string,
	ingest reportIngestor,
	manage reportManager,
	finalize reportFinalizer,
	extractor *extraction.Extractor,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		service:   service,
		ingest:    ingest,
		manage:    manage,
		finalize:  finalize,
		extractor: extractor,
		metrics:   serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/reports", rt.reports)
	mux.HandleFunc("/v1/reports/", rt.reportByID)
	mux.HandleFunc("/v1/extract", rt.extract)
	mux.HandleFunc("/v1/metrics", rt.healthMetrics)
	mux.HandleFunc("/v1/scores/homa-iq", rt.homaIQScore)
	mux.HandleFunc("/v1/scores/metabolic-risk", rt.metabolicRiskScore)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	handler := http.Handler(mux)
	if rt.metrics != nil {
		handler = rt.metrics.Middleware(rt.service, handler)
	}
	handler = accessLogMiddleware(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) reports(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.uploadReport(w, r)
	case http.MethodGet:
		rt.listReports(w, r)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

// uploadReport accepts one or more files under the multipart field "files"
// (the single-file field "file" also works) plus optional patient metadata.
func (rt *Router) uploadReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart form is required"})
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'files' is required"})
		return
	}

	files := make([]usecase.UploadFile, 0, len(headers))
	for _, header := range headers {
		part, err := header.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable multipart file"})
			return
		}
		defer part.Close()
		files = append(files, usecase.UploadFile{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Body:     part,
		})
	}

	report, err := rt.ingest.Upload(
		r.Context(),
		r.FormValue("patient_id"),
		r.FormValue("patient_name"),
		r.FormValue("report_type"),
		files,
	)
	if rt.metrics != nil {
		rt.metrics.RecordUpload(rt.service, len(files), err)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, report)
}

func (rt *Router) listReports(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")

	reports, err := rt.manage.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

func (rt *Router) reportByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/v1/reports/")
	if id, ok := strings.CutSuffix(rest, "/finalize"); ok {
		rt.finalizeReport(w, r, id)
		return
	}
	if rest == "" || strings.Contains(rest, "/") {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown resource"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		report, err := rt.manage.Get(r.Context(), rest)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)
	case http.MethodDelete:
		if err := rt.manage.Delete(r.Context(), rest); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func (rt *Router) finalizeReport(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "report id is required"})
		return
	}

	var req struct {
		LabValues   domain.LabValues   `json:"labValues"`
		PatientData domain.PatientData `json:"patientData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	report, err := rt.finalize.Finalize(r.Context(), id, req.LabValues, req.PatientData)
	if rt.metrics != nil {
		rt.metrics.RecordFinalization(rt.service, err)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// extract runs the text pipeline without touching storage. Forms on the
// dashboard use it to preview what a pasted report would yield.
func (rt *Router) extract(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var req struct {
		Text  string   `json:"text"`
		Texts []string `json:"texts"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	texts := req.Texts
	if len(texts) == 0 {
		if strings.TrimSpace(req.Text) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
			return
		}
		texts = []string{req.Text}
	}

	validation := extraction.ValidateReport(strings.Join(texts, "\n"))
	extracted := rt.extractor.ExtractBatch(texts)
	writeJSON(w, http.StatusOK, map[string]any{
		"validation": validation,
		"extraction": extracted,
	})
}

func (rt *Router) healthMetrics(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScoringRequest(w, r)
	if !ok {
		return
	}
	result := scoring.CalculateAllHealthMetrics(req.LabValues, req.PatientData)
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) homaIQScore(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScoringRequest(w, r)
	if !ok {
		return
	}

	result, err := scoring.CalculateHomaIQScore(req.LabValues)
	if err != nil {
		writeError(w, err)
		return
	}
	if rt.metrics != nil {
		rt.metrics.RecordScore(rt.service, "homa_iq", result.RiskLevel)
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) metabolicRiskScore(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeScoringRequest(w, r)
	if !ok {
		return
	}

	result := scoring.CalculateMetabolicRisk(req.LabValues, req.PatientData)
	if rt.metrics != nil {
		rt.metrics.RecordScore(rt.service, "metabolic_risk", result.RiskLevel)
	}
	writeJSON(w, http.StatusOK, result)
}

type scoringRequest struct {
	LabValues   domain.LabValues   `json:"labValues"`
	PatientData domain.PatientData `json:"patientData"`
}

func decodeScoringRequest(w http.ResponseWriter, r *http.Request) (scoringRequest, bool) {
	var req scoringRequest
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return req, false
	}
	if req.LabValues == nil {
		req.LabValues = domain.LabValues{}
	}
	return req, true
}

func queryInt(r *http.Request, name string) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
