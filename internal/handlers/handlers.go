// Package handlers provides the HTTP handlers for the PDF stamping API.
//
// Both endpoints take JSON and answer with a PDF attachment:
//
//	h := handlers.NewAPIHandler(pipeline, logger)
//	r := chi.NewRouter()
//	r.Post("/process-pdfs", h.ProcessPDFs)
//	r.Post("/add-text-to-pdf", h.AddTextToPDF)
//
// Errors are answered with a JSON body of the form {"error": "..."}.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"pdf-stamp/internal/merge"
	"pdf-stamp/internal/watermark"
)

const maxRequestSize = 1 << 20

// Processor runs the document pipeline for a request.
type Processor interface {
	ProcessURLs(ctx context.Context, urls []string, sigs []watermark.SignatureInfo) ([]byte, error)
	AnnotateURL(ctx context.Context, rawURL string, texts []merge.TextAnnotation) ([]byte, error)
}

// ProcessPDFsRequest is the body of POST /process-pdfs.
type ProcessPDFsRequest struct {
	URLs       []string                  `json:"urls" validate:"required,min=1,dive,required"`
	Signatures []watermark.SignatureInfo `json:"signatures"`
}

// AddTextRequest is the body of POST /add-text-to-pdf.
type AddTextRequest struct {
	URL   string                 `json:"url" validate:"required"`
	Texts []merge.TextAnnotation `json:"texts" validate:"required,min=1"`
}

// ErrorResponse is the body of every non-200 answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationError reports a malformed request body.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

type APIHandler struct {
	processor Processor
	validator *validator.Validate
	logger    *zap.Logger
}

func NewAPIHandler(p Processor, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{processor: p, validator: validator.New(), logger: logger}
}

// ProcessPDFs godoc
// @Summary      Merge and stamp PDFs
// @Description  Downloads the PDFs in order, stamps the signatures on the last page of the first and last documents, and returns the merged document
// @Tags         pdf
// @Accept       json
// @Produce      application/pdf
// @Param        request  body      ProcessPDFsRequest  true  "URLs and signatures"
// @Success      200      {file}    file                "Merged PDF"
// @Failure      400      {object}  ErrorResponse       "Bad request"
// @Failure      500      {object}  ErrorResponse       "Processing failed"
// @Router       /process-pdfs [post]
func (h *APIHandler) ProcessPDFs(w http.ResponseWriter, r *http.Request) {
	var req ProcessPDFsRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, "failed to process PDFs")
		return
	}

	out, err := h.processor.ProcessURLs(r.Context(), req.URLs, req.Signatures)
	if err != nil {
		h.fail(w, r, err, "failed to process PDFs")
		return
	}
	writePDF(w, "merged.pdf", out)
}

// AddTextToPDF godoc
// @Summary      Add text to a PDF
// @Description  Downloads one PDF and draws each text on its first page at the given coordinates
// @Tags         pdf
// @Accept       json
// @Produce      application/pdf
// @Param        request  body      AddTextRequest  true  "URL and texts"
// @Success      200      {file}    file            "Modified PDF"
// @Failure      400      {object}  ErrorResponse   "Bad request"
// @Failure      500      {object}  ErrorResponse   "Processing failed"
// @Router       /add-text-to-pdf [post]
func (h *APIHandler) AddTextToPDF(w http.ResponseWriter, r *http.Request) {
	var req AddTextRequest
	if err := h.decode(w, r, &req); err != nil {
		h.fail(w, r, err, "failed to add text to PDF")
		return
	}

	out, err := h.processor.AnnotateURL(r.Context(), req.URL, req.Texts)
	if err != nil {
		h.fail(w, r, err, "failed to add text to PDF")
		return
	}
	writePDF(w, "modified.pdf", out)
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string  "{ status: ok }"
// @Router       /health [get]
func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *APIHandler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &ValidationError{Message: "invalid request body", Cause: err}
	}
	if err := h.validator.Struct(dst); err != nil {
		return &ValidationError{Message: validationMessage(err), Cause: err}
	}
	return nil
}

// fail answers with the status for err. Only validation messages reach the
// client; everything else is logged and replaced by generic.
func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, err error, generic string) {
	status := httpStatus(err)
	msg := generic
	var ve *ValidationError
	if errors.As(err, &ve) {
		msg = ve.Message
	}

	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if id := middleware.GetReqID(r.Context()); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Info("rejected request", fields...)
	}

	writeJSON(w, status, ErrorResponse{Error: msg})
}

// httpStatus returns the status code for an error.
func httpStatus(err error) int {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("validation error: %s - %s", fe.Field(), fe.Tag())
	}
	return "validation error: invalid request"
}

func writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
