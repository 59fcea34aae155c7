package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/givehub/server/internal/common/errors"
	"github.com/givehub/server/internal/common/httpmetrics"
	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError maps a DomainError to its HTTP status and envelope; anything
// else is logged and reported as a generic 500 so internals never leak.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	traceID := TraceIDFromContext(r.Context())

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		h.handleDomainError(w, r, domainErr, traceID)
		return
	}

	h.log.WithFields(logger.Fields{
		"error":    err.Error(),
		"trace_id": traceID,
		"action":   "unhandled_error",
	}).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteErrorEnvelope(w, http.StatusInternalServerError, CodeUnknown, "internal server error", traceID)
}

func (h *ErrorHandler) handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError, traceID string) {
	status := err.HTTPStatus()

	if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(logger.Fields{
			"error_code": err.Code(),
			"category":   string(err.Category()),
			"status":     status,
			"trace_id":   traceID,
			"action":     "domain_error",
		}).Debugf("domain error: %s", err.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(err.Category()),
		err.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteErrorEnvelope(w, status, err.Code(), err.Message(), traceID)
}
