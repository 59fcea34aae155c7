package http

import (
	"net/http"

	"github.com/givehub/server/internal/common/constants"
	"github.com/givehub/server/internal/common/httpmetrics"
	"github.com/givehub/server/internal/common/logger"
)

// BuildBaseHandler assembles the outer middleware chain shared by pages and
// API: security headers, CSP, panic recovery, trace IDs, body size limit and
// request metrics, outermost first.
func BuildBaseHandler(log *logger.Logger, csp string, handler http.Handler) http.Handler {
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	cspMiddleware := ContentSecurityPolicyMiddleware(csp)

	return SecurityHeadersMiddleware(cspMiddleware(recovery(TraceIDMiddleware(maxRequestSize(httpmetrics.Wrap(handler))))))
}
