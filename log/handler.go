package log

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/datastax/table-data-apis/rest/contextutils"
)

const RequestIdHeader = "X-Request-Id"

type loggingHandler struct {
	handler  http.Handler
	logger   Logger
	requests atomic.Uint64
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewLoggingHandler logs every request along with a request id, which is also
// returned to the client in the X-Request-Id header and stored in the request context.
func NewLoggingHandler(handler http.Handler, logger Logger) http.Handler {
	return &loggingHandler{handler: handler, logger: logger}
}

func (h *loggingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestId := r.Header.Get(RequestIdHeader)
	if requestId == "" {
		requestId = uuid.New().String()
	}
	w.Header().Set(RequestIdHeader, requestId)
	r = r.WithContext(contextutils.WithRequestId(r.Context(), requestId))

	recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	h.handler.ServeHTTP(recorder, r)

	h.logger.Info("request",
		"id", requestId,
		"seq", h.requests.Inc(),
		"method", r.Method,
		"url", r.URL.String(),
		"status", recorder.status,
		"duration", time.Since(start))
}
