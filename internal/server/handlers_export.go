package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/shini4i/render-watcher/internal/export/history"
	"github.com/shini4i/render-watcher/internal/models"
)

// exportSessions godoc
// @Summary Export session history
// @Description Streams the filtered session history as CSV or JSON.
// @Tags backend, frontend
// @Produce text/csv
// @Produce application/json
// @Param format query string false "Export format (csv or json)" Enums(csv,json)
// @Param anonymize query bool false "Remove author and status_reason columns" default(true)
// @Param from_timestamp query number false "Start timestamp (seconds since epoch)"
// @Param to_timestamp query number false "End timestamp (seconds since epoch)"
// @Param service query string false "Filter by service id or name"
// @Success 200
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 503 {object} models.ApiResponse
// @Router /api/v1/sessions/export [get]
func (env *Env) exportSessions(c *gin.Context) {
	params, reqErr := env.parseExportParams(c)
	if reqErr != nil {
		c.JSON(reqErr.statusCode, models.ApiResponse{
			Message: reqErr.message,
		})
		return
	}

	lazyWriter := &LazyResponseWriter{ResponseWriter: c.Writer, headerMap: make(http.Header)}
	writer, contentType := buildExportWriter(params.format, params.anonymize, lazyWriter)

	filename := fmt.Sprintf("history-sessions-%s.%s", time.Now().UTC().Format("2006-01-02-15-04-05"), params.format)
	lazyWriter.Header().Set("Content-Type", contentType)
	lazyWriter.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := env.streamExportRows(params, writer); err != nil {
		log.Error().Err(err).Msg("failed to stream export rows")
		if !lazyWriter.wroteHeader {
			c.JSON(http.StatusServiceUnavailable, models.ApiResponse{
				Message: "failed to stream export rows",
			})
		}
		return
	}

	if err := writer.Close(); err != nil {
		log.Error().Err(err).Msg("failed to flush export writer")
	}
}

// parseExportParams extracts and validates query parameters for export requests.
func (env *Env) parseExportParams(c *gin.Context) (exportParams, *requestError) {
	params := exportParams{
		format:  strings.ToLower(c.DefaultQuery("format", "csv")),
		service: c.Query("service"),
	}

	if params.format != "csv" && params.format != "json" {
		return params, &requestError{
			statusCode: http.StatusBadRequest,
			message:    "unsupported export format",
		}
	}

	anonymize, err := parseBoolOrDefault(c.Query("anonymize"), true)
	if err != nil {
		return params, &requestError{
			statusCode: http.StatusBadRequest,
			message:    fmt.Sprintf("invalid anonymize flag: %v", err),
		}
	}

	now := time.Now().UTC()
	defaultFrom := now.Add(-24 * time.Hour).Unix()

	params.startTime, err = parseTimestampOrDefault(c.Query("from_timestamp"), float64(defaultFrom))
	if err != nil {
		return params, &requestError{
			statusCode: http.StatusBadRequest,
			message:    fmt.Sprintf("invalid from_timestamp: %v", err),
		}
	}

	params.endTime, err = parseTimestampOrDefault(c.Query("to_timestamp"), float64(now.Unix()))
	if err != nil {
		return params, &requestError{
			statusCode: http.StatusBadRequest,
			message:    fmt.Sprintf("invalid to_timestamp: %v", err),
		}
	}

	if params.endTime < params.startTime {
		return params, &requestError{
			statusCode: http.StatusBadRequest,
			message:    "to_timestamp must be greater than or equal to from_timestamp",
		}
	}

	// authors are only exposed to authenticated callers
	params.anonymize = anonymize || !env.authenticator.Enabled()

	return params, nil
}

// streamExportRows fetches sessions in batches and streams them via the provided writer.
func (env *Env) streamExportRows(params exportParams, writer history.RowWriter) error {
	if env.render == nil || env.render.State == nil {
		return errors.New("session repository is not initialised")
	}

	return history.Stream(env.render.State, history.Filter{
		StartTime: params.startTime,
		EndTime:   params.endTime,
		Service:   params.service,
		Anonymize: params.anonymize,
	}, writer, historyExportBatch)
}

// buildExportWriter returns the export writer and related content type for a format and anonymization flag.
func buildExportWriter(format string, anonymize bool, writer http.ResponseWriter) (history.RowWriter, string) {
	switch format {
	case "json":
		return history.NewJSONWriter(writer), "application/json"
	default:
		return history.NewCSVWriter(writer, anonymize), "text/csv"
	}
}

// LazyResponseWriter defers committing headers and status until the first write,
// so the handler can still answer with a JSON error if streaming fails early.
type LazyResponseWriter struct {
	gin.ResponseWriter
	status      int
	headerMap   http.Header
	wroteHeader bool
}

// Header returns the buffered header map without committing it to the underlying writer.
func (w *LazyResponseWriter) Header() http.Header {
	if w.headerMap == nil {
		w.headerMap = make(http.Header)
	}
	return w.headerMap
}

// WriteHeader stores the status code without committing headers yet.
func (w *LazyResponseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
}

func (w *LazyResponseWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *LazyResponseWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Status returns the pending status code if set, otherwise the underlying writer's status.
func (w *LazyResponseWriter) Status() int {
	if w.status != 0 {
		return w.status
	}
	return w.ResponseWriter.Status()
}

// Written reports whether headers have been committed.
func (w *LazyResponseWriter) Written() bool {
	return w.wroteHeader || w.ResponseWriter.Written()
}

func (w *LazyResponseWriter) WriteHeaderNow() {
	w.commit()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *LazyResponseWriter) Flush() {
	w.ResponseWriter.Flush()
}

func (w *LazyResponseWriter) commit() {
	if w.wroteHeader {
		return
	}
	if w.status == 0 {
		w.status = http.StatusOK
	}
	dest := w.ResponseWriter.Header()
	for key, values := range w.headerMap {
		for _, value := range values {
			dest.Add(key, value)
		}
	}
	w.ResponseWriter.WriteHeader(w.status)
	w.wroteHeader = true
}

// requestError represents an HTTP error response that should be returned to the client.
type requestError struct {
	statusCode int
	message    string
}

func (r requestError) Error() string {
	return r.message
}

// exportParams bundles request parameters required for history export.
type exportParams struct {
	format    string
	anonymize bool
	startTime float64
	endTime   float64
	service   string
}
