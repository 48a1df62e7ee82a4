package history

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"github.com/shini4i/render-watcher/internal/models"
)

const (
	columnID           = "id"
	columnServiceID    = "service_id"
	columnServiceName  = "service_name"
	columnDeployID     = "deploy_id"
	columnStatus       = "status"
	columnDeployStatus = "deploy_status"
	columnCreated      = "created"
	columnUpdated      = "updated"
	columnTransitions  = "transitions"
	columnAuthor       = "author"
	columnStatusReason = "status_reason"
)

// ExportRow is a flattened session as written to an export.
type ExportRow struct {
	ID           string `json:"id"`
	ServiceID    string `json:"service_id"`
	ServiceName  string `json:"service_name,omitempty"`
	DeployID     string `json:"deploy_id"`
	Status       string `json:"status"`
	DeployStatus string `json:"deploy_status,omitempty"`
	Created      int64  `json:"created"`
	Updated      int64  `json:"updated"`
	Transitions  int    `json:"transitions"`
	Author       string `json:"author,omitempty"`
	StatusReason string `json:"status_reason,omitempty"`
}

// ToCSV returns the ordered CSV values for the row, respecting anonymization.
func (r ExportRow) ToCSV(anonymize bool) []string {
	values := []string{
		r.ID,
		r.ServiceID,
		r.ServiceName,
		r.DeployID,
		r.Status,
		r.DeployStatus,
		strconv.FormatInt(r.Created, 10),
		strconv.FormatInt(r.Updated, 10),
		strconv.Itoa(r.Transitions),
	}

	if !anonymize {
		values = append(values, r.Author, r.StatusReason)
	}

	return values
}

// ColumnsFor returns the ordered column names of an export.
func ColumnsFor(anonymize bool) []string {
	columns := []string{
		columnID,
		columnServiceID,
		columnServiceName,
		columnDeployID,
		columnStatus,
		columnDeployStatus,
		columnCreated,
		columnUpdated,
		columnTransitions,
	}

	if !anonymize {
		columns = append(columns, columnAuthor, columnStatusReason)
	}

	return columns
}

// SanitizeSession flattens a Session into a row while optionally stripping
// the author and the free-form status reason.
func SanitizeSession(session models.Session, anonymize bool) ExportRow {
	row := ExportRow{
		ID:           session.Id,
		ServiceID:    session.ServiceId,
		ServiceName:  session.ServiceName,
		DeployID:     session.DeployId,
		Status:       session.Status,
		DeployStatus: session.DeployStatus.String(),
		Created:      int64(session.Created),
		Updated:      int64(session.Updated),
		Transitions:  len(session.Transitions),
	}

	if !anonymize {
		row.Author = session.Author
		row.StatusReason = session.StatusReason
	}

	return row
}

// RowWriter streams rows into a concrete format (JSON, CSV, etc.).
type RowWriter interface {
	WriteRow(ExportRow) error
	Close() error
}

// JSONWriter streams export rows as a JSON array without holding the
// whole dataset in memory.
type JSONWriter struct {
	writer    io.Writer
	started   bool
	completed bool
}

func NewJSONWriter(destination io.Writer) *JSONWriter {
	return &JSONWriter{writer: destination}
}

// WriteRow writes a single row, inserting separators as needed.
func (w *JSONWriter) WriteRow(row ExportRow) error {
	if w.completed {
		return errors.New("json writer already closed")
	}

	payload, err := json.Marshal(row)
	if err != nil {
		return err
	}

	separator := []byte(",")
	if !w.started {
		separator = []byte("[")
		w.started = true
	}
	if _, err := w.writer.Write(separator); err != nil {
		return err
	}

	_, err = w.writer.Write(payload)
	return err
}

// Close finalises the array, producing valid JSON even when no rows were written.
func (w *JSONWriter) Close() error {
	if w.completed {
		return nil
	}
	defer func() {
		w.completed = true
	}()

	if !w.started {
		_, err := w.writer.Write([]byte("[]"))
		return err
	}

	_, err := w.writer.Write([]byte("]"))
	return err
}

// CSVWriter streams export rows as CSV, writing the header before the first row.
type CSVWriter struct {
	writer      *csv.Writer
	header      []string
	wroteHeader bool
	closed      bool
	anonymize   bool
}

func NewCSVWriter(destination io.Writer, anonymize bool) *CSVWriter {
	return &CSVWriter{
		writer:    csv.NewWriter(destination),
		header:    ColumnsFor(anonymize),
		anonymize: anonymize,
	}
}

func (w *CSVWriter) WriteRow(row ExportRow) error {
	if w.closed {
		return errors.New("csv writer already closed")
	}

	if err := w.writeHeader(); err != nil {
		return err
	}

	return w.writer.Write(row.ToCSV(w.anonymize))
}

func (w *CSVWriter) writeHeader() error {
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true
	return w.writer.Write(w.header)
}

// Close writes the header if nothing was exported and flushes buffered output.
func (w *CSVWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.writeHeader(); err != nil {
		return err
	}
	w.writer.Flush()
	return w.writer.Error()
}

// SessionSource is the part of the session repository an export reads from.
type SessionSource interface {
	GetSessions(startTime float64, endTime float64, service string, limit int, offset int) ([]models.Session, int64)
}

// Filter selects the sessions of an export.
type Filter struct {
	StartTime float64
	EndTime   float64
	Service   string
	Anonymize bool
}

// Stream pages through the sessions matching filter and writes them sanitized.
// The writer is not closed.
func Stream(source SessionSource, filter Filter, writer RowWriter, batchSize int) error {
	if source == nil {
		return errors.New("session repository is not initialised")
	}
	if batchSize <= 0 {
		return errors.New("batch size must be positive")
	}

	offset := 0
	for {
		sessions, total := source.GetSessions(filter.StartTime, filter.EndTime, filter.Service, batchSize, offset)

		for _, session := range sessions {
			if err := writer.WriteRow(SanitizeSession(session, filter.Anonymize)); err != nil {
				return err
			}
		}

		offset += len(sessions)

		if len(sessions) == 0 || offset >= int(total) || len(sessions) < batchSize {
			return nil
		}
	}
}
