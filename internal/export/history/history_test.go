package history

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shini4i/render-watcher/internal/models"
)

var testSession = models.Session{
	Id:           "123",
	ServiceId:    "srv-1",
	ServiceName:  "api",
	DeployId:     "dep-1",
	Author:       "alice",
	Status:       models.StatusFailedMessage,
	StatusReason: "build_failed",
	DeployStatus: models.DeployBuildFailed,
	Created:      10,
	Updated:      20,
	Transitions: []models.Transition{
		{Status: models.DeployBuildInProgress},
		{Status: models.DeployBuildFailed, ElapsedMs: 5000},
	},
}

func TestColumnsFor(t *testing.T) {
	require.Equal(t, []string{
		"id", "service_id", "service_name", "deploy_id", "status", "deploy_status", "created", "updated", "transitions",
	}, ColumnsFor(true))

	require.Equal(t, []string{
		"id", "service_id", "service_name", "deploy_id", "status", "deploy_status", "created", "updated", "transitions",
		"author", "status_reason",
	}, ColumnsFor(false))
}

func TestSanitizeSession(t *testing.T) {
	row := SanitizeSession(testSession, false)
	require.Equal(t, "srv-1", row.ServiceID)
	require.Equal(t, "build_failed", row.DeployStatus)
	require.Equal(t, 2, row.Transitions)
	require.Equal(t, "alice", row.Author)
	require.Equal(t, "build_failed", row.StatusReason)

	anonymized := SanitizeSession(testSession, true)
	require.Empty(t, anonymized.Author)
	require.Empty(t, anonymized.StatusReason)
	require.Len(t, anonymized.ToCSV(true), len(ColumnsFor(true)))
}

func TestJSONWriter(t *testing.T) {
	buffer := new(bytes.Buffer)
	writer := NewJSONWriter(buffer)

	require.NoError(t, writer.WriteRow(ExportRow{ID: "1"}))
	require.NoError(t, writer.WriteRow(ExportRow{ID: "2"}))
	require.NoError(t, writer.Close())

	var payload []map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &payload))
	require.Len(t, payload, 2)
	require.Equal(t, "1", payload[0]["id"])
	require.Equal(t, "2", payload[1]["id"])
	require.NotContains(t, payload[0], "author")
}

func TestJSONWriterEmpty(t *testing.T) {
	buffer := new(bytes.Buffer)
	writer := NewJSONWriter(buffer)
	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close())
	require.Equal(t, "[]", buffer.String())
}

func TestJSONWriterWriteAfterClose(t *testing.T) {
	writer := NewJSONWriter(new(bytes.Buffer))
	require.NoError(t, writer.Close())
	require.Error(t, writer.WriteRow(ExportRow{ID: "1"}))
}

func TestCSVWriter(t *testing.T) {
	buffer := new(bytes.Buffer)
	writer := NewCSVWriter(buffer, false)

	require.NoError(t, writer.WriteRow(SanitizeSession(testSession, false)))
	require.NoError(t, writer.Close())

	records, err := csv.NewReader(strings.NewReader(buffer.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, ColumnsFor(false), records[0])
	require.Equal(t, "srv-1", records[1][1])
	require.Equal(t, "10", records[1][6])
	require.Equal(t, "2", records[1][8])
	require.Equal(t, "alice", records[1][9])
}

func TestCSVWriterEmptyWritesHeader(t *testing.T) {
	buffer := new(bytes.Buffer)
	writer := NewCSVWriter(buffer, true)
	require.NoError(t, writer.Close())

	records, err := csv.NewReader(strings.NewReader(buffer.String())).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{ColumnsFor(true)}, records)
}

func TestCSVWriterWriteAfterClose(t *testing.T) {
	writer := NewCSVWriter(new(bytes.Buffer), false)
	require.NoError(t, writer.Close())
	require.Error(t, writer.WriteRow(ExportRow{ID: "1"}))
}

type pagedSource struct {
	sessions []models.Session
	calls    []int
}

func (s *pagedSource) GetSessions(_ float64, _ float64, _ string, limit int, offset int) ([]models.Session, int64) {
	s.calls = append(s.calls, offset)
	end := offset + limit
	if end > len(s.sessions) {
		end = len(s.sessions)
	}
	if offset >= len(s.sessions) {
		return []models.Session{}, int64(len(s.sessions))
	}
	return s.sessions[offset:end], int64(len(s.sessions))
}

func TestStream(t *testing.T) {
	source := &pagedSource{}
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		session := testSession
		session.Id = id
		source.sessions = append(source.sessions, session)
	}

	var buf bytes.Buffer
	writer := NewJSONWriter(&buf)

	require.NoError(t, Stream(source, Filter{Anonymize: true}, writer, 2))
	require.NoError(t, writer.Close())

	var rows []ExportRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 5)
	require.Equal(t, "5", rows[4].ID)
	require.Empty(t, rows[0].Author)
	require.Equal(t, []int{0, 2, 4}, source.calls)
}

func TestStream_InvalidArguments(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Stream(nil, Filter{}, NewJSONWriter(&buf), 10))
	require.Error(t, Stream(&pagedSource{}, Filter{}, NewJSONWriter(&buf), 0))
}
