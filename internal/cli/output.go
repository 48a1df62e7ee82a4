package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shini4i/render-watcher/internal/models"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q, expected text, json or yaml", format)
}

// printer renders command results in the selected output format.
type printer struct {
	out    io.Writer
	format string
}

func (p printer) structured() bool {
	return p.format == outputJSON || p.format == outputYAML
}

// print encodes value for json and yaml output and calls text otherwise.
func (p printer) print(value any, text func(w io.Writer)) error {
	switch p.format {
	case outputJSON:
		encoder := json.NewEncoder(p.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(value)
	case outputYAML:
		encoder := yaml.NewEncoder(p.out)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return err
		}
		return encoder.Close()
	default:
		text(p.out)
		return nil
	}
}

// table writes aligned columns in the style of kubectl.
func table(out io.Writer, header string, rows func(w io.Writer)) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, header)
	rows(w)
	_ = w.Flush()
}

func colorStatus(status models.DeployStatus) string {
	switch {
	case status.IsSuccess():
		return green(status.String())
	case status.IsTerminal():
		return red(status.String())
	case status == "":
		return "-"
	default:
		return yellow(status.String())
	}
}

func colorSessionStatus(status string) string {
	switch status {
	case models.StatusSucceededMessage:
		return green(status)
	case models.StatusInProgressMessage:
		return yellow(status)
	default:
		return red(status)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func formatUnix(seconds float64) string {
	if seconds == 0 {
		return "-"
	}
	return time.Unix(int64(seconds), 0).UTC().Format(time.RFC3339)
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
