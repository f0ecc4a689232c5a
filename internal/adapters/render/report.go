// Package render turns collected pool records into the final JSON or CSV
// report and writes it to stdout or a file.
package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/udns-tools/udnscan/internal/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var csvHeader = []string{"subaccount", "zone", "pool_name", "pool_type"}

// ParseFormat validates the --format selector.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatJSON, FormatCSV:
		return Format(value), nil
	default:
		return "", &domain.ConfigError{Reason: fmt.Sprintf("unsupported format %q (expected json or csv)", value)}
	}
}

// Report serializes the records in discovery order. An empty scan renders as
// an empty JSON array or a header-only CSV.
func Report(records []domain.PoolRecord, format Format) ([]byte, error) {
	if records == nil {
		records = []domain.PoolRecord{}
	}

	switch format {
	case FormatJSON:
		return renderJSON(records)
	case FormatCSV:
		return renderCSV(records)
	default:
		return nil, &domain.ConfigError{Reason: fmt.Sprintf("unsupported format %q", format)}
	}
}

func renderJSON(records []domain.PoolRecord) ([]byte, error) {
	content, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	return append(content, '\n'), nil
}

func renderCSV(records []domain.PoolRecord) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, record := range records {
		row := []string{record.Subaccount, record.Zone, record.PoolName, record.PoolType}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv report: %w", err)
	}

	return buf.Bytes(), nil
}

// Write sends the serialized report to the named file, or to stdout when no
// path was given. An existing file is overwritten.
func Write(content []byte, path string, stdout io.Writer) error {
	if path == "" {
		if _, err := stdout.Write(content); err != nil {
			return &domain.IOError{Path: "stdout", Err: err}
		}
		return nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return &domain.IOError{Path: path, Err: err}
	}
	if err := os.WriteFile(expanded, content, 0o644); err != nil {
		return &domain.IOError{Path: expanded, Err: err}
	}

	return nil
}
