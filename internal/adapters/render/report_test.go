package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/udns-tools/udnscan/internal/domain"
)

var sampleRecords = []domain.PoolRecord{
	{Subaccount: "Acme", Zone: "acme.com", PoolName: "web-pool", PoolType: "RD"},
	{Subaccount: "Acme", Zone: "acme.net", PoolName: "geo, east", PoolType: "Dir"},
	{Subaccount: "Beta", Zone: "beta.com", PoolName: "failover", PoolType: "SB"},
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	format, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	format, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	_, err = ParseFormat("yaml")
	require.Error(t, err)
	var configErr *domain.ConfigError
	require.ErrorAs(t, err, &configErr)
}

func TestJSONReportRoundTripsInOrder(t *testing.T) {
	t.Parallel()

	content, err := Report(sampleRecords, FormatJSON)
	require.NoError(t, err)

	var parsed []domain.PoolRecord
	require.NoError(t, json.Unmarshal(content, &parsed))
	assert.Equal(t, sampleRecords, parsed)
}

func TestJSONReportUsesStableFieldNames(t *testing.T) {
	t.Parallel()

	content, err := Report(sampleRecords[:1], FormatJSON)
	require.NoError(t, err)

	var parsed []map[string]string
	require.NoError(t, json.Unmarshal(content, &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, map[string]string{
		"subaccount": "Acme",
		"zone":       "acme.com",
		"pool_name":  "web-pool",
		"pool_type":  "RD",
	}, parsed[0])
}

func TestCSVReportRoundTripsWithQuoting(t *testing.T) {
	t.Parallel()

	content, err := Report(sampleRecords, FormatCSV)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(content)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"subaccount", "zone", "pool_name", "pool_type"}, rows[0])
	assert.Equal(t, []string{"Acme", "acme.com", "web-pool", "RD"}, rows[1])
	// Delimiter inside a value survives the round trip.
	assert.Equal(t, []string{"Acme", "acme.net", "geo, east", "Dir"}, rows[2])
	assert.Equal(t, []string{"Beta", "beta.com", "failover", "SB"}, rows[3])
}

func TestEmptyReportRendersEmptyForms(t *testing.T) {
	t.Parallel()

	content, err := Report(nil, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))

	content, err = Report(nil, FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "subaccount,zone,pool_name,pool_type\n", string(content))
}

func TestIdenticalRecordsRenderIdenticalReports(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatJSON, FormatCSV} {
		first, err := Report(sampleRecords, format)
		require.NoError(t, err)
		second, err := Report(sampleRecords, format)
		require.NoError(t, err)
		assert.Equal(t, first, second, "format %s", format)
	}
}

func TestWriteToStdoutWhenNoPathGiven(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	require.NoError(t, Write([]byte("[]\n"), "", &stdout))
	assert.Equal(t, "[]\n", stdout.String())
}

func TestWriteOverwritesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content"), 0o644))

	var stdout bytes.Buffer
	require.NoError(t, Write([]byte("[]\n"), path, &stdout))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(content))
	assert.Empty(t, stdout.String())
}

func TestWriteFailureBecomesIOError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "report.json")

	err := Write([]byte("[]\n"), path, &bytes.Buffer{})
	require.Error(t, err)

	var ioErr *domain.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, path, ioErr.Path)
}
