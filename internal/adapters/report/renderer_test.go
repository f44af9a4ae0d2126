package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depclean/internal/adapters/report"
	"go.trai.ch/depclean/internal/core/domain"
	"gopkg.in/yaml.v3"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Lockfile:        "Cargo.lock",
		Checksum:        "9f86d081884c7d65",
		PackageCount:    4,
		DependencyEdges: 2,
		Rows: []domain.ReportRow{
			{
				Name:        "serde",
				Versions:    []string{"1.0.193", "1.0.190"},
				Recommended: "1.0.193",
				PURL:        "pkg:cargo/serde@1.0.193",
				Savings:     10,
				Candidates: []domain.Candidate{
					{Version: "1.0.193", Intrinsic: 11193, Total: 11193},
					{Version: "1.0.190", Intrinsic: 11190, Total: 11190},
				},
			},
			{
				Name:     "weird",
				Versions: []string{"a", "b", "c"},
				PURL:     "pkg:cargo/weird",
				Savings:  20,
			},
		},
		TotalSavings: 30,
	}
}

func newRenderer() *report.Renderer {
	return report.NewRenderer(report.WithColorProfile(termenv.Ascii))
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer().Render(&buf, sampleReport(), domain.FormatTable))

	out := buf.String()
	for _, want := range []string{
		report.ColumnPackage,
		report.ColumnVersions,
		report.ColumnRecommended,
		report.ColumnSavings,
		"serde",
		"1.0.193, 1.0.190",
		"a, b, c",
		domain.NoRecommendation,
		"Total estimated savings: 30 KB across 2 duplicated packages",
		"Lockfile checksum: 9f86d081884c7d65",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[", "ascii profile must not emit escape sequences")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var serdeLine string
	for _, line := range lines {
		if strings.Contains(line, "serde") {
			serdeLine = line
		}
	}
	require.NotEmpty(t, serdeLine)
	assert.Regexp(t, `serde\s+│\s+1\.0\.193, 1\.0\.190\s+│\s+1\.0\.193\s+│\s+10\s+│`, serdeLine)
}

func TestRender_TableEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer().Render(&buf, &domain.Report{Lockfile: "Cargo.lock"}, domain.FormatTable)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No duplicate dependencies found")
	assert.NotContains(t, buf.String(), report.ColumnPackage)
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer().Render(&buf, sampleReport(), domain.FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "9f86d081884c7d65", decoded["checksum"])
	assert.InDelta(t, 30, decoded["total_savings_kb"], 0)

	rows, ok := decoded["duplicates"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)
	first, ok := rows[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pkg:cargo/serde@1.0.193", first["purl"])
	assert.Len(t, first["candidates"], 2)

	second, ok := rows[1].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, second, "recommended")
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer().Render(&buf, sampleReport(), domain.FormatYAML))

	var decoded domain.Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleReport(), decoded)
	assert.Contains(t, buf.String(), "estimated_savings_kb: 10")
}

func TestRender_UnknownFormat(t *testing.T) {
	err := newRenderer().Render(&bytes.Buffer{}, sampleReport(), domain.ReportFormat("xml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrUnknownFormat.Error())
}

func TestRender_WriteFailure(t *testing.T) {
	err := newRenderer().Render(failingWriter{}, sampleReport(), domain.FormatJSON)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrRenderFailed.Error())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }
