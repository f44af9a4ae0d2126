package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// NoRecommendation is rendered in place of a version when no candidate could be selected.
const NoRecommendation = "No optimal version found"

// ReportFormat selects how a report is rendered.
type ReportFormat string

const (
	// FormatTable renders a styled table for terminals.
	FormatTable ReportFormat = "table"
	// FormatJSON renders the full report as JSON.
	FormatJSON ReportFormat = "json"
	// FormatYAML renders the full report as YAML.
	FormatYAML ReportFormat = "yaml"
)

// ParseReportFormat normalizes a user supplied format name.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", zerr.With(ErrUnknownFormat, "format", s)
	}
}

// Candidate is one scored version of a duplicate set.
type Candidate struct {
	Version           string  `json:"version" yaml:"version"`
	Intrinsic         float64 `json:"intrinsic" yaml:"intrinsic"`
	MetadataScore     float64 `json:"metadata_score" yaml:"metadata_score"`
	Total             float64 `json:"total" yaml:"total"`
	MetadataAvailable bool    `json:"metadata_available" yaml:"metadata_available"`
	Yanked            bool    `json:"yanked,omitempty" yaml:"yanked,omitempty"`
}

// ReportRow is the analysis result for one duplicated package.
type ReportRow struct {
	Name        string      `json:"name" yaml:"name"`
	Versions    []string    `json:"versions" yaml:"versions"`
	Recommended string      `json:"recommended,omitempty" yaml:"recommended,omitempty"`
	PURL        string      `json:"purl,omitempty" yaml:"purl,omitempty"`
	Savings     int         `json:"estimated_savings_kb" yaml:"estimated_savings_kb"`
	Candidates  []Candidate `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// RecommendedLabel returns the recommended version or the no-recommendation marker.
func (r ReportRow) RecommendedLabel() string {
	if r.Recommended == "" {
		return NoRecommendation
	}
	return r.Recommended
}

// Report is the complete output of one analysis run.
type Report struct {
	Lockfile        string      `json:"lockfile" yaml:"lockfile"`
	Checksum        string      `json:"checksum" yaml:"checksum"`
	PackageCount    int         `json:"package_count" yaml:"package_count"`
	DependencyEdges int         `json:"dependency_edges" yaml:"dependency_edges"`
	Rows            []ReportRow `json:"duplicates" yaml:"duplicates"`
	TotalSavings    int         `json:"total_savings_kb" yaml:"total_savings_kb"`
}
