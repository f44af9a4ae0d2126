// Package report renders duplicate reports as a terminal table, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/depclean/internal/ui/output"
	"go.trai.ch/depclean/internal/ui/style"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Table column headers.
const (
	ColumnPackage     = "Package"
	ColumnVersions    = "Versions"
	ColumnRecommended = "Recommended Version"
	ColumnSavings     = "Estimated Savings (KB)"
)

const (
	colRecommended = 2
	colSavings     = 3
)

// Renderer implements ports.ReportRenderer.
type Renderer struct {
	profile *termenv.Profile
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColorProfile forces a color profile instead of detecting one from the environment.
func WithColorProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.profile = &p
	}
}

// NewRenderer creates a new Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render writes the report to w in the requested format.
func (r *Renderer) Render(w io.Writer, report *domain.Report, format domain.ReportFormat) error {
	var err error
	switch format {
	case domain.FormatTable, "":
		err = r.renderTable(w, report)
	case domain.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(report)
	case domain.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(report); err == nil {
			err = enc.Close()
		}
	default:
		return zerr.With(domain.ErrUnknownFormat, "format", string(format))
	}

	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRenderFailed.Error()), "format", string(format))
	}
	return nil
}

func (r *Renderer) renderer(w io.Writer) *lipgloss.Renderer {
	lr := output.Renderer(w)
	if r.profile != nil {
		lr.SetColorProfile(*r.profile)
	}
	return lr
}

func (r *Renderer) renderTable(w io.Writer, report *domain.Report) error {
	lr := r.renderer(w)
	styles := style.NewReport(lr)

	if len(report.Rows) == 0 {
		_, err := fmt.Fprintln(w, styles.Recommended.Render(style.Check+" No duplicate dependencies found"))
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		Headers(ColumnPackage, ColumnVersions, ColumnRecommended, ColumnSavings)

	for _, row := range report.Rows {
		t.Row(
			row.Name,
			strings.Join(row.Versions, ", "),
			row.RecommendedLabel(),
			strconv.Itoa(row.Savings),
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return styles.Header
		case col == colRecommended && report.Rows[row].Recommended == "":
			return styles.Missing
		case col == colRecommended:
			return styles.Recommended
		case col == colSavings:
			return styles.Cell.Align(lipgloss.Right)
		default:
			return styles.Cell
		}
	})

	footer := fmt.Sprintf("Total estimated savings: %d KB across %d duplicated packages",
		report.TotalSavings, len(report.Rows))
	if report.Checksum != "" {
		footer += "\n" + "Lockfile checksum: " + report.Checksum
	}

	_, err := fmt.Fprintln(w, t.String()+"\n"+styles.Footer.Render(footer))
	return err
}
