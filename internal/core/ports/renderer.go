package ports

import (
	"io"

	"go.trai.ch/depclean/internal/core/domain"
)

// ReportRenderer writes an analysis report in a given format.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type ReportRenderer interface {
	Render(w io.Writer, report *domain.Report, format domain.ReportFormat) error
}
