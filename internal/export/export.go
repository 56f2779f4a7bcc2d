// Package export renders the weekly report to files: PDF, Markdown, plain text
// or JSON.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/PradipLalpura/RexOS/internal/service"
)

var ErrExportInProgress = errors.New("an export is already in progress")

type Format string

const (
	FormatPDF      Format = "pdf"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

func ParseFormat(v string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "pdf":
		return FormatPDF, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("invalid format %q (use pdf|markdown|text|json)", v)
	}
}

func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	case FormatJSON:
		return "json"
	default:
		return "pdf"
	}
}

type Options struct {
	Format Format
	// Path is the output file. When empty the default report filename is
	// used inside Dir.
	Path string
	Dir  string
}

// Exporter allows one export at a time; a concurrent call fails fast with
// ErrExportInProgress instead of queueing.
type Exporter struct {
	mu     sync.Mutex
	logger *zap.Logger
}

func New(logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{logger: logger}
}

// Export renders r and writes it atomically, returning the written path.
func (e *Exporter) Export(ctx context.Context, r *service.WeeklyReport, opts Options) (string, error) {
	if !e.mu.TryLock() {
		return "", ErrExportInProgress
	}
	defer e.mu.Unlock()

	if r == nil {
		return "", fmt.Errorf("export report: nothing to export")
	}
	format := opts.Format
	if format == "" {
		format = FormatPDF
	}
	path := opts.Path
	if path == "" {
		path = filepath.Join(opts.Dir, service.DefaultReportFilename(r.WeekStart, format.Ext()))
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".rexos-report-*")
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Render(tmp, r, format); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close report file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("write report to %q: %w", path, err)
	}

	e.logger.Info("report exported",
		zap.String("format", string(format)),
		zap.String("path", path),
		zap.String("week_start", r.WeekStart),
	)
	return path, nil
}

// Render writes r in the given format to w.
func Render(w io.Writer, r *service.WeeklyReport, format Format) error {
	switch format {
	case FormatPDF:
		return renderPDF(w, r)
	case FormatMarkdown:
		return renderMarkdown(w, r)
	case FormatText:
		return renderText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode report json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
