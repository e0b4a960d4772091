// Package output renders evaluation results and executive summaries
// for the terminal and for machine consumption.
package output

import (
	"fmt"

	"github.com/seclens/seclens/internal/report"
	"github.com/seclens/seclens/internal/storage"
	"github.com/seclens/seclens/pkg/types"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON     OutputFormat = "json"
	FormatTable    OutputFormat = "table"
	FormatMarkdown OutputFormat = "markdown"
)

// ParseFormat validates a format string from flags or config
func ParseFormat(raw string) (OutputFormat, error) {
	switch OutputFormat(raw) {
	case FormatJSON, FormatTable, FormatMarkdown:
		return OutputFormat(raw), nil
	default:
		return "", fmt.Errorf("unsupported format: %s (want json, table or markdown)", raw)
	}
}

// Config holds output rendering configuration
type Config struct {
	EnableColors bool
	TimeFormat   string
}

// Renderer formats engine output in the configured formats
type Renderer struct {
	config      Config
	jsonOut     *JSONFormatter
	tableOut    *TableFormatter
	markdownOut *MarkdownFormatter
}

// NewRenderer creates a new output renderer
func NewRenderer(config Config) *Renderer {
	if config.TimeFormat == "" {
		config.TimeFormat = "2006-01-02 15:04:05"
	}
	return &Renderer{
		config:      config,
		jsonOut:     NewJSONFormatter(),
		tableOut:    NewTableFormatter(config),
		markdownOut: NewMarkdownFormatter(config),
	}
}

// FormatResult formats an evaluation result in the specified format
func (r *Renderer) FormatResult(result *types.EvaluationResult, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		return r.jsonOut.FormatResult(result)
	case FormatTable:
		return r.tableOut.FormatResult(result)
	case FormatMarkdown:
		return r.markdownOut.FormatResult(result)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatSummary formats an executive summary in the specified format
func (r *Renderer) FormatSummary(summary *report.Summary, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		return r.jsonOut.FormatSummary(summary)
	case FormatTable:
		return r.tableOut.FormatSummary(summary)
	case FormatMarkdown:
		return r.markdownOut.FormatSummary(summary)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatSessionList formats stored session metadata
func (r *Renderer) FormatSessionList(sessions []storage.ResultInfo, format OutputFormat) ([]byte, error) {
	switch format {
	case FormatJSON:
		return r.jsonOut.FormatSessionList(sessions)
	case FormatTable, FormatMarkdown:
		return r.tableOut.FormatSessionList(sessions)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
