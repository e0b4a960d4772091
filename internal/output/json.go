package output

import (
	"encoding/json"

	"github.com/seclens/seclens/internal/report"
	"github.com/seclens/seclens/internal/storage"
	"github.com/seclens/seclens/pkg/types"
)

// JSONFormatter handles JSON output formatting
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatResult formats an evaluation result as indented JSON
func (j *JSONFormatter) FormatResult(result *types.EvaluationResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}

// FormatSummary formats an executive summary as indented JSON
func (j *JSONFormatter) FormatSummary(summary *report.Summary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

// FormatSessionList formats stored session metadata as indented JSON
func (j *JSONFormatter) FormatSessionList(sessions []storage.ResultInfo) ([]byte, error) {
	return json.MarshalIndent(sessions, "", "  ")
}
