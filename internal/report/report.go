package report

import "github.com/grokify/releasegate/pkg/model"

// Formatter defines the interface for formatting results.
type Formatter interface {
	// FormatVerifyResult formats a verify-conditions result.
	FormatVerifyResult(result *model.VerifyResult) (string, error)

	// FormatAnalyzeResult formats an analyze-commits result.
	FormatAnalyzeResult(result *model.AnalyzeResult) (string, error)
}

// ForFormat returns the formatter for a format name, defaulting to the
// text table.
func ForFormat(format string) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	case "markdown", "md":
		return NewMarkdownFormatter()
	case "csv":
		return NewCSVFormatter()
	default:
		return NewTableFormatter()
	}
}
