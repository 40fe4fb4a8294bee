package report

import (
	"encoding/json"

	"github.com/grokify/releasegate/pkg/model"
)

// JSONFormatter formats results as JSON.
type JSONFormatter struct {
	Indent bool
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{Indent: true}
}

// FormatVerifyResult formats a verify result as JSON.
func (f *JSONFormatter) FormatVerifyResult(result *model.VerifyResult) (string, error) {
	return f.marshal(result)
}

// FormatAnalyzeResult formats an analyze result as JSON.
func (f *JSONFormatter) FormatAnalyzeResult(result *model.AnalyzeResult) (string, error) {
	return f.marshal(result)
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
