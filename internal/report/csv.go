package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/grokify/releasegate/pkg/model"
)

// CSVFormatter formats results as CSV.
type CSVFormatter struct{}

// NewCSVFormatter creates a new CSV formatter.
func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

// FormatVerifyResult formats a verify result as a single CSV record.
func (f *CSVFormatter) FormatVerifyResult(result *model.VerifyResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Upstream", "Branch", "Source", "Cap", "Cap Tag", "Records", "Semver", "Unreachable"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	row := []string{
		result.Cap.Repo.FullName(),
		result.Cap.Branch,
		string(result.Cap.Source),
		strconv.Itoa(result.Cap.Major),
		result.Cap.Tag,
		strconv.Itoa(result.Fetched),
		strconv.Itoa(result.Candidates),
		strings.Join(result.Unreachable, " "),
	}
	if err := w.Write(row); err != nil {
		return "", err
	}

	w.Flush()
	return buf.String(), w.Error()
}

// FormatAnalyzeResult formats an analyze result as a single CSV record.
func (f *CSVFormatter) FormatAnalyzeResult(result *model.AnalyzeResult) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Commits", "Verdict", "Last Version", "Next Version", "Gate Checked", "Gate Allowed", "Next Major", "Cap", "Reason"}
	if err := w.Write(header); err != nil {
		return "", err
	}

	capMajor := ""
	if result.Gate.Cap != nil {
		capMajor = strconv.Itoa(result.Gate.Cap.Major)
	}

	row := []string{
		strconv.Itoa(result.Commits),
		string(result.Verdict),
		result.LastVersion,
		result.NextVersion,
		fmt.Sprintf("%t", result.Gate.Checked),
		fmt.Sprintf("%t", result.Gate.Allowed),
		strconv.Itoa(result.Gate.NextMajor),
		capMajor,
		result.Gate.Reason,
	}
	if err := w.Write(row); err != nil {
		return "", err
	}

	w.Flush()
	return buf.String(), w.Error()
}
