package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/grokify/releasegate/pkg/model"
)

// TableFormatter formats results as text tables.
type TableFormatter struct{}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// FormatVerifyResult formats a verify result as a text table.
func (f *TableFormatter) FormatVerifyResult(result *model.VerifyResult) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Upstream Cap Resolution (%s)\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Upstream: %s%s\n", result.Cap.Repo.FullName(), branchSuffix(result.Cap.Branch)))
	sb.WriteString(fmt.Sprintf("Source: %s | Records: %d | Semver: %d\n",
		result.Cap.Source, result.Fetched, result.Candidates))
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	if result.Cap.Tag == "" {
		sb.WriteString("No qualifying tag found; major cap is 0.\n")
	} else {
		sb.WriteString(fmt.Sprintf("Major cap: %d (from %s)\n", result.Cap.Major, result.Cap.Tag))
	}

	if len(result.Unreachable) > 0 {
		sb.WriteString("\nNot reachable from the branch:\n")
		for _, tag := range result.Unreachable {
			sb.WriteString(fmt.Sprintf("  ⏭️  %s\n", tag))
		}
	}

	return sb.String(), nil
}

// FormatAnalyzeResult formats an analyze result as a text table.
func (f *TableFormatter) FormatAnalyzeResult(result *model.AnalyzeResult) (string, error) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Commit Analysis (%s)\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Commits: %d | Verdict: %s\n", result.Commits, result.Verdict))

	if result.LastVersion != "" {
		sb.WriteString(fmt.Sprintf("Last version: %s\n", result.LastVersion))
	} else {
		sb.WriteString("Last version: none (first release)\n")
	}
	if result.NextVersion != "" {
		sb.WriteString(fmt.Sprintf("Next version: %s\n", result.NextVersion))
	}
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	switch {
	case !result.Gate.Checked:
		sb.WriteString(fmt.Sprintf("Gate: not applied (%s)\n", result.Gate.Reason))
	case result.Gate.Allowed:
		sb.WriteString(fmt.Sprintf("Gate: ✅ allowed (%s)\n", result.Gate.Reason))
	default:
		sb.WriteString(fmt.Sprintf("Gate: ❌ blocked (%s)\n", result.Gate.Reason))
	}

	if result.Gate.Cap != nil {
		cap := result.Gate.Cap
		sb.WriteString(fmt.Sprintf("Cap: %d from %s%s\n", cap.Major, cap.Repo.FullName(), branchSuffix(cap.Branch)))
	}

	return sb.String(), nil
}

// branchSuffix renders an optional branch scope for display.
func branchSuffix(branch string) string {
	if branch == "" {
		return ""
	}
	return fmt.Sprintf(" (branch %s)", branch)
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
