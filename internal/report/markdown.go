package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/grokify/releasegate/pkg/model"
)

// MarkdownFormatter formats results as Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new Markdown formatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// FormatVerifyResult formats a verify result as Markdown.
func (f *MarkdownFormatter) FormatVerifyResult(result *model.VerifyResult) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Upstream Cap Resolution\n\n")
	sb.WriteString(fmt.Sprintf("**Resolved At:** %s\n\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Upstream:** %s%s\n\n", result.Cap.Repo.FullName(), branchSuffix(result.Cap.Branch)))
	sb.WriteString(fmt.Sprintf("**Source:** %s\n\n", result.Cap.Source))
	sb.WriteString(fmt.Sprintf("**Records Fetched:** %d\n\n", result.Fetched))
	sb.WriteString(fmt.Sprintf("**Semver Candidates:** %d\n\n", result.Candidates))

	if result.Cap.Tag == "" {
		sb.WriteString("**Major Cap:** 0 (no qualifying tag)\n")
	} else {
		sb.WriteString(fmt.Sprintf("**Major Cap:** %d (from `%s`)\n", result.Cap.Major, result.Cap.Tag))
	}

	if len(result.Unreachable) > 0 {
		sb.WriteString("\n## Not Reachable From the Branch\n\n")
		for _, tag := range result.Unreachable {
			sb.WriteString(fmt.Sprintf("- `%s`\n", tag))
		}
	}

	return sb.String(), nil
}

// FormatAnalyzeResult formats an analyze result as Markdown.
func (f *MarkdownFormatter) FormatAnalyzeResult(result *model.AnalyzeResult) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Commit Analysis\n\n")
	sb.WriteString(fmt.Sprintf("**Analyzed At:** %s\n\n", result.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("**Commits:** %d\n\n", result.Commits))
	sb.WriteString(fmt.Sprintf("**Verdict:** %s\n\n", result.Verdict))

	if result.LastVersion != "" {
		sb.WriteString(fmt.Sprintf("**Last Version:** `%s`\n\n", result.LastVersion))
	}
	if result.NextVersion != "" {
		sb.WriteString(fmt.Sprintf("**Next Version:** `%s`\n\n", result.NextVersion))
	}

	sb.WriteString("## Gate\n\n")
	sb.WriteString("| Checked | Allowed | Next Major | Reason |\n")
	sb.WriteString("|---------|---------|------------|--------|\n")

	checked := "no"
	if result.Gate.Checked {
		checked = "yes"
	}
	allowed := "❌"
	if result.Gate.Allowed {
		allowed = "✅"
	}
	nextMajor := "-"
	if result.Gate.NextMajor > 0 {
		nextMajor = fmt.Sprintf("%d", result.Gate.NextMajor)
	}
	sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
		checked, allowed, nextMajor, truncate(result.Gate.Reason, 80)))

	if result.Gate.Cap != nil {
		cap := result.Gate.Cap
		sb.WriteString(fmt.Sprintf("\n**Cap:** %d set by %s%s",
			cap.Major, cap.Repo.FullName(), branchSuffix(cap.Branch)))
		if cap.Tag != "" {
			sb.WriteString(fmt.Sprintf(" via `%s`", cap.Tag))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
