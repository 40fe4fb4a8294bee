package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokify/releasegate/internal/gate"
	"github.com/grokify/releasegate/internal/pipeline"
	"github.com/grokify/releasegate/internal/report"
	"github.com/grokify/releasegate/pkg/model"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Classify commits since the last release and apply the cap",
	Long: `Classify the commit series since the last release into a verdict (major,
minor, patch, or none) and apply the upstream major version cap to it.

The command exits non-zero when a major release would exceed the cap. The
cap is resolved as part of the run; use the check command to run verify
and analyze as one pipeline.

Examples:
  # Analyze the local checkout against an upstream cap
  releasegate analyze --upstream acme/widgets

  # Analyze a repository remotely, without a checkout
  releasegate analyze --upstream acme/widgets --project acme/widgets-go

  # Use maintenance rules: features alone release nothing
  releasegate analyze --upstream acme/widgets --rule-set maintenance

  # Gate a pre-captured commit log from stdin
  git log --format='%H%x1f%s%x1f%b%x1e' v1.2.3..HEAD | \
    releasegate analyze --upstream acme/widgets --commits-file - --last-version v1.2.3`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("output", "", "Write output to a file instead of stdout")

	_ = viper.BindPFlag("analyze.output", analyzeCmd.Flags().Lookup("output"))
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, err := pipeline.New(pipelineConfig(), pipeline.Options{Reporter: newReporter()})
	if err != nil {
		return err
	}

	result, err := p.AnalyzeCommits(ctx, pipeline.NewRunContext())
	return renderAnalyze("analyze.output", result, err)
}

// renderAnalyze prints an analyze result when there is one. A cap violation
// arrives with a populated result; it is rendered before the error is
// returned so the blocked decision is visible, not just the failure.
func renderAnalyze(outputKey string, result *model.AnalyzeResult, err error) error {
	var capErr *gate.CapExceededError
	isBlocked := errors.As(err, &capErr)

	if err != nil && !isBlocked {
		return err
	}

	output, ferr := report.ForFormat(viper.GetString("format")).FormatAnalyzeResult(result)
	if ferr != nil {
		return fmt.Errorf("failed to format output: %w", ferr)
	}
	if werr := writeOutput(outputKey, output); werr != nil {
		return werr
	}

	if isBlocked {
		fmt.Fprintln(os.Stderr, "release blocked:", capErr.Error())
		return err
	}
	return nil
}
