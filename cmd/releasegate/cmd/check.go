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
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the full gate: verify conditions, then analyze commits",
	Long: `Run both pipeline steps in order. The verify step validates the
configuration and resolves the upstream cap; the analyze step reuses
that cap, classifies the commits since the last release, and applies
the gate to the verdict.

This is the command to wire into CI: it exits non-zero when the
configuration is invalid, the upstream cannot be queried, or a major
release would exceed the cap.

Examples:
  # Gate a release branch against the upstream
  releasegate check --upstream acme/widgets

  # Same, scoped to what the upstream's 3.x branch has reached
  releasegate check --upstream acme/widgets --upstream-branch 3.x --verbose`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().String("output", "", "Write output to a file instead of stdout")

	_ = viper.BindPFlag("check.output", checkCmd.Flags().Lookup("output"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, err := pipeline.New(pipelineConfig(), pipeline.Options{Reporter: newReporter()})
	if err != nil {
		return err
	}

	rc := pipeline.NewRunContext()

	verify, err := p.VerifyConditions(ctx, rc)
	if err != nil {
		return err
	}

	result, analyzeErr := p.AnalyzeCommits(ctx, rc)

	var capErr *gate.CapExceededError
	isBlocked := errors.As(analyzeErr, &capErr)
	if analyzeErr != nil && !isBlocked {
		return analyzeErr
	}

	formatter := report.ForFormat(viper.GetString("format"))
	verifyOut, err := formatter.FormatVerifyResult(verify)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	analyzeOut, err := formatter.FormatAnalyzeResult(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if err := writeOutput("check.output", verifyOut+"\n"+analyzeOut); err != nil {
		return err
	}

	if isBlocked {
		fmt.Fprintln(os.Stderr, "release blocked:", capErr.Error())
		return analyzeErr
	}
	return nil
}
