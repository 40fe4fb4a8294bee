package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokify/releasegate/internal/pipeline"
	"github.com/grokify/releasegate/internal/report"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate the configuration and resolve the upstream cap",
	Long: `Validate the release-gate configuration and resolve the upstream major
version cap. Fails when the configuration is invalid or the upstream
cannot be queried; an upstream with no semver tags resolves to a cap
of 0 and succeeds.

Examples:
  # Resolve the cap from upstream tags
  releasegate verify --upstream acme/widgets

  # Only count tags already reached by a maintenance branch
  releasegate verify --upstream acme/widgets --upstream-branch 3.x

  # Resolve from published releases instead of tags
  releasegate verify --upstream acme/widgets --tag-source releases`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().String("output", "", "Write output to a file instead of stdout")

	_ = viper.BindPFlag("verify.output", verifyCmd.Flags().Lookup("output"))
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	p, err := pipeline.New(pipelineConfig(), pipeline.Options{Reporter: newReporter()})
	if err != nil {
		return err
	}

	result, err := p.VerifyConditions(ctx, pipeline.NewRunContext())
	if err != nil {
		return err
	}

	output, err := report.ForFormat(viper.GetString("format")).FormatVerifyResult(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return writeOutput("verify.output", output)
}
