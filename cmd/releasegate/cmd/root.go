package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grokify/releasegate/internal/pipeline"
	"github.com/grokify/releasegate/internal/progress"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "releasegate",
	Short: "Guard major releases behind an upstream version cap",
	Long: `ReleaseGate keeps an automated release pipeline from publishing a major
version the upstream project has not reached yet.

Features:
  - Resolve the upstream's highest semver tag into a major version cap
  - Scope the cap to tags reachable from an upstream branch
  - Classify conventional commits into a release verdict
  - Block major releases that would leapfrog the upstream

Part of the DevOpsOrchestra suite alongside VersionConductor and PipelineConductor.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.releasegate.yaml)")
	rootCmd.PersistentFlags().String("upstream", "", "Upstream repository that sets the cap (owner/repo)")
	rootCmd.PersistentFlags().String("upstream-branch", "", "Only count upstream tags reachable from this branch")
	rootCmd.PersistentFlags().String("tag-source", "tags", "Upstream listing to read: tags or releases")
	rootCmd.PersistentFlags().String("project", "", "Analyzed repository (owner/repo); empty means a local checkout")
	rootCmd.PersistentFlags().String("ref", "", "Branch or commit of the project to analyze (remote mode)")
	rootCmd.PersistentFlags().String("dir", "", "Local checkout to analyze (default is the working directory)")
	rootCmd.PersistentFlags().String("commits-file", "", "Pre-captured git log to analyze; - reads stdin")
	rootCmd.PersistentFlags().String("last-version", "", "Last released version of the project (skips discovery)")
	rootCmd.PersistentFlags().String("rule-set", "", "Classification rule set: conventional or maintenance")
	rootCmd.PersistentFlags().String("rules-file", "", "YAML file with classification rules")
	rootCmd.PersistentFlags().String("token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().String("format", "table", "Output format: table, json, markdown, csv")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("upstream", rootCmd.PersistentFlags().Lookup("upstream"))
	_ = viper.BindPFlag("upstream-branch", rootCmd.PersistentFlags().Lookup("upstream-branch"))
	_ = viper.BindPFlag("tag-source", rootCmd.PersistentFlags().Lookup("tag-source"))
	_ = viper.BindPFlag("project", rootCmd.PersistentFlags().Lookup("project"))
	_ = viper.BindPFlag("ref", rootCmd.PersistentFlags().Lookup("ref"))
	_ = viper.BindPFlag("dir", rootCmd.PersistentFlags().Lookup("dir"))
	_ = viper.BindPFlag("commits-file", rootCmd.PersistentFlags().Lookup("commits-file"))
	_ = viper.BindPFlag("last-version", rootCmd.PersistentFlags().Lookup("last-version"))
	_ = viper.BindPFlag("rule-set", rootCmd.PersistentFlags().Lookup("rule-set"))
	_ = viper.BindPFlag("rules-file", rootCmd.PersistentFlags().Lookup("rules-file"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".releasegate" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".releasegate")
	}

	// Environment variables
	viper.SetEnvPrefix("RELEASEGATE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Also check GITHUB_TOKEN directly
	if viper.GetString("token") == "" {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			viper.Set("token", token)
		}
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// pipelineConfig assembles the pipeline configuration from viper.
func pipelineConfig() pipeline.Config {
	return pipeline.Config{
		Upstream:       viper.GetString("upstream"),
		UpstreamBranch: viper.GetString("upstream-branch"),
		TagSource:      viper.GetString("tag-source"),
		Project:        viper.GetString("project"),
		Ref:            viper.GetString("ref"),
		Dir:            viper.GetString("dir"),
		CommitsFile:    viper.GetString("commits-file"),
		LastVersion:    viper.GetString("last-version"),
		RuleSet:        viper.GetString("rule-set"),
		RulesFile:      viper.GetString("rules-file"),
		Token:          viper.GetString("token"),
	}
}

// newReporter builds the progress reporter honoring --verbose.
func newReporter() *progress.Reporter {
	return progress.New(progress.Config{Enabled: viper.GetBool("verbose")})
}

// writeOutput prints the formatted result, or writes it to the file named by
// the command's output flag.
func writeOutput(outputKey, output string) error {
	if outputFile := viper.GetString(outputKey); outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}
	fmt.Println(output)
	return nil
}
