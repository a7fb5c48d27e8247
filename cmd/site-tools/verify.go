package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/drunkowl/site-tools/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Drive the served site in a browser and capture screenshots",
	Long: `Verify runs a browser scenario against the locally served site
(python3 -m http.server or similar) and saves screenshots to the output
directory. The built-in scenario checks the navigation from the index page
to the next-event page; --scenario replaces it with a YAML file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		vc := cfg.Verify

		sc, err := verify.DefaultScenario()
		if vc.ScenarioPath != "" {
			sc, err = verify.LoadScenario(vc.ScenarioPath)
		}
		if err != nil {
			return err
		}

		browser, err := verify.NewChromeBrowser(cmd.Context(), vc.Headless)
		if err != nil {
			return err
		}
		defer browser.Close()

		runner, err := verify.NewRunner(browser, verify.Options{
			BaseURL:     vc.BaseURL,
			OutputDir:   vc.OutputDir,
			StepTimeout: vc.Timeout,
			Client:      &http.Client{Timeout: vc.Timeout},
			MaxRetries:  vc.MaxRetries,
		}, logger)
		if err != nil {
			return err
		}

		report, err := runner.Run(cmd.Context(), sc, os.Stdout)
		if err != nil {
			return err
		}
		logger.Debug().Strs("screenshots", report.Screenshots).Msg("verification complete")
		return nil
	},
}

func init() {
	f := verifyCmd.Flags()
	f.String("base-url", defaultBaseURL, "URL the site is served at")
	f.String("output-dir", defaultOutputDir, "directory for screenshots")
	f.String("scenario", "", "scenario YAML file replacing the built-in one")
	f.Duration("timeout", defaultTimeout, "timeout for each browser step")
	f.Bool("headless", true, "run the browser without a window")
	f.Int("max-retries", 5, "retries of the reachability check on 429/503")
	cobra.CheckErr(bindFlags(verifyCmd, "verify"))

	rootCmd.AddCommand(verifyCmd)
}
