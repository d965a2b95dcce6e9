package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/scrape-cli/internal/model"
)

var (
	runOutput string
	runSave   bool
)

var runCmd = &cobra.Command{
	Use:   "run <url>",
	Short: "Process a single URL through the workflow",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		url := args[0]

		env, err := initEnv(ctx, "run")
		if err != nil {
			return err
		}
		defer env.Close()

		var runID string
		if runSave {
			run, err := env.Store.CreateRun(ctx, url)
			if err != nil {
				return err
			}
			runID = run.ID
			if err := env.Store.SetRunStatus(ctx, runID, model.RunRunning); err != nil {
				return err
			}
		}

		result, err := env.Engine.Process(ctx, url)
		if err != nil {
			if runID != "" {
				if sErr := env.Store.SetRunStatus(ctx, runID, model.RunFailed); sErr != nil {
					zap.L().Warn("failed to mark run failed", zap.Error(sErr))
				}
			}
			return eris.Wrap(err, "process url")
		}

		if runID != "" {
			if err := env.Store.CompleteRun(ctx, runID, result); err != nil {
				return err
			}
		}

		zap.L().Info("run complete",
			zap.String("url", url),
			zap.Bool("success", result.Success),
			zap.String("content_type", string(result.ContentType)),
			zap.Bool("full_text", result.FullTextExtracted),
		)

		return writeResult(os.Stdout, runOutput, result)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "json", "output format (json or yaml)")
	runCmd.Flags().BoolVar(&runSave, "save", false, "persist the run in the store")
	rootCmd.AddCommand(runCmd)
}

// writeResult renders a final result to w in the requested format.
func writeResult(w io.Writer, format string, result *model.FinalResult) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close() //nolint:errcheck
		return enc.Encode(result)
	default:
		return eris.Errorf("unsupported output format: %s", format)
	}
}
