package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/scrape-cli/internal/model"
)

var batchFile string

var batchCmd = &cobra.Command{
	Use:   "batch [urls...]",
	Short: "Process multiple URLs concurrently",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		urls := args
		if batchFile != "" {
			fileURLs, err := readURLFile(batchFile)
			if err != nil {
				return err
			}
			urls = append(urls, fileURLs...)
		}
		if len(urls) == 0 {
			return eris.New("no URLs given: pass them as arguments or with --file")
		}

		env, err := initEnv(ctx, "run")
		if err != nil {
			return err
		}
		defer env.Close()

		return processBatch(ctx, env, urls, cfg.Batch.MaxConcurrentRuns)
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchFile, "file", "f", "", "file with one URL per line")
	rootCmd.AddCommand(batchCmd)
}

// readURLFile reads one URL per line, skipping blanks and # comments.
func readURLFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "open url file")
	}
	defer f.Close() //nolint:errcheck

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "read url file")
	}
	return urls, nil
}

// processBatch processes URLs concurrently, persisting each run. Individual
// failures don't abort the batch.
func processBatch(ctx context.Context, env *runEnv, urls []string, concurrency int) error {
	zap.L().Info("processing batch",
		zap.Int("urls", len(urls)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, url := range urls {
		g.Go(func() error {
			log := zap.L().With(zap.String("url", url))

			run, err := env.Store.CreateRun(gctx, url)
			if err != nil {
				failed.Add(1)
				log.Error("create run failed", zap.Error(err))
				return nil
			}
			if err := env.Store.SetRunStatus(gctx, run.ID, model.RunRunning); err != nil {
				failed.Add(1)
				log.Error("set run status failed", zap.Error(err))
				return nil
			}

			result, err := env.Engine.Process(gctx, url)
			if err != nil {
				failed.Add(1)
				log.Error("run failed", zap.Error(err))
				if sErr := env.Store.SetRunStatus(gctx, run.ID, model.RunFailed); sErr != nil {
					log.Warn("failed to mark run failed", zap.Error(sErr))
				}
				return nil // don't abort batch on individual failure
			}

			if err := env.Store.CompleteRun(gctx, run.ID, result); err != nil {
				failed.Add(1)
				log.Error("complete run failed", zap.Error(err))
				return nil
			}

			succeeded.Add(1)
			log.Info("run complete",
				zap.Bool("success", result.Success),
				zap.String("content_type", string(result.ContentType)),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
