package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/siddharthaBojanki/greenCart/app/jobs"
	"github.com/siddharthaBojanki/greenCart/config"
	"github.com/siddharthaBojanki/greenCart/pkg/cache"
	"github.com/siddharthaBojanki/greenCart/pkg/database"
	"github.com/siddharthaBojanki/greenCart/pkg/logger"
	"github.com/siddharthaBojanki/greenCart/pkg/queue"
)

var workerCount int

func init() {
	queueWorkCmd.Flags().IntVarP(&workerCount, "workers", "w", 2, "number of concurrent workers")
}

// greencart queue:work — drain jobs in a standalone process. Requires the
// Redis driver; the in-memory queue is invisible across processes.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Run background queue workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := database.Connect(ctx); err != nil {
			return fmt.Errorf("store connection failed: %w", err)
		}
		defer database.Disconnect(context.Background())

		if err := cache.Connect(); err != nil {
			return fmt.Errorf("queue workers need redis: %w", err)
		}
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		queue.SetFailedSink(queue.NewMongoFailedSink(database.Collection("failed_jobs")))

		jobs.RegisterAll()
		queue.StartWorkers(ctx, workerCount)

		logger.Info("queue: worker process running", "workers", workerCount)
		<-ctx.Done()
		return nil
	},
}
