package app

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"paquexpress-service/internal/logx"
	"paquexpress-service/internal/transport/kafka"
)

// WorkerRunner runs the assignment ingestion worker.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes assignment events until the container context is done.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerRunIn struct {
	dig.In

	Ctx      context.Context
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Consumer *kafka.Consumer
}

func runWorker(container *dig.Container) error {
	return container.Invoke(func(in workerRunIn) error {
		return workerRun(in.Ctx, in.Pool, in.Logger, in.Consumer)
	})
}

// workerRun returns immediately when Kafka is not configured.
func workerRun(ctx context.Context, pool *pgxpool.Pool, logger logx.Logger, consumer *kafka.Consumer) error {
	defer closeWorker(pool, logger, consumer)

	if consumer == nil {
		logger.Warn("kafka not configured, worker has nothing to consume")
		return nil
	}

	logger.Info("assignment worker started")
	err := consumer.Run(ctx)
	logger.Info("assignment worker stopped")
	return err
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, consumer *kafka.Consumer) {
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
}
