package archive_ingestor

import (
	"context"
	"errors"
	"time"

	"github.com/txlens/txlens-backend/internal/clock"
	"github.com/txlens/txlens-backend/internal/model"
	"go.uber.org/zap"
)

const (
	defaultWorkerCount = 16
	fetchBatchLimit    = 10000

	inputFlushThreshold  = 1000
	outputFlushThreshold = 1000

	sleepDuration     = 5 * time.Second
	longSleepDuration = 1 * time.Minute
)

type ArchiveIngesterService struct {
	logger            *zap.Logger
	network           model.Network
	metrics           ArchiveIngesterMetrics
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	longSleepDuration time.Duration
	recordFetcher     RecordFetcher
	recordProcessor   RecordProcessor
	recordWriter      RecordWriter
}

func NewArchiveIngesterService(
	repo ClickhouseRepository,
	source ArchiveSource,
	converter Converter,
	metrics ArchiveIngesterMetrics,
	network model.Network,
	logger *zap.Logger,
) (*ArchiveIngesterService, error) {
	logger = logger.With(zap.String("network", string(network)))
	if metrics == nil {
		return nil, errors.New("archive ingester metrics is required")
	}

	rw := newRecordWriter(repo, logger)

	return &ArchiveIngesterService{
		logger:            logger,
		network:           network,
		metrics:           metrics,
		sleep:             clock.SleepWithContext,
		sleepDuration:     sleepDuration,
		longSleepDuration: longSleepDuration,
		recordFetcher: &recordFetcher{
			source:     source,
			repository: repo,
			network:    network,
			limit:      fetchBatchLimit,
		},
		recordWriter: rw,
		recordProcessor: &recordProcessor{
			workerCount:  defaultWorkerCount,
			converter:    converter,
			recordWriter: rw,
			metrics:      metrics,
			logger:       logger.Named("recordProcessor"),
		},
	}, nil
}

func (s *ArchiveIngesterService) Run(ctx context.Context) error {
	rwCtx, rwCancel := context.WithCancel(ctx)
	s.recordProcessor.SetCancelBatcher(rwCancel)

	s.recordWriter.Start(rwCtx)
	defer func() {
		rwCancel()
		s.recordWriter.Stop()
	}()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := s.run(ctx); err != nil {
			return err
		}
	}
}

func (s *ArchiveIngesterService) run(ctx context.Context) (err error) {
	started := time.Now()
	records, err := s.recordFetcher.FetchBatch(ctx)
	s.metrics.ObserveFetchBatch(err, started)
	if err != nil {
		s.logger.Error("fetch record batch failed", zap.Error(err))
		return err
	}

	if len(records) == 0 {
		s.logger.Debug("no new archive records; sleeping", zap.Duration("sleep", s.longSleepDuration))
		if err = s.sleep(ctx, s.longSleepDuration); err != nil {
			return err
		}
		return nil
	}

	s.logger.Info("processing batch", zap.Int("records", len(records)))
	started = time.Now()
	if err = s.recordProcessor.Process(ctx, records); err != nil {
		s.metrics.ObserveProcessBatch(err, len(records), started)
		s.logger.Error("process batch failed", zap.Int("records", len(records)), zap.Error(err))
		return err
	}
	s.metrics.ObserveProcessBatch(nil, len(records), started)

	if err = s.sleep(ctx, s.sleepDuration); err != nil {
		return err
	}
	return nil
}
