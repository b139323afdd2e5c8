package archive_ingestor

import (
	"context"
	"time"

	"github.com/txlens/txlens-backend/internal/model"
	"github.com/txlens/txlens-backend/pkg/batcher"
	"go.uber.org/zap"
)

const (
	txBatcherCapacity      = 500
	txBatcherFlushInterval = 30 * time.Second
	txBatcherFlushesPerSec = 1
)

type recordWriter struct {
	repo      ClickhouseRepository
	logger    *zap.Logger
	txBatcher *batcher.Batcher[model.InsertTransaction]
}

func newRecordWriter(repo ClickhouseRepository, logger *zap.Logger) *recordWriter {
	w := &recordWriter{
		repo:   repo,
		logger: logger,
	}
	w.txBatcher = batcher.New[model.InsertTransaction](
		logger.Named("txBatcher"),
		w.flush,
		txBatcherCapacity,
		txBatcherFlushInterval,
		txBatcherFlushesPerSec,
	)
	return w
}

func (w *recordWriter) Start(ctx context.Context) {
	w.txBatcher.Start(ctx)
}

func (w *recordWriter) Stop() {
	w.txBatcher.Stop()
}

func (w *recordWriter) WriteTransaction(ctx context.Context, tx model.InsertTransaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return w.txBatcher.Add(ctx, tx)
}

// flush inserts child rows before the transaction rows so the max stored
// offset only advances once inputs and outputs are durable.
func (w *recordWriter) flush(ctx context.Context, insertTxs []model.InsertTransaction) error {
	txs := make([]model.Transaction, 0, len(insertTxs))
	inputs := make([]model.TransactionInput, 0, len(insertTxs))
	outputs := make([]model.TransactionOutput, 0, len(insertTxs))

	for _, tx := range insertTxs {
		txs = append(txs, tx.Tx)

		inputs = append(inputs, tx.Inputs...)
		if len(inputs) >= inputFlushThreshold {
			if err := w.repo.InsertTransactionInputs(ctx, inputs); err != nil {
				return err
			}
			w.logger.Debug("InsertTransactionInputs", zap.Int("count", len(inputs)))
			inputs = inputs[:0]
		}

		outputs = append(outputs, tx.Outputs...)
		if len(outputs) >= outputFlushThreshold {
			if err := w.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
				return err
			}
			w.logger.Debug("InsertTransactionOutputs", zap.Int("count", len(outputs)))
			outputs = outputs[:0]
		}
	}

	if err := w.repo.InsertTransactionInputs(ctx, inputs); err != nil {
		return err
	}
	if err := w.repo.InsertTransactionOutputs(ctx, outputs); err != nil {
		return err
	}

	return w.repo.InsertTransactions(ctx, txs)
}
