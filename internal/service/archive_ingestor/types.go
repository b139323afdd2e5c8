// Package archive_ingestor decodes raw transactions from an archive dump and
// loads them into ClickHouse, resuming from the highest stored offset.
package archive_ingestor

import (
	"context"
	"time"

	"github.com/txlens/txlens-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	RecordFetcher interface {
		FetchBatch(ctx context.Context) ([]model.RawRecord, error)
	}
	RecordProcessor interface {
		Process(ctx context.Context, records []model.RawRecord) error
		SetCancelBatcher(cancel func())
	}
	RecordWriter interface {
		Start(ctx context.Context)
		Stop()
		WriteTransaction(ctx context.Context, tx model.InsertTransaction) error
	}

	ArchiveIngesterMetrics interface {
		ObserveFetchBatch(err error, started time.Time)
		ObserveProcessBatch(err error, records int, started time.Time)
		ObserveProcessRecord(err error, started time.Time)
	}

	// ArchiveSource yields raw records whose offset is strictly greater than
	// afterOffset, in offset order.
	ArchiveSource interface {
		ReadBatch(ctx context.Context, afterOffset uint64, limit int) ([]model.RawRecord, error)
	}

	Converter interface {
		ConvertHex(rawHex string, sourceOffset uint64) (*model.InsertTransaction, error)
	}

	ClickhouseRepository interface {
		MaxSourceOffset(ctx context.Context, network model.Network) (uint64, error)
		InsertTransactions(ctx context.Context, txs []model.Transaction) error
		InsertTransactionInputs(ctx context.Context, inputs []model.TransactionInput) error
		InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error
	}
)
